package schedule

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Segment режим просмотра: все доклады или только избранные
type Segment int

const (
	// SegmentAll все доклады
	SegmentAll Segment = iota
	// SegmentFavorites только избранные доклады
	SegmentFavorites
)

// String возвращает имя режима
func (s Segment) String() string {
	switch s {
	case SegmentAll:
		return "all"
	case SegmentFavorites:
		return "favorites"
	default:
		return fmt.Sprintf("segment(%d)", int(s))
	}
}

// ParseSegment разбирает имя режима
func ParseSegment(s string) (Segment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SegmentAll, nil
	case "favorites", "favourites", "fav":
		return SegmentFavorites, nil
	default:
		return SegmentAll, fmt.Errorf("неизвестный режим %q", s)
	}
}

// MarshalText реализует encoding.TextMarshaler
func (s Segment) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (s *Segment) UnmarshalText(text []byte) error {
	seg, err := ParseSegment(string(text))
	if err != nil {
		return err
	}
	*s = seg
	return nil
}

// NameSet множество имён (треков, залов или дат)
type NameSet map[string]struct{}

// NewNameSet создает множество из перечисленных имён
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has проверяет наличие имени. Работает и на nil-множестве
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add добавляет имя
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Toggle добавляет имя, если его нет, иначе удаляет
func (s NameSet) Toggle(name string) {
	if s.Has(name) {
		delete(s, name)
		return
	}
	s[name] = struct{}{}
}

// Sorted возвращает имена по алфавиту
func (s NameSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone возвращает независимую копию
func (s NameSet) Clone() NameSet {
	out := make(NameSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Filter текущий выбор фильтров экрана расписания.
// Скрытость зала или дня определяется только принадлежностью множеству исключений
type Filter struct {
	DayIndex          int
	QueryText         string
	ExcludedTracks    NameSet
	ExcludedLocations NameSet
	ExcludedDays      NameSet
	Segment           Segment
}

// NewFilter возвращает фильтр по умолчанию
func NewFilter() Filter {
	return Filter{
		ExcludedTracks:    NameSet{},
		ExcludedLocations: NameSet{},
		ExcludedDays:      NameSet{},
		Segment:           SegmentAll,
	}
}

// Clone возвращает копию фильтра с независимыми множествами
func (f Filter) Clone() Filter {
	f.ExcludedTracks = f.ExcludedTracks.Clone()
	f.ExcludedLocations = f.ExcludedLocations.Clone()
	f.ExcludedDays = f.ExcludedDays.Clone()
	return f
}
