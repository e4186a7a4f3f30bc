// Package filter содержит состояние фильтров экрана расписания и пересчет ленты
package filter

import (
	"errors"
	"slices"

	"github.com/hazadus/go-confplan/internal/schedule"
)

// ErrReentrantRecompute пересчет вызван из подписчика во время пересчета
var ErrReentrantRecompute = errors.New("повторный вход в пересчет ленты")

// LocationState зал и признак его скрытия
type LocationState struct {
	Name   string
	Hidden bool
}

// DayState день и признак его скрытия
type DayState struct {
	Date   schedule.Date
	Hidden bool
}

// Listener получает каждую новую ленту
type Listener func(schedule.Timeline)

// Engine хранит выбор фильтров и текущую ленту.
// Не потокобезопасен: все вызовы должны идти из одного цикла событий
type Engine struct {
	snapshot    *schedule.Schedule
	favorites   schedule.FavoriteChecker
	filter      schedule.Filter
	timeline    schedule.Timeline
	listeners   map[int]Listener
	nextID      int
	recomputing bool
}

// Option настраивает Engine
type Option func(*Engine)

// WithFilter задает начальный фильтр вместо фильтра по умолчанию
func WithFilter(f schedule.Filter) Option {
	return func(e *Engine) {
		e.filter = f.Clone()
	}
}

// New создает движок и строит первую ленту. Ошибка пересчета возвращается
// вместе с рабочим движком, чтобы вызывающий мог поправить индекс дня
func New(snapshot *schedule.Schedule, favorites schedule.FavoriteChecker, opts ...Option) (*Engine, error) {
	e := &Engine{
		snapshot:  snapshot,
		favorites: favorites,
		filter:    schedule.NewFilter(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, e.Recompute()
}

// Subscribe регистрирует слушателя замены ленты и возвращает функцию отписки
func (e *Engine) Subscribe(fn Listener) func() {
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() {
		delete(e.listeners, id)
	}
}

// Timeline возвращает текущую ленту
func (e *Engine) Timeline() schedule.Timeline {
	return e.timeline
}

// Filter возвращает копию текущего фильтра
func (e *Engine) Filter() schedule.Filter {
	return e.filter.Clone()
}

// Schedule возвращает текущий снимок расписания
func (e *Engine) Schedule() *schedule.Schedule {
	return e.snapshot
}

// Locations возвращает залы снимка с признаком скрытия
func (e *Engine) Locations() []LocationState {
	if e.snapshot == nil {
		return nil
	}
	out := make([]LocationState, 0, len(e.snapshot.Locations))
	for _, name := range e.snapshot.Locations {
		out = append(out, LocationState{Name: name, Hidden: e.filter.ExcludedLocations.Has(name)})
	}
	return out
}

// Days возвращает дни снимка с признаком скрытия
func (e *Engine) Days() []DayState {
	if e.snapshot == nil {
		return nil
	}
	out := make([]DayState, 0, len(e.snapshot.Days))
	for _, day := range e.snapshot.Days {
		out = append(out, DayState{Date: day.Date, Hidden: e.filter.ExcludedDays.Has(string(day.Date))})
	}
	return out
}

// ToggleLocation переключает скрытие зала. Неизвестный зал игнорируется
func (e *Engine) ToggleLocation(name string) error {
	if e.snapshot != nil && e.snapshot.HasLocation(name) {
		e.filter.ExcludedLocations.Toggle(name)
	}
	return e.Recompute()
}

// ToggleDay переключает скрытие дня. Неизвестная дата игнорируется
func (e *Engine) ToggleDay(date schedule.Date) error {
	if e.snapshot != nil && e.snapshot.HasDay(date) {
		e.filter.ExcludedDays.Toggle(string(date))
	}
	return e.Recompute()
}

// SetQueryText задает строку поиска
func (e *Engine) SetQueryText(text string) error {
	e.filter.QueryText = text
	return e.Recompute()
}

// SetExcludedTracks заменяет множество исключенных треков
func (e *Engine) SetExcludedTracks(tracks []string) error {
	e.filter.ExcludedTracks = schedule.NewNameSet(tracks...)
	return e.Recompute()
}

// SetSegment переключает режим all/favorites
func (e *Engine) SetSegment(segment schedule.Segment) error {
	e.filter.Segment = segment
	return e.Recompute()
}

// SetDayIndex выбирает день
func (e *Engine) SetDayIndex(index int) error {
	e.filter.DayIndex = index
	return e.Recompute()
}

// SetSchedule заменяет снимок расписания. Индекс дня прижимается к новому
// диапазону, исключения для исчезнувших залов и дней сбрасываются
func (e *Engine) SetSchedule(snapshot *schedule.Schedule) error {
	e.snapshot = snapshot

	dayCount := 0
	if snapshot != nil {
		dayCount = len(snapshot.Days)
	}
	if e.filter.DayIndex >= dayCount {
		e.filter.DayIndex = max(dayCount-1, 0)
	}

	for name := range e.filter.ExcludedLocations {
		if snapshot == nil || !slices.Contains(snapshot.Locations, name) {
			delete(e.filter.ExcludedLocations, name)
		}
	}
	for date := range e.filter.ExcludedDays {
		if snapshot == nil || !snapshot.HasDay(schedule.Date(date)) {
			delete(e.filter.ExcludedDays, date)
		}
	}

	return e.Recompute()
}

// Recompute пересчитывает ленту целиком. При ошибке текущая лента остается прежней
func (e *Engine) Recompute() error {
	if e.recomputing {
		return ErrReentrantRecompute
	}
	e.recomputing = true
	defer func() { e.recomputing = false }()

	timeline, err := schedule.ComputeTimeline(e.snapshot, e.filter, e.favorites)
	if err != nil {
		return err
	}
	e.timeline = timeline

	for _, id := range e.listenerIDs() {
		if fn, ok := e.listeners[id]; ok {
			fn(timeline)
		}
	}
	return nil
}

// listenerIDs возвращает идентификаторы в порядке подписки
func (e *Engine) listenerIDs() []int {
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
