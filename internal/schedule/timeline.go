package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// ErrDayIndexOutOfRange индекс дня вне диапазона дней снимка
var ErrDayIndexOutOfRange = errors.New("индекс дня вне диапазона")

// IndexError описывает неверный индекс дня
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("индекс дня %d вне диапазона [0, %d)", e.Index, e.Count)
}

// Is позволяет сравнивать ошибку с ErrDayIndexOutOfRange
func (e *IndexError) Is(target error) bool {
	return target == ErrDayIndexOutOfRange
}

// FavoriteChecker отвечает, находится ли доклад в избранном
type FavoriteChecker interface {
	HasFavorite(id string) bool
}

// TimelineGroup доклады одного временного слота
type TimelineGroup struct {
	Time     time.Time
	Sessions []Session
}

// Timeline отфильтрованная лента выбранного дня
type Timeline struct {
	Date   Date
	Groups []TimelineGroup
	Shown  int
}

// Sessions возвращает все доклады ленты по порядку
func (t Timeline) Sessions() []Session {
	out := make([]Session, 0, t.Shown)
	for _, g := range t.Groups {
		out = append(out, g.Sessions...)
	}
	return out
}

// ComputeTimeline строит ленту для дня f.DayIndex. Функция не хранит состояния:
// каждый вызов возвращает новую ленту, не разделяющую память с предыдущими.
// favs может быть nil, тогда режим избранного ничего не показывает
func ComputeTimeline(s *Schedule, f Filter, favs FavoriteChecker) (Timeline, error) {
	count := 0
	if s != nil {
		count = len(s.Days)
	}
	if f.DayIndex < 0 || f.DayIndex >= count {
		return Timeline{}, &IndexError{Index: f.DayIndex, Count: count}
	}

	day := s.Days[f.DayIndex]
	query := normalizeQuery(f.QueryText)

	timeline := Timeline{Date: day.Date}
	// Ключ слота по моменту времени: одинаковые моменты в разных зонах совпадают
	slots := make(map[int64]int)

	for _, sess := range day.Sessions {
		if !matches(sess, day.Date, f, query, favs) {
			continue
		}

		slot := sess.Start.Truncate(time.Minute)
		idx, ok := slots[slot.UnixNano()]
		if !ok {
			idx = len(timeline.Groups)
			slots[slot.UnixNano()] = idx
			timeline.Groups = append(timeline.Groups, TimelineGroup{Time: slot})
		}
		timeline.Groups[idx].Sessions = append(timeline.Groups[idx].Sessions, sess)
		timeline.Shown++
	}

	// Стабильная сортировка сохраняет порядок снимка внутри слота
	sort.SliceStable(timeline.Groups, func(i, j int) bool {
		return timeline.Groups[i].Time.Before(timeline.Groups[j].Time)
	})

	return timeline, nil
}

func matches(sess Session, dayDate Date, f Filter, query string, favs FavoriteChecker) bool {
	if sess.Track != "" && f.ExcludedTracks.Has(sess.Track) {
		return false
	}
	if sess.Location != "" && f.ExcludedLocations.Has(sess.Location) {
		return false
	}

	date := sess.Date
	if date == "" {
		date = dayDate
	}
	if f.ExcludedDays.Has(string(date)) {
		return false
	}

	if query != "" && !matchesQuery(sess, query) {
		return false
	}

	if f.Segment == SegmentFavorites {
		if favs == nil || sess.Name == "" || !favs.HasFavorite(sess.Name) {
			return false
		}
	}
	return true
}

func matchesQuery(sess Session, query string) bool {
	fields := []string{sess.Title, sess.Description, sess.Track, sess.Location, sess.Speaker()}
	fields = append(fields, sess.Speakers...)
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(fold(field), query) {
			return true
		}
	}
	return false
}

func normalizeQuery(q string) string {
	return fold(strings.TrimSpace(q))
}

func fold(s string) string {
	// cases.Caser хранит состояние, поэтому создается на каждый вызов
	return cases.Fold().String(s)
}
