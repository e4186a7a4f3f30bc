package ics

import (
	"errors"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	appLog "github.com/hazadus/go-confplan/internal/log"
)

const defaultMaxOccurrencesPerEvent = 500

// Occurrence конкретное вхождение события в часовом поясе отображения
type Occurrence struct {
	UID         string
	InstanceKey string

	Summary     string
	Description string
	Location    string
	Categories  []string
	Organizers  []string

	AllDay bool
	Start  time.Time
	End    time.Time
}

// ExpandConfig параметры разворачивания повторений
type ExpandConfig struct {
	DisplayLocation *time.Location

	// Окно [RangeStart, RangeEnd]. Нулевые границы означают без ограничения
	// для одиночных событий; повторяющиеся требуют заданного окна
	RangeStart time.Time
	RangeEnd   time.Time

	MaxOccurrencesPerEvent int
}

// ExpandOccurrences разворачивает RRULE с учётом EXDATE и RECURRENCE-ID.
// Результат отсортирован по началу, затем по UID
func ExpandOccurrences(events []ParsedEvent, cfg ExpandConfig) ([]Occurrence, error) {
	if !cfg.RangeEnd.IsZero() && cfg.RangeEnd.Before(cfg.RangeStart) {
		return nil, errors.New("expand: RangeEnd is before RangeStart")
	}
	if cfg.DisplayLocation == nil {
		cfg.DisplayLocation = time.UTC
	}
	if cfg.MaxOccurrencesPerEvent <= 0 {
		cfg.MaxOccurrencesPerEvent = defaultMaxOccurrencesPerEvent
	}

	baseByUID := make(map[string][]ParsedEvent)
	overridesByUID := make(map[string][]ParsedEvent)
	for _, ev := range events {
		if ev.IsOverride && ev.Recurrence != nil {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
		} else {
			baseByUID[ev.UID] = append(baseByUID[ev.UID], ev)
		}
	}

	out := make([]Occurrence, 0)
	for uid, baseEvents := range baseByUID {
		for _, ev := range baseEvents {
			var occ []Occurrence
			if ev.RawRRule == "" {
				occ = expandSingle(ev, overridesByUID[uid], cfg)
			} else {
				var hitCap bool
				occ, hitCap = expandRecurring(ev, overridesByUID[uid], cfg)
				if hitCap {
					appLog.Error("expand: truncated occurrences", errors.New("max occurrences reached"),
						"uid", uid, "cap", cfg.MaxOccurrencesPerEvent)
				}
			}
			out = append(out, occ...)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].UID < out[j].UID
	})
	return out, nil
}

func expandSingle(ev ParsedEvent, overrides []ParsedEvent, cfg ExpandConfig) []Occurrence {
	start, end := ev.Start, ev.End
	if o, ok := findOverride(overrides, start); ok {
		ev, start, end = o, o.Start, o.End
	}
	if !inRange(start, end, cfg) {
		return nil
	}
	return []Occurrence{makeOccurrence(ev, start, end, cfg.DisplayLocation)}
}

func expandRecurring(ev ParsedEvent, overrides []ParsedEvent, cfg ExpandConfig) ([]Occurrence, bool) {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		appLog.Error("expand: failed to parse RRULE", err, "uid", ev.UID, "rrule", ev.RawRRule)
		return nil, false
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	var times []time.Time
	if cfg.RangeStart.IsZero() && cfg.RangeEnd.IsZero() {
		// без окна берём не больше cap + 1 вхождений, чтобы заметить усечение
		it := set.Iterator()
		for len(times) <= cfg.MaxOccurrencesPerEvent {
			t, ok := it()
			if !ok {
				break
			}
			times = append(times, t)
		}
	} else {
		times = set.Between(cfg.RangeStart.In(ev.Start.Location()), cfg.RangeEnd.In(ev.Start.Location()), true)
	}

	hitCap := false
	if len(times) > cfg.MaxOccurrencesPerEvent {
		times = times[:cfg.MaxOccurrencesPerEvent]
		hitCap = true
	}

	dur := ev.End.Sub(ev.Start)
	out := make([]Occurrence, 0, len(times))
	for _, occStart := range times {
		occEnd := occStart.Add(dur)
		if ev.AllDay {
			occStart = time.Date(occStart.Year(), occStart.Month(), occStart.Day(), 0, 0, 0, 0, occStart.Location())
			occEnd = occStart.AddDate(0, 0, 1)
		}

		base := ev
		if o, ok := findOverride(overrides, occStart); ok {
			base, occStart, occEnd = o, o.Start, o.End
		}
		out = append(out, makeOccurrence(base, occStart, occEnd, cfg.DisplayLocation))
	}
	return out, hitCap
}

// findOverride ищет переопределение с RECURRENCE-ID, равным началу вхождения
func findOverride(overrides []ParsedEvent, start time.Time) (ParsedEvent, bool) {
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.Equal(start) {
			return ov, true
		}
	}
	return ParsedEvent{}, false
}

func makeOccurrence(ev ParsedEvent, start, end time.Time, loc *time.Location) Occurrence {
	startLocal := start.In(loc)
	return Occurrence{
		UID:         ev.UID,
		InstanceKey: startLocal.Format(time.RFC3339),
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Categories:  ev.Categories,
		Organizers:  ev.Organizers,
		AllDay:      ev.AllDay,
		Start:       startLocal,
		End:         end.In(loc),
	}
}

func inRange(start, end time.Time, cfg ExpandConfig) bool {
	if !cfg.RangeStart.IsZero() && end.Before(cfg.RangeStart) {
		return false
	}
	if !cfg.RangeEnd.IsZero() && start.After(cfg.RangeEnd) {
		return false
	}
	return true
}
