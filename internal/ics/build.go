package ics

import (
	"sort"

	"github.com/hazadus/go-confplan/internal/schedule"
)

// BuildSchedule собирает снимок расписания из вхождений. Дни следуют
// по возрастанию даты, доклады внутри дня в порядке вхождений.
// Первая категория события становится треком, организаторы докладчиками
func BuildSchedule(occurrences []Occurrence) *schedule.Schedule {
	byDate := make(map[schedule.Date][]schedule.Session)
	for _, occ := range occurrences {
		date := schedule.DateOf(occ.Start)
		sess := schedule.Session{
			Name:        schedule.SessionKey(occ.UID, occ.Start),
			Title:       occ.Summary,
			Description: occ.Description,
			Speakers:    occ.Organizers,
			Location:    occ.Location,
			Date:        date,
			Start:       occ.Start,
			End:         occ.End,
		}
		if len(occ.Categories) > 0 {
			sess.Track = occ.Categories[0]
		}
		byDate[date] = append(byDate[date], sess)
	}

	dates := make([]schedule.Date, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	s := &schedule.Schedule{}
	for _, d := range dates {
		s.Days = append(s.Days, schedule.Day{Date: d, Sessions: byDate[d]})
	}
	s.Normalize()
	return s
}
