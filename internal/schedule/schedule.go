// Package schedule содержит модель расписания конференции и чистую функцию
// построения отфильтрованной ленты докладов
package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// dateLayout формат календарной даты в снимке расписания
const dateLayout = "2006-01-02"

// sessionNamespace пространство имён для детерминированных ключей докладов
var sessionNamespace = uuid.MustParse("6f1c1a52-1f0e-4c77-9d55-3c6f0c6a8e21")

// Date календарная дата в формате YYYY-MM-DD
type Date string

// ParseDate проверяет строку и возвращает дату
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("неверная дата %q: %w", s, err)
	}
	return Date(s), nil
}

// DateOf возвращает календарную дату момента времени в его часовом поясе
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Time возвращает полночь даты в указанном часовом поясе
func (d Date) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(dateLayout, string(d), loc)
}

// String возвращает дату строкой
func (d Date) String() string {
	return string(d)
}

// Session доклад конференции. Name служит ключом доклада
type Session struct {
	Name        string    `yaml:"name" json:"name"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Speakers    []string  `yaml:"speakers,omitempty" json:"speakers,omitempty"`
	Track       string    `yaml:"track,omitempty" json:"track,omitempty"`
	Location    string    `yaml:"location,omitempty" json:"location,omitempty"`
	Date        Date      `yaml:"date" json:"date"`
	Start       time.Time `yaml:"start" json:"start"`
	End         time.Time `yaml:"end" json:"end"`
}

// Speaker возвращает докладчиков одной строкой
func (s Session) Speaker() string {
	return strings.Join(s.Speakers, ", ")
}

// SessionKey строит стабильный ключ для доклада без имени
func SessionKey(title string, start time.Time) string {
	return uuid.NewSHA1(sessionNamespace, []byte(title+"|"+start.UTC().Format(time.RFC3339))).String()
}

// Day день конференции с докладами в порядке снимка
type Day struct {
	Date     Date      `yaml:"date" json:"date"`
	Sessions []Session `yaml:"sessions" json:"sessions"`
}

// Schedule снимок расписания конференции
type Schedule struct {
	Locations []string `yaml:"locations" json:"locations"`
	Tracks    []string `yaml:"tracks,omitempty" json:"tracks,omitempty"`
	Days      []Day    `yaml:"days" json:"days"`
}

// Normalize дозаполняет снимок: ключи докладов, даты, списки треков и залов.
// Порядок докладов внутри дня не меняется
func (s *Schedule) Normalize() {
	seenLocations := NewNameSet(s.Locations...)
	seenTracks := NewNameSet(s.Tracks...)

	for di := range s.Days {
		day := &s.Days[di]
		for si := range day.Sessions {
			sess := &day.Sessions[si]
			if sess.Name == "" {
				sess.Name = SessionKey(sess.Title, sess.Start)
			}
			if sess.Date == "" {
				sess.Date = day.Date
			}
			if sess.Location != "" && !seenLocations.Has(sess.Location) {
				seenLocations.Add(sess.Location)
				s.Locations = append(s.Locations, sess.Location)
			}
			if sess.Track != "" && !seenTracks.Has(sess.Track) {
				seenTracks.Add(sess.Track)
				s.Tracks = append(s.Tracks, sess.Track)
			}
		}
	}
	slices.Sort(s.Tracks)
}

// SessionByName ищет доклад по ключу во всех днях
func (s *Schedule) SessionByName(name string) (Session, bool) {
	for _, day := range s.Days {
		for _, sess := range day.Sessions {
			if sess.Name == name {
				return sess, true
			}
		}
	}
	return Session{}, false
}

// Sessions возвращает все доклады снимка в порядке дней
func (s *Schedule) Sessions() []Session {
	var out []Session
	for _, day := range s.Days {
		out = append(out, day.Sessions...)
	}
	return out
}

// HasLocation сообщает, есть ли зал в снимке
func (s *Schedule) HasLocation(name string) bool {
	return slices.Contains(s.Locations, name)
}

// HasDay сообщает, есть ли день в снимке
func (s *Schedule) HasDay(date Date) bool {
	for _, day := range s.Days {
		if day.Date == date {
			return true
		}
	}
	return false
}
