// Package track содержит логику работы с треками конференции
package track

import (
	"github.com/hazadus/go-confplan/internal/schedule"
)

// Track трек и признак его исключения из ленты
type Track struct {
	Name     string
	Sessions int
	Excluded bool
}

// Manager перечисляет треки снимка расписания
type Manager struct {
	snapshot *schedule.Schedule
}

// NewManager создает новый экземпляр Manager
func NewManager(snapshot *schedule.Schedule) *Manager {
	return &Manager{
		snapshot: snapshot,
	}
}

// ListTracks возвращает треки в порядке снимка с числом докладов
// и признаком исключения по переданному множеству
func (m *Manager) ListTracks(excluded schedule.NameSet) []Track {
	if m.snapshot == nil {
		return nil
	}

	counts := make(map[string]int)
	for _, sess := range m.snapshot.Sessions() {
		if sess.Track != "" {
			counts[sess.Track]++
		}
	}

	tracks := make([]Track, 0, len(m.snapshot.Tracks))
	for _, name := range m.snapshot.Tracks {
		tracks = append(tracks, Track{
			Name:     name,
			Sessions: counts[name],
			Excluded: excluded.Has(name),
		})
	}
	return tracks
}

// Excluded возвращает имена исключенных треков из списка
func Excluded(tracks []Track) []string {
	out := make([]string, 0)
	for _, t := range tracks {
		if t.Excluded {
			out = append(out, t.Name)
		}
	}
	return out
}
