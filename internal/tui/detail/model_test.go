package detail

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-confplan/internal/schedule"
)

func testSession() schedule.Session {
	start := time.Date(2016, 6, 1, 9, 0, 0, 0, time.UTC)
	return schedule.Session{
		Name:        "a",
		Title:       "Keynote",
		Description: "Opening talk about the conference.",
		Speakers:    []string{"Alice", "Bob"},
		Track:       "General",
		Location:    "Room 1",
		Date:        "2016-06-01",
		Start:       start,
		End:         start.Add(90 * time.Minute),
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testSession(), true)
	for _, want := range []string{"# ★ Keynote", "09:00-10:30", "1 ч 30 мин", "Room 1", "General", "Alice, Bob", "Opening talk"} {
		if !strings.Contains(md, want) {
			t.Errorf("В разметке нет %q:\n%s", want, md)
		}
	}
}

func TestView(t *testing.T) {
	m := NewModel(testSession(), false, "notty")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	if !strings.Contains(view, "Keynote") || !strings.Contains(view, "Room 1") {
		t.Errorf("Карточка не содержит данных доклада:\n%s", view)
	}

	m.SetFavorite(true)
	if !strings.Contains(m.View(), "★") {
		t.Error("Карточка избранного доклада должна содержать отметку")
	}
}

func TestKeys(t *testing.T) {
	m := NewModel(testSession(), false, "notty")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	if msg, ok := cmd().(FavoriteMsg); !ok || msg.Session.Name != "a" {
		t.Error("f должна отправлять FavoriteMsg")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(GoBackMsg); !ok {
		t.Error("Esc должен отправлять GoBackMsg")
	}
}
