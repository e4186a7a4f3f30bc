// Package detail содержит модель карточки доклада для TUI
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-confplan/internal/schedule"
	"github.com/hazadus/go-confplan/internal/utils"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0, 0, 2)

// GoBackMsg отправляется при возврате к расписанию
type GoBackMsg struct{}

// FavoriteMsg отправляется при добавлении доклада в избранное из карточки
type FavoriteMsg struct {
	Session schedule.Session
}

// Model представляет модель карточки доклада
type Model struct {
	session  schedule.Session
	favorite bool
	style    string
	viewport viewport.Model
}

// NewModel создает карточку. style задает стиль glamour ("dark", "light", "notty")
func NewModel(session schedule.Session, favorite bool, style string) *Model {
	if style == "" {
		style = "dark"
	}
	m := &Model{
		session:  session,
		favorite: favorite,
		style:    style,
		viewport: viewport.New(80, 20),
	}
	m.render()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Markdown возвращает описание доклада в разметке Markdown
func Markdown(s schedule.Session, favorite bool) string {
	var b strings.Builder
	title := s.Title
	if favorite {
		title = "★ " + title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**%s** %s", s.Date, utils.FormatTimeRange(s.Start, s.End))
	if !s.End.IsZero() {
		fmt.Fprintf(&b, " (%s)", utils.FormatLength(s.End.Sub(s.Start)))
	}
	b.WriteString("\n\n")
	if s.Location != "" {
		fmt.Fprintf(&b, "* Зал: %s\n", s.Location)
	}
	if s.Track != "" {
		fmt.Fprintf(&b, "* Трек: %s\n", s.Track)
	}
	if len(s.Speakers) > 0 {
		fmt.Fprintf(&b, "* Докладчики: %s\n", s.Speaker())
	}
	if s.Description != "" {
		b.WriteString("\n")
		b.WriteString(s.Description)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) render() {
	md := Markdown(m.session, m.favorite)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(max(m.viewport.Width-4, 20)),
	)
	if err != nil {
		m.viewport.SetContent(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		m.viewport.SetContent(md)
		return
	}
	m.viewport.SetContent(out)
}

// SetFavorite обновляет отметку избранного
func (m *Model) SetFavorite(favorite bool) {
	m.favorite = favorite
	m.render()
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "backspace":
			return m, func() tea.Msg { return GoBackMsg{} }
		case "f":
			sess := m.session
			return m, func() tea.Msg { return FavoriteMsg{Session: sess} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	return m.viewport.View() + "\n" + helpStyle.Render("↑/↓: прокрутка • f: в избранное • esc: назад")
}
