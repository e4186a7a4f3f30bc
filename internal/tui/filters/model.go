// Package filters содержит модель экрана фильтров расписания для TUI
package filters

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-confplan/internal/filter"
	"github.com/hazadus/go-confplan/internal/schedule"
	"github.com/hazadus/go-confplan/internal/track"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true).MarginTop(1)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	excludedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
)

// GoBackMsg отправляется при возврате к расписанию
type GoBackMsg struct{}

// ChangedMsg отправляется после переключения фильтра
type ChangedMsg struct {
	Err error
}

// rowKind определяет тип строки экрана
type rowKind int

const (
	trackRow rowKind = iota
	locationRow
	dayRow
)

var sectionTitles = map[rowKind]string{
	trackRow:    "Треки",
	locationRow: "Залы (l)",
	dayRow:      "Дни (D)",
}

type row struct {
	kind     rowKind
	name     string
	sessions int
	hidden   bool
}

// Model представляет модель экрана фильтров
type Model struct {
	engine *filter.Engine
	rows   []row
	cursor int
	err    string
}

// NewModel создает новую модель экрана фильтров
func NewModel(engine *filter.Engine) *Model {
	m := &Model{engine: engine}
	m.reload()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// reload перечитывает состояние фильтров из движка
func (m *Model) reload() {
	m.rows = m.rows[:0]

	tracks := track.NewManager(m.engine.Schedule()).ListTracks(m.engine.Filter().ExcludedTracks)
	for _, t := range tracks {
		m.rows = append(m.rows, row{kind: trackRow, name: t.Name, sessions: t.Sessions, hidden: t.Excluded})
	}
	for _, loc := range m.engine.Locations() {
		m.rows = append(m.rows, row{kind: locationRow, name: loc.Name, hidden: loc.Hidden})
	}
	for _, day := range m.engine.Days() {
		m.rows = append(m.rows, row{kind: dayRow, name: day.Date.String(), hidden: day.Hidden})
	}

	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "t":
		return m, func() tea.Msg { return GoBackMsg{} }

	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j", "tab":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "l":
		m.jumpTo(locationRow)

	case "D":
		m.jumpTo(dayRow)

	case " ", "enter", "x":
		return m, m.toggle()
	}
	return m, nil
}

// jumpTo переводит курсор на следующую строку раздела, по кругу
func (m *Model) jumpTo(kind rowKind) {
	for step := 1; step <= len(m.rows); step++ {
		idx := (m.cursor + step) % len(m.rows)
		if m.rows[idx].kind == kind {
			m.cursor = idx
			return
		}
	}
}

// toggle переключает исключение строки под курсором
func (m *Model) toggle() tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}
	current := m.rows[m.cursor]

	var err error
	switch current.kind {
	case trackRow:
		tracks := track.NewManager(m.engine.Schedule()).ListTracks(m.engine.Filter().ExcludedTracks)
		for i := range tracks {
			if tracks[i].Name == current.name {
				tracks[i].Excluded = !tracks[i].Excluded
			}
		}
		err = m.engine.SetExcludedTracks(track.Excluded(tracks))
	case locationRow:
		err = m.engine.ToggleLocation(current.name)
	case dayRow:
		err = m.engine.ToggleDay(schedule.Date(current.name))
	}

	m.err = ""
	if err != nil {
		m.err = fmt.Sprintf("Ошибка пересчета расписания: %v", err)
	}
	m.reload()

	return func() tea.Msg {
		return ChangedMsg{Err: err}
	}
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Фильтры расписания"))
	b.WriteString("\n")

	for idx, r := range m.rows {
		if idx == 0 || m.rows[idx-1].kind != r.kind {
			b.WriteString(sectionStyle.Render(sectionTitles[r.kind]))
			b.WriteString("\n")
		}

		check := "[x]"
		if r.hidden {
			check = "[ ]"
		}
		label := r.name
		if r.kind == trackRow {
			label = fmt.Sprintf("%s (%d)", r.name, r.sessions)
		}

		line := check + " " + label
		switch {
		case idx == m.cursor:
			line = focusedStyle.Render("> " + line)
		case r.hidden:
			line = "  " + excludedStyle.Render(line)
		default:
			line = "  " + blurredStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(blurredStyle.Render("Расписание пусто"))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: выбор • space: показать/скрыть • l: залы • D: дни • esc: назад"))
	return b.String()
}
