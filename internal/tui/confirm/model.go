// Package confirm содержит модальный диалог подтверждения для TUI
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-confplan/internal/favorites"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3).
			Margin(2, 4)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("250"))
	selectedStyle = buttonStyle.Background(lipgloss.Color("205")).Foreground(lipgloss.Color("230"))
	dangerStyle   = buttonStyle.Background(lipgloss.Color("196")).Foreground(lipgloss.Color("230"))
)

// DecisionMsg отправляется при выборе в диалоге подтверждения
type DecisionMsg struct {
	Decision favorites.Decision
}

// ClosedMsg отправляется при закрытии уведомления
type ClosedMsg struct{}

// Model представляет модель диалога. Диалог либо подтверждает удаление,
// либо показывает уведомление с одной кнопкой
type Model struct {
	title    string
	message  string
	request  bool
	selected favorites.Decision
}

// NewRequestModel создает диалог для запроса подтверждения
func NewRequestModel(req favorites.ConfirmationRequest) *Model {
	return &Model{
		title:    req.Title,
		message:  req.Message,
		request:  true,
		selected: favorites.DecisionCancel,
	}
}

// NewAckModel создает диалог уведомления
func NewAckModel(ack favorites.Acknowledgement) *Model {
	return &Model{title: ack.Title}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// IsRequest сообщает, ожидает ли диалог решения
func (m *Model) IsRequest() bool {
	return m.request
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if !m.request {
		switch keyMsg.String() {
		case "enter", "esc", " ", "q":
			return m, func() tea.Msg { return ClosedMsg{} }
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "right", "tab", "h", "l":
		if m.selected == favorites.DecisionCancel {
			m.selected = favorites.DecisionRemove
		} else {
			m.selected = favorites.DecisionCancel
		}
	case "y", "r":
		return m, decide(favorites.DecisionRemove)
	case "n", "esc", "q":
		return m, decide(favorites.DecisionCancel)
	case "enter":
		return m, decide(m.selected)
	}
	return m, nil
}

func decide(d favorites.Decision) tea.Cmd {
	return func() tea.Msg {
		return DecisionMsg{Decision: d}
	}
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	if m.message != "" {
		b.WriteString("\n\n")
		b.WriteString(m.message)
	}
	b.WriteString("\n\n")

	if !m.request {
		b.WriteString(selectedStyle.Render("OK"))
		return dialogStyle.Render(b.String())
	}

	cancel, remove := buttonStyle, buttonStyle
	if m.selected == favorites.DecisionCancel {
		cancel = selectedStyle
	} else {
		remove = dangerStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		cancel.Render("Cancel"),
		"  ",
		remove.Render("Remove"),
	))
	return dialogStyle.Render(b.String())
}
