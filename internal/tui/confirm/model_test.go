package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-confplan/internal/favorites"
)

func decisionOf(t *testing.T, m *Model, msg tea.KeyMsg) favorites.Decision {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("Ожидалась команда для %q", msg.String())
	}
	d, ok := cmd().(DecisionMsg)
	if !ok {
		t.Fatalf("Ожидалось DecisionMsg для %q", msg.String())
	}
	return d.Decision
}

func newRequest() *Model {
	return NewRequestModel(favorites.ConfirmationRequest{
		SessionID: "a",
		Kind:      favorites.KindRemove,
		Title:     favorites.TitleRemove,
		Message:   favorites.RemoveConfirmPrompt,
	})
}

func TestRequestDefaultsToCancel(t *testing.T) {
	m := newRequest()
	if got := decisionOf(t, m, tea.KeyMsg{Type: tea.KeyEnter}); got != favorites.DecisionCancel {
		t.Errorf("Enter без выбора должен отменять, получено %v", got)
	}
}

func TestRequestKeys(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want favorites.Decision
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, favorites.DecisionRemove},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, favorites.DecisionCancel},
		{tea.KeyMsg{Type: tea.KeyEsc}, favorites.DecisionCancel},
	}
	for _, tc := range tests {
		if got := decisionOf(t, newRequest(), tc.msg); got != tc.want {
			t.Errorf("%q: ожидалось %v, получено %v", tc.msg.String(), tc.want, got)
		}
	}
}

func TestRequestSelection(t *testing.T) {
	m := newRequest()
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := decisionOf(t, m, tea.KeyMsg{Type: tea.KeyEnter}); got != favorites.DecisionRemove {
		t.Errorf("После выбора Remove ожидалось удаление, получено %v", got)
	}
}

func TestRequestView(t *testing.T) {
	view := newRequest().View()
	for _, want := range []string{favorites.TitleRemove, favorites.RemoveConfirmPrompt, "Cancel", "Remove"} {
		if !strings.Contains(view, want) {
			t.Errorf("В диалоге нет %q", want)
		}
	}
}

func TestAcknowledgement(t *testing.T) {
	m := NewAckModel(favorites.Acknowledgement{Title: favorites.TitleAdded})
	if m.IsRequest() {
		t.Fatal("Уведомление не ждет решения")
	}
	if !strings.Contains(m.View(), favorites.TitleAdded) {
		t.Error("В уведомлении нет заголовка")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}); cmd != nil {
		t.Error("Уведомление не принимает решений")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter должен закрывать уведомление")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Error("Ожидалось ClosedMsg")
	}
}
