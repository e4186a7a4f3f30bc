// Package timeline содержит модель экрана расписания для TUI
package timeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-confplan/internal/filter"
	"github.com/hazadus/go-confplan/internal/schedule"
	"github.com/hazadus/go-confplan/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	favoriteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	tabStyle          = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	activeTabStyle    = tabStyle.Foreground(lipgloss.Color("205")).Bold(true).Underline(true)
	hiddenTabStyle    = tabStyle.Foreground(lipgloss.Color("238")).Strikethrough(true)
	statusStyle       = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("46"))
	errorStyle        = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("196"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// SessionSelectedMsg отправляется при открытии карточки доклада
type SessionSelectedMsg struct {
	Session schedule.Session
}

// RequestAddMsg отправляется при добавлении доклада в избранное
type RequestAddMsg struct {
	Session schedule.Session
}

// RequestRemoveMsg отправляется при удалении доклада из избранного
type RequestRemoveMsg struct {
	Session schedule.Session
}

// OpenFiltersMsg отправляется при переходе к экрану фильтров
type OpenFiltersMsg struct{}

// FilterChangedMsg отправляется после любого изменения фильтра
type FilterChangedMsg struct {
	Err error
}

// sessionItem реализует интерфейс list.Item для доклада
type sessionItem struct {
	session  schedule.Session
	favorite bool
	first    bool // первый доклад в своем временном слоте
}

func (i sessionItem) FilterValue() string {
	return i.session.Title
}

// sessionItemDelegate реализует отображение элементов списка
type sessionItemDelegate struct{}

func (d sessionItemDelegate) Height() int                             { return 1 }
func (d sessionItemDelegate) Spacing() int                            { return 0 }
func (d sessionItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d sessionItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(sessionItem)
	if !ok {
		return
	}

	// Время выводится только у первого доклада слота
	slot := strings.Repeat(" ", 11)
	if i.first {
		slot = fmt.Sprintf("%-11s", utils.FormatTimeRange(i.session.Start, i.session.End))
	}
	mark := " "
	if i.favorite {
		mark = favoriteStyle.Render("★")
	}

	str := fmt.Sprintf("%s %s %-45s %-15s %s",
		slot,
		mark,
		utils.TruncateString(i.session.Title, 45),
		utils.TruncateString(i.session.Track, 15),
		utils.TruncateString(i.session.Location, 20))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана расписания
type Model struct {
	engine     *filter.Engine
	isFavorite func(id string) bool
	list       list.Model
	search     textinput.Model
	searching  bool
	status     string
	err        error
	quitting   bool
}

// NewModel создает новую модель экрана расписания
func NewModel(engine *filter.Engine, isFavorite func(id string) bool) *Model {
	l := list.New(nil, sessionItemDelegate{}, 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "поиск по названию, треку, залу, докладчику"
	search.SetValue(engine.Filter().QueryText)

	m := &Model{
		engine:     engine,
		isFavorite: isFavorite,
		list:       l,
		search:     search,
	}
	m.SetTimeline(engine.Timeline())
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetTimeline перестраивает список по новой ленте
func (m *Model) SetTimeline(tl schedule.Timeline) {
	items := make([]list.Item, 0, tl.Shown)
	for _, group := range tl.Groups {
		for idx, sess := range group.Sessions {
			items = append(items, sessionItem{
				session:  sess,
				favorite: m.isFavorite != nil && m.isFavorite(sess.Name),
				first:    idx == 0,
			})
		}
	}
	m.list.SetItems(items)
	m.list.Title = m.title(tl)
}

// SetStatus показывает сообщение под списком
func (m *Model) SetStatus(status string, err error) {
	m.status = status
	m.err = err
}

// Searching сообщает, активно ли поле поиска
func (m *Model) Searching() bool {
	return m.searching
}

func (m *Model) title(tl schedule.Timeline) string {
	segment := "все доклады"
	if m.engine.Filter().Segment == schedule.SegmentFavorites {
		segment = "избранное"
	}
	if tl.Date == "" {
		return "Расписание: " + segment
	}
	return fmt.Sprintf("%s: %s (%d)", tl.Date, segment, tl.Shown)
}

func (m *Model) selected() (schedule.Session, bool) {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		return schedule.Session{}, false
	}
	return item.session, true
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 6) // Оставляем место для вкладок, поиска и справки
		m.search.Width = msg.Width - 6
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "/":
			m.searching = true
			return m, m.search.Focus()

		case "tab":
			segment := schedule.SegmentFavorites
			if m.engine.Filter().Segment == schedule.SegmentFavorites {
				segment = schedule.SegmentAll
			}
			return m, changed(m.engine.SetSegment(segment))

		case "left", "h":
			if idx := m.engine.Filter().DayIndex; idx > 0 {
				return m, changed(m.engine.SetDayIndex(idx - 1))
			}
			return m, nil

		case "right", "l":
			if idx := m.engine.Filter().DayIndex; m.engine.Schedule() != nil && idx < len(m.engine.Schedule().Days)-1 {
				return m, changed(m.engine.SetDayIndex(idx + 1))
			}
			return m, nil

		case "t":
			return m, func() tea.Msg { return OpenFiltersMsg{} }

		case "enter", "f", "x":
			sess, ok := m.selected()
			if !ok {
				return m, nil
			}
			key := msg.String()
			return m, func() tea.Msg {
				switch key {
				case "f":
					return RequestAddMsg{Session: sess}
				case "x":
					return RequestRemoveMsg{Session: sess}
				}
				return SessionSelectedMsg{Session: sess}
			}
		}
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, changed(m.engine.SetQueryText(""))
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, changed(m.engine.SetQueryText(m.search.Value())))
}

func changed(err error) tea.Cmd {
	return func() tea.Msg {
		return FilterChangedMsg{Err: err}
	}
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	var b strings.Builder
	b.WriteString(m.tabsView())
	b.WriteString("\n")
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/→: день • /: поиск • tab: все/избранное • f: в избранное • x: убрать • t: фильтры • enter: подробнее • q: выход"))
	return b.String()
}

func (m *Model) tabsView() string {
	current := m.engine.Filter().DayIndex
	tabs := make([]string, 0)
	for idx, day := range m.engine.Days() {
		style := tabStyle
		switch {
		case idx == current:
			style = activeTabStyle
		case day.Hidden:
			style = hiddenTabStyle
		}
		tabs = append(tabs, style.Render(day.Date.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
