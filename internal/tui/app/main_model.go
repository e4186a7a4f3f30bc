// Package app содержит основную логику TUI приложения
package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-confplan/internal/favorites"
	"github.com/hazadus/go-confplan/internal/filter"
	"github.com/hazadus/go-confplan/internal/schedule"
	"github.com/hazadus/go-confplan/internal/tui/confirm"
	"github.com/hazadus/go-confplan/internal/tui/detail"
	"github.com/hazadus/go-confplan/internal/tui/filters"
	"github.com/hazadus/go-confplan/internal/tui/timeline"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// TimelineScreen - экран расписания
	TimelineScreen ScreenType = iota
	// FiltersScreen - экран фильтров
	FiltersScreen
	// DetailScreen - карточка доклада
	DetailScreen
)

// SnapshotMsg доставляет новый снимок расписания из фонового обновления
type SnapshotMsg struct {
	Schedule *schedule.Schedule
}

// MainModel представляет главную модель TUI
type MainModel struct {
	engine        *filter.Engine
	coordinator   *favorites.Coordinator
	currentScreen ScreenType
	timelineModel *timeline.Model
	filtersModel  *filters.Model
	detailModel   *detail.Model
	dialog        *confirm.Model // Модальный диалог поверх текущего экрана
	window        tea.WindowSizeMsg
	glamourStyle  string
	saveFunc      func() error                   // Функция для сохранения данных
	onSnapshot    func(*schedule.Schedule) error // Сохранение нового снимка
	unsubscribe   func()
}

// NewMainModel создает новую главную модель
func NewMainModel(engine *filter.Engine, coordinator *favorites.Coordinator, saveFunc func() error) *MainModel {
	m := &MainModel{
		engine:        engine,
		coordinator:   coordinator,
		currentScreen: TimelineScreen,
		timelineModel: timeline.NewModel(engine, coordinator.IsFavorite),
		glamourStyle:  "dark",
		saveFunc:      saveFunc,
	}
	m.unsubscribe = engine.Subscribe(func(tl schedule.Timeline) {
		m.timelineModel.SetTimeline(tl)
	})
	return m
}

// SetSnapshotHook задает функцию сохранения снимка после фонового обновления
func (m *MainModel) SetSnapshotHook(fn func(*schedule.Schedule) error) {
	m.onSnapshot = fn
}

// SetGlamourStyle задает стиль отрисовки карточки доклада
func (m *MainModel) SetGlamourStyle(style string) {
	m.glamourStyle = style
}

// Screen возвращает текущий экран
func (m *MainModel) Screen() ScreenType {
	return m.currentScreen
}

// Dialog возвращает открытый диалог или nil
func (m *MainModel) Dialog() *confirm.Model {
	return m.dialog
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.timelineModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Диалог модальный: клавиши получает только он
		if m.dialog != nil {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.window = msg
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.timelineModel, cmd = m.timelineModel.Update(msg)
		cmds = append(cmds, cmd)
		if m.detailModel != nil {
			m.detailModel, cmd = m.detailModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case timeline.RequestAddMsg:
		return m, m.requestAdd(msg.Session)

	case detail.FavoriteMsg:
		return m, m.requestAdd(msg.Session)

	case timeline.RequestRemoveMsg:
		req, err := m.coordinator.RequestRemove(msg.Session.Name, "")
		if err != nil {
			m.timelineModel.SetStatus("", err)
			return m, nil
		}
		m.dialog = confirm.NewRequestModel(*req)
		return m, nil

	case confirm.DecisionMsg:
		m.dialog = nil
		res, err := m.coordinator.Resolve(msg.Decision)
		if err != nil {
			m.timelineModel.SetStatus("", err)
			return m, nil
		}
		m.afterResolve(res)
		return m, nil

	case confirm.ClosedMsg:
		m.dialog = nil
		return m, nil

	case timeline.FilterChangedMsg:
		m.filterChanged(msg.Err)
		return m, nil

	case filters.ChangedMsg:
		m.filterChanged(msg.Err)
		return m, nil

	case timeline.OpenFiltersMsg:
		m.currentScreen = FiltersScreen
		m.filtersModel = filters.NewModel(m.engine)
		return m, m.filtersModel.Init()

	case filters.GoBackMsg:
		m.currentScreen = TimelineScreen
		m.filtersModel = nil
		return m, nil

	case timeline.SessionSelectedMsg:
		m.currentScreen = DetailScreen
		m.detailModel = detail.NewModel(msg.Session, m.coordinator.IsFavorite(msg.Session.Name), m.glamourStyle)
		if m.window.Width > 0 {
			m.detailModel, _ = m.detailModel.Update(m.window)
		}
		return m, m.detailModel.Init()

	case detail.GoBackMsg:
		m.currentScreen = TimelineScreen
		m.detailModel = nil
		return m, nil

	case SnapshotMsg:
		m.applySnapshot(msg.Schedule)
		return m, nil
	}

	// Передаем сообщение активной модели
	var cmd tea.Cmd
	switch m.currentScreen {
	case TimelineScreen:
		m.timelineModel, cmd = m.timelineModel.Update(msg)
	case FiltersScreen:
		if m.filtersModel != nil {
			m.filtersModel, cmd = m.filtersModel.Update(msg)
		}
	case DetailScreen:
		if m.detailModel != nil {
			m.detailModel, cmd = m.detailModel.Update(msg)
		}
	}
	return m, cmd
}

// requestAdd передает запрос координатору и открывает диалог по результату
func (m *MainModel) requestAdd(sess schedule.Session) tea.Cmd {
	outcome, err := m.coordinator.RequestAdd(sess.Name)
	if err != nil {
		m.timelineModel.SetStatus("", err)
		return nil
	}

	switch {
	case outcome.Request != nil:
		m.dialog = confirm.NewRequestModel(*outcome.Request)
	case outcome.Ack != nil:
		m.dialog = confirm.NewAckModel(*outcome.Ack)
		m.save()
		m.timelineModel.SetTimeline(m.engine.Timeline())
		if m.detailModel != nil {
			m.detailModel.SetFavorite(true)
		}
	}
	return nil
}

// afterResolve сохраняет данные и показывает результат решения
func (m *MainModel) afterResolve(res favorites.Result) {
	if res.Kind != favorites.ResultRemoved {
		m.timelineModel.SetStatus("", nil)
		return
	}

	m.save()
	if m.detailModel != nil {
		m.detailModel.SetFavorite(false)
	}
	if res.RefreshErr != nil {
		m.timelineModel.SetStatus("", fmt.Errorf("ошибка обновления расписания: %w", res.RefreshErr))
		return
	}
	m.timelineModel.SetStatus("Доклад удален из избранного", nil)
}

// filterChanged закрывает открытый запрос: изменение фильтра
// равносильно закрытию строки списка
func (m *MainModel) filterChanged(err error) {
	if m.coordinator.State() == favorites.StateRequested {
		m.coordinator.Dismiss()
	}
	if m.dialog != nil && m.dialog.IsRequest() {
		m.dialog = nil
	}

	var indexErr *schedule.IndexError
	switch {
	case errors.As(err, &indexErr):
		m.timelineModel.SetStatus("", fmt.Errorf("день %d вне диапазона", indexErr.Index+1))
	case err != nil:
		m.timelineModel.SetStatus("", err)
	default:
		m.timelineModel.SetStatus("", nil)
	}
}

// applySnapshot подменяет снимок в движке и сохраняет его
func (m *MainModel) applySnapshot(s *schedule.Schedule) {
	if s == nil {
		return
	}
	err := m.engine.SetSchedule(s)
	m.filterChanged(err)
	if m.filtersModel != nil {
		m.filtersModel = filters.NewModel(m.engine)
	}
	if m.onSnapshot != nil {
		if err := m.onSnapshot(s); err != nil {
			m.timelineModel.SetStatus("", fmt.Errorf("ошибка сохранения расписания: %w", err))
			return
		}
	}
	if err == nil {
		m.timelineModel.SetStatus("Расписание обновлено", nil)
	}
}

func (m *MainModel) save() {
	if m.saveFunc == nil {
		return
	}
	if err := m.saveFunc(); err != nil {
		m.timelineModel.SetStatus("", fmt.Errorf("ошибка сохранения данных: %w", err))
	}
}

// View отображает интерфейс
func (m *MainModel) View() string {
	if m.dialog != nil {
		return m.dialog.View()
	}

	switch m.currentScreen {
	case TimelineScreen:
		return m.timelineModel.View()

	case FiltersScreen:
		if m.filtersModel != nil {
			return m.filtersModel.View()
		}
		return "Ошибка: модель фильтров не инициализирована"

	case DetailScreen:
		if m.detailModel != nil {
			return m.detailModel.View()
		}
		return "Ошибка: модель карточки не инициализирована"

	default:
		return "Неизвестный экран"
	}
}

// Close отписывает модель от движка
func (m *MainModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}
