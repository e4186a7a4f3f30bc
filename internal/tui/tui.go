// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"io"
	stdlog "log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-confplan/internal/favorites"
	"github.com/hazadus/go-confplan/internal/filter"
	appLog "github.com/hazadus/go-confplan/internal/log"
	"github.com/hazadus/go-confplan/internal/schedule"
	"github.com/hazadus/go-confplan/internal/source"
	"github.com/hazadus/go-confplan/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	engine      *filter.Engine
	coordinator *favorites.Coordinator
	saveFunc    func() error // Функция для сохранения данных

	provider    *source.Provider
	refreshSpec string
	onSnapshot  func(*schedule.Schedule) error

	logFile string // Файл журнала на время работы TUI, пусто - журнал отключен
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(engine *filter.Engine, coordinator *favorites.Coordinator, saveFunc func() error) *App {
	return &App{
		engine:      engine,
		coordinator: coordinator,
		saveFunc:    saveFunc,
	}
}

// WithRefresh включает фоновое обновление снимка по cron-расписанию
func (tuiApp *App) WithRefresh(provider *source.Provider, spec string, onSnapshot func(*schedule.Schedule) error) *App {
	tuiApp.provider = provider
	tuiApp.refreshSpec = spec
	tuiApp.onSnapshot = onSnapshot
	return tuiApp
}

// WithLogFile задает файл, куда пишется журнал, пока открыт TUI
func (tuiApp *App) WithLogFile(path string) *App {
	tuiApp.logFile = path
	return tuiApp
}

// redirectLog уводит журнал с терминала на время работы TUI.
// Возвращаемая функция восстанавливает прежний вывод
func redirectLog(path string) (func(), error) {
	previous := appLog.Output()
	if path == "" {
		appLog.SetOutput(io.Discard)
		return func() { appLog.SetOutput(previous) }, nil
	}

	f, err := tea.LogToFile(path, "confplan")
	if err != nil {
		return nil, err
	}
	appLog.SetOutput(f)

	return func() {
		appLog.SetOutput(previous)
		stdlog.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	// Фоновое обновление пишет в журнал, вывод на stderr испортил бы экран
	restoreLog, err := redirectLog(tuiApp.logFile)
	if err != nil {
		return err
	}
	defer restoreLog()

	// Создаем модель для Bubble Tea
	model := app.NewMainModel(tuiApp.engine, tuiApp.coordinator, tuiApp.saveFunc)
	model.SetSnapshotHook(tuiApp.onSnapshot)
	defer model.Close()

	// Создаем программу Bubble Tea
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Обновления приходят из горутины cron и передаются в цикл событий
	if tuiApp.provider != nil && tuiApp.refreshSpec != "" {
		refresher, err := source.NewRefresher(tuiApp.provider, tuiApp.refreshSpec, func(s *schedule.Schedule) {
			p.Send(app.SnapshotMsg{Schedule: s})
		})
		if err != nil {
			return err
		}
		refresher.Start()
		defer refresher.Stop()
	}

	_, err = p.Run()
	return err
}
