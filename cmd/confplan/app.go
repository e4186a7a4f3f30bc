package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/hazadus/go-confplan/internal/config"
	"github.com/hazadus/go-confplan/internal/data"
	"github.com/hazadus/go-confplan/internal/favorites"
	"github.com/hazadus/go-confplan/internal/schedule"
	"github.com/hazadus/go-confplan/internal/source"
)

// errNoSchedule возвращается, если снимок еще не загружен
var errNoSchedule = errors.New("расписание не загружено, выполните 'confplan sync'")

// favoriteStore хранилище избранного с перечислением ключей
type favoriteStore interface {
	favorites.Store
	List() []string
}

// Application объединяет конфигурацию, файл данных и хранилище избранного
type Application struct {
	Config *config.Config
	Data   *data.AppData
	Store  favoriteStore
	In     io.Reader // Источник ответов на вопросы подтверждения

	closeStore func() error
}

// NewApplication загружает файл данных и открывает хранилище избранного
func NewApplication(cfg *config.Config) (*Application, error) {
	appData := data.NewAppData()
	if err := appData.LoadData(cfg.DataFile); err != nil {
		return nil, err
	}

	app := &Application{
		Config: cfg,
		Data:   appData,
		Store:  appData,
		In:     os.Stdin,
	}

	if cfg.FavoritesBackend == config.BackendSQLite {
		store, err := favorites.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		app.Store = store
		app.closeStore = store.Close
	}
	return app, nil
}

// SaveData сохраняет файл данных
func (app *Application) SaveData() error {
	return app.Data.SaveData(app.Config.DataFile)
}

// Close освобождает хранилище избранного
func (app *Application) Close() {
	if app.closeStore != nil {
		_ = app.closeStore()
		app.closeStore = nil
	}
}

// provider возвращает Provider поверх настроенного источника.
// Закэшированный в файле данных снимок используется без обращения к источнику
func (app *Application) provider() (*source.Provider, error) {
	src, err := source.New(app.Config)
	if err != nil {
		return nil, err
	}
	if app.Data.Schedule != nil {
		return source.NewStaticProvider(src, app.Data.Schedule), nil
	}
	return source.NewProvider(src), nil
}

// snapshot возвращает закэшированный снимок или ошибку errNoSchedule
func (app *Application) snapshot() (*schedule.Schedule, error) {
	if app.Data.Schedule == nil || len(app.Data.Schedule.Days) == 0 {
		return nil, errNoSchedule
	}
	return app.Data.Schedule, nil
}

// sync загружает снимок из источника и сохраняет его в файл данных
func (app *Application) sync(ctx context.Context) (*schedule.Schedule, error) {
	src, err := source.New(app.Config)
	if err != nil {
		return nil, err
	}
	snapshot, err := source.NewProvider(src).Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot, app.storeSnapshot(snapshot)
}

// storeSnapshot запоминает снимок и сохраняет файл данных
func (app *Application) storeSnapshot(s *schedule.Schedule) error {
	app.Data.SetSchedule(s, app.Config.Source)
	return app.SaveData()
}
