package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-confplan/internal/favorites"
	"github.com/hazadus/go-confplan/internal/filter"
	"github.com/hazadus/go-confplan/internal/tui"
)

// createTUICommand создает команду для запуска TUI
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive schedule browser",
		Long:  `Start the text user interface with the day timeline, search, filters and favorites.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(ctx)
		},
	}
}

func (app *Application) runTUI(ctx context.Context) error {
	// Без закэшированного снимка загружаем расписание перед запуском
	if app.Data.Schedule == nil || len(app.Data.Schedule.Days) == 0 {
		fmt.Println("📥 Расписание не загружено, выполняю sync...")
		if _, err := app.sync(ctx); err != nil {
			fmt.Printf("❌ Ошибка: %v\n", err)
			return err
		}
	}

	engine, err := filter.New(app.Data.Schedule, app.Store)
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	provider, err := app.provider()
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	coordinator := favorites.NewCoordinator(app.Store, engine)
	tuiApp := tui.NewApp(engine, coordinator, app.SaveData).
		WithRefresh(provider, app.Config.RefreshCron, app.storeSnapshot).
		WithLogFile(filepath.Join(filepath.Dir(app.Config.DataFile), "confplan.log"))

	if err := tuiApp.Run(); err != nil {
		return fmt.Errorf("ошибка запуска TUI: %w", err)
	}
	return nil
}

