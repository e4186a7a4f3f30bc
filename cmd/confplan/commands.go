package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "confplan",
		Short:        "A command line planner for conference schedules",
		Long:         `Browse a conference schedule, filter it by track, location, day and text, and keep a list of favorite sessions.`,
		SilenceUsage: true,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createDaysCommand())
	rootCmd.AddCommand(app.createTracksCommand())
	rootCmd.AddCommand(app.createLocationsCommand())
	rootCmd.AddCommand(app.createFavCommand())
	rootCmd.AddCommand(app.createSyncCommand(ctx))
	rootCmd.AddCommand(app.createPushCommand(ctx))
	rootCmd.AddCommand(app.createTUICommand(ctx))

	return rootCmd
}
