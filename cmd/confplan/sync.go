package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// createSyncCommand создает команду для загрузки расписания из источника
func (app *Application) createSyncCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the schedule from the configured source",
		Long:  `Fetch the conference schedule from the configured source (file, ics or s3) and store the snapshot in the data file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("📥 Загрузка расписания из источника %q...\n", app.Config.Source)

			snapshot, err := app.sync(ctx)
			if err != nil {
				fmt.Printf("❌ Ошибка: %v\n", err)
				return err
			}

			fmt.Println("✅ Расписание обновлено!")
			fmt.Printf("   Дней: %d, докладов: %d, залов: %d, треков: %d\n",
				len(snapshot.Days), len(snapshot.Sessions()), len(snapshot.Locations), len(snapshot.Tracks))
			return nil
		},
	}
}
