package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-confplan/internal/track"
)

// createDaysCommand создает команду для вывода дней конференции
func (app *Application) createDaysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List conference days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.snapshot()
			if err != nil {
				fmt.Printf("❌ Ошибка: %v\n", err)
				return nil
			}

			fmt.Printf("📅 Дни конференции (%d):\n\n", len(snapshot.Days))
			for i, day := range snapshot.Days {
				fmt.Printf("%d. %s (докладов: %d)\n", i+1, day.Date, len(day.Sessions))
			}
			return nil
		},
	}
}

// createTracksCommand создает команду для вывода треков
func (app *Application) createTracksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List conference tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.snapshot()
			if err != nil {
				fmt.Printf("❌ Ошибка: %v\n", err)
				return nil
			}

			tracks := track.NewManager(snapshot).ListTracks(nil)
			if len(tracks) == 0 {
				fmt.Println("📚 В расписании нет треков.")
				return nil
			}

			fmt.Printf("🏷️  Треки (%d):\n\n", len(tracks))
			for _, t := range tracks {
				fmt.Printf("• %s (докладов: %d)\n", t.Name, t.Sessions)
			}
			return nil
		},
	}
}

// createLocationsCommand создает команду для вывода залов
func (app *Application) createLocationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List conference locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.snapshot()
			if err != nil {
				fmt.Printf("❌ Ошибка: %v\n", err)
				return nil
			}

			if len(snapshot.Locations) == 0 {
				fmt.Println("📚 В расписании нет залов.")
				return nil
			}

			fmt.Printf("📍 Залы (%d):\n\n", len(snapshot.Locations))
			for _, name := range snapshot.Locations {
				fmt.Printf("• %s\n", name)
			}
			return nil
		},
	}
}
