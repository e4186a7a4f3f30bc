package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-confplan/internal/schedule"
	"github.com/hazadus/go-confplan/internal/utils"
)

// listOptions флаги команды list
type listOptions struct {
	day              int
	query            string
	excludeTracks    []string
	excludeLocations []string
	excludeDays      []string
	favorites        bool
}

// filter переводит флаги в фильтр ленты. Номер дня во флаге начинается с 1
func (o listOptions) filter() schedule.Filter {
	f := schedule.NewFilter()
	f.DayIndex = o.day - 1
	f.QueryText = o.query
	f.ExcludedTracks = schedule.NewNameSet(o.excludeTracks...)
	f.ExcludedLocations = schedule.NewNameSet(o.excludeLocations...)
	f.ExcludedDays = schedule.NewNameSet(o.excludeDays...)
	if o.favorites {
		f.Segment = schedule.SegmentFavorites
	}
	return f
}

// createListCommand создает команду для вывода ленты докладов
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	opts := listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the timeline of a conference day",
		Long:  `Show the sessions of one conference day grouped by start time, filtered by track, location, day, text and favorites.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listCommand(ctx, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.day, "day", "d", 1, "Conference day number, starting from 1")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Search text for title, speaker, track or location")
	cmd.Flags().StringSliceVar(&opts.excludeTracks, "exclude-track", nil, "Track to hide, may be repeated")
	cmd.Flags().StringSliceVar(&opts.excludeLocations, "exclude-location", nil, "Location to hide, may be repeated")
	cmd.Flags().StringSliceVar(&opts.excludeDays, "exclude-day", nil, "Date (YYYY-MM-DD) to hide, may be repeated")
	cmd.Flags().BoolVarP(&opts.favorites, "favorites", "f", false, "Show only favorite sessions")

	return cmd
}

func (app *Application) listCommand(ctx context.Context, opts listOptions) error {
	if app.Data.Schedule == nil || len(app.Data.Schedule.Days) == 0 {
		fmt.Println("📚 Расписание пусто. Загрузите его командой 'sync'.")
		return nil
	}

	provider, err := app.provider()
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	timeline, err := provider.GetTimeline(ctx, opts.filter(), app.Store)
	if err != nil {
		var indexErr *schedule.IndexError
		if errors.As(err, &indexErr) {
			fmt.Printf("❌ Ошибка: день %d не найден, в расписании дней: %d\n", opts.day, indexErr.Count)
			return nil
		}
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	printTimeline(timeline, opts.day, app.Store)
	return nil
}

func printTimeline(timeline schedule.Timeline, day int, favs schedule.FavoriteChecker) {
	fmt.Printf("📅 День %d: %s\n\n", day, timeline.Date)

	if timeline.Shown == 0 {
		fmt.Println("🔍 Нет докладов, подходящих под фильтр.")
		return
	}

	for _, group := range timeline.Groups {
		fmt.Printf("⏰ %s\n", utils.FormatClock(group.Time))
		for _, sess := range group.Sessions {
			mark := " "
			if favs.HasFavorite(sess.Name) {
				mark = "★"
			}

			fmt.Printf("  %s %s\n", mark, utils.TruncateString(sess.Title, 60))
			fmt.Printf("      %s", utils.FormatTimeRange(sess.Start, sess.End))
			if sess.Location != "" {
				fmt.Printf(" | %s", sess.Location)
			}
			if sess.Track != "" {
				fmt.Printf(" | %s", sess.Track)
			}
			fmt.Println()
			if speaker := sess.Speaker(); speaker != "" {
				fmt.Printf("      🎤 %s\n", speaker)
			}
			fmt.Printf("      🔑 %s\n", sess.Name)
		}
		fmt.Println()
	}

	fmt.Printf("📊 Показано докладов: %d\n", timeline.Shown)
}
