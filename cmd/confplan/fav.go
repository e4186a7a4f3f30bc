package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-confplan/internal/favorites"
	"github.com/hazadus/go-confplan/internal/schedule"
)

const maxSuggestions = 3

// createFavCommand создает группу команд для работы с избранным
func (app *Application) createFavCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite sessions",
	}

	cmd.AddCommand(app.createFavAddCommand())
	cmd.AddCommand(app.createFavRemoveCommand())
	cmd.AddCommand(app.createFavListCommand())

	return cmd
}

func (app *Application) createFavAddCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "add <session>",
		Short: "Add a session to favorites",
		Long:  `Add a session to favorites by its key. If the session is already a favorite, you are asked whether to remove it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.favAddCommand(args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm without asking")

	return cmd
}

func (app *Application) createFavRemoveCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <session>",
		Short: "Remove a session from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.favRemoveCommand(args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm without asking")

	return cmd
}

func (app *Application) createFavListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorite sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.favListCommand()
			return nil
		},
	}
}

func (app *Application) favAddCommand(name string, yes bool) error {
	sess, ok := app.findSession(name)
	if !ok {
		return nil
	}

	coordinator := favorites.NewCoordinator(app.Store, nil)
	outcome, err := coordinator.RequestAdd(sess.Name)
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	if outcome.Ack != nil {
		if err := app.SaveData(); err != nil {
			fmt.Printf("❌ Ошибка сохранения данных: %v\n", err)
			return err
		}
		fmt.Printf("✅ %s: %s\n", outcome.Ack.Title, sess.Title)
		return nil
	}

	return app.resolveRequest(coordinator, outcome.Request, sess, yes)
}

func (app *Application) favRemoveCommand(name string, yes bool) error {
	sess, ok := app.findSession(name)
	if !ok {
		return nil
	}

	if !app.Store.HasFavorite(sess.Name) {
		fmt.Printf("ℹ️  Доклад не в избранном: %s\n", sess.Title)
		return nil
	}

	coordinator := favorites.NewCoordinator(app.Store, nil)
	req, err := coordinator.RequestRemove(sess.Name, favorites.TitleRemove)
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	return app.resolveRequest(coordinator, req, sess, yes)
}

// resolveRequest задает вопрос подтверждения и применяет ответ
func (app *Application) resolveRequest(coordinator *favorites.Coordinator, req *favorites.ConfirmationRequest, sess schedule.Session, yes bool) error {
	fmt.Printf("⭐ %s: %s\n", req.Title, sess.Title)

	decision := favorites.DecisionCancel
	if yes || app.confirm(req.Message) {
		decision = favorites.DecisionRemove
	}

	result, err := coordinator.Resolve(decision)
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	if result.Kind != favorites.ResultRemoved {
		fmt.Println("↩️  Избранное не изменилось.")
		return nil
	}

	if err := app.SaveData(); err != nil {
		fmt.Printf("❌ Ошибка сохранения данных: %v\n", err)
		return err
	}
	fmt.Printf("🗑️  Удалено из избранного: %s\n", sess.Title)
	return nil
}

// confirm читает ответ y/N из app.In. Пустой ответ означает отказ
func (app *Application) confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)

	answer, _ := bufio.NewReader(app.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
		return true
	default:
		return false
	}
}

// findSession ищет доклад по ключу и печатает похожие варианты, если его нет
func (app *Application) findSession(name string) (schedule.Session, bool) {
	snapshot, err := app.snapshot()
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return schedule.Session{}, false
	}

	if sess, ok := snapshot.SessionByName(name); ok {
		return sess, true
	}

	fmt.Printf("❌ Доклад не найден: %s\n", name)
	if suggestions := suggestSessions(snapshot, name); len(suggestions) > 0 {
		fmt.Println("💡 Возможно, вы имели в виду:")
		for _, sess := range suggestions {
			fmt.Printf("   %s (%s)\n", sess.Name, sess.Title)
		}
	}
	return schedule.Session{}, false
}

// suggestSessions подбирает доклады, ключ или название которых похожи на запрос
func suggestSessions(snapshot *schedule.Schedule, pattern string) []schedule.Session {
	sessions := snapshot.Sessions()

	candidates := make([]string, 0, len(sessions)*2)
	for _, sess := range sessions {
		candidates = append(candidates, sess.Name, sess.Title)
	}

	seen := make(map[string]bool)
	out := make([]schedule.Session, 0, maxSuggestions)
	for _, match := range fuzzy.Find(pattern, candidates) {
		sess := sessions[match.Index/2]
		if seen[sess.Name] {
			continue
		}
		seen[sess.Name] = true
		out = append(out, sess)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func (app *Application) favListCommand() {
	ids := app.Store.List()
	if len(ids) == 0 {
		fmt.Println("⭐ Избранное пусто. Добавьте доклад командой 'fav add'.")
		return
	}

	fmt.Printf("⭐ Избранное (%d):\n\n", len(ids))
	for i, id := range ids {
		title := "(нет в текущем расписании)"
		if app.Data.Schedule != nil {
			if sess, ok := app.Data.Schedule.SessionByName(id); ok {
				title = fmt.Sprintf("%s, %s %s", sess.Title, sess.Date, sess.Start.Format("15:04"))
			}
		}
		fmt.Printf("%d. %s\n   🔑 %s\n", i+1, title, id)
	}
}
