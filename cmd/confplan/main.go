package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/go-confplan/internal/config"
	appLog "github.com/hazadus/go-confplan/internal/log"
)

const (
	defaultConfigPath = "~/.confplan/config.yaml"
)

func main() {
	// Загружаем конфигурацию, без файла работаем со значениями по умолчанию
	cfg, err := config.LoadOrDefault(defaultConfigPath)
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	level, err := appLog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Printf("⚠️  Предупреждение: %v\n", err)
	}
	appLog.SetLevel(level)

	app, err := NewApplication(cfg)
	if err != nil {
		fmt.Printf("❌ Ошибка инициализации: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// Контекст отменяется по Ctrl+C, чтобы прервать загрузку и публикацию
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.createRootCommand(ctx).Execute(); err != nil {
		stop()
		app.Close()
		os.Exit(1)
	}
}
