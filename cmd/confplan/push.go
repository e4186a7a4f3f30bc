package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-confplan/internal/s3"
	"github.com/hazadus/go-confplan/internal/uploader"
)

// createPushCommand создает команду для публикации снимка в S3
func (app *Application) createPushCommand(ctx context.Context) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload the cached schedule to S3",
		Long:  `Upload the cached schedule snapshot to the configured S3 bucket as YAML, or remove the published object with --remove.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove {
				return app.removePushed(ctx)
			}
			return app.pushCommand(ctx)
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Delete the published snapshot from S3")

	return cmd
}

// s3Client создает клиент S3 по конфигурации
func (app *Application) s3Client() (*s3.Client, error) {
	return s3.NewClient(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	})
}

func (app *Application) pushCommand(ctx context.Context) error {
	snapshot, err := app.snapshot()
	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	client, err := app.s3Client()
	if err != nil {
		fmt.Printf("❌ Ошибка создания S3 клиента: %v\n", err)
		return err
	}

	fmt.Printf("📤 Публикация расписания в S3: %s\n", app.Config.S3Key)

	// Канал для передачи прогресса
	progressChan := make(chan int64, 16)
	done := make(chan struct{})
	startTime := time.Now()

	// Горутина для отображения прогресса
	go func() {
		defer close(done)
		for progress := range progressChan {
			elapsed := time.Since(startTime)
			fmt.Printf("\r📊 Отправлено: %s | Прошло: %s",
				uploader.FormatFileSize(progress),
				uploader.FormatDuration(elapsed))
		}
	}()

	service := uploader.NewService(client, app.Config.S3Key)
	result, err := service.Push(ctx, snapshot, func(bytesRead int64) {
		select {
		case progressChan <- bytesRead:
		default:
		}
	})

	close(progressChan)
	<-done

	if err != nil {
		fmt.Printf("\n❌ Ошибка: %v\n", err)
		return err
	}

	// Проверяем, не была ли операция отменена
	if ctx.Err() != nil {
		return fmt.Errorf("операция отменена: %w", ctx.Err())
	}

	fmt.Printf("\n✅ Расписание опубликовано!\n")
	fmt.Printf("   URL: %s\n", result.URL)
	fmt.Printf("   Размер: %s, докладов: %d, время: %s\n",
		uploader.FormatFileSize(result.Size), result.Sessions, uploader.FormatDuration(result.Elapsed))
	return nil
}

func (app *Application) removePushed(ctx context.Context) error {
	client, err := app.s3Client()
	if err != nil {
		fmt.Printf("❌ Ошибка создания S3 клиента: %v\n", err)
		return err
	}

	fmt.Printf("🗑️  Удаление из S3: %s\n", app.Config.S3Key)
	if err := client.DeleteFile(ctx, app.Config.S3Key); err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		return err
	}

	fmt.Println("✅ Опубликованный снимок удален из S3")
	return nil
}
