// Package uploader публикует снимок расписания в S3 с отслеживанием прогресса
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-confplan/internal/schedule"
)

// ErrNoSnapshot возвращается при попытке опубликовать пустой снимок
var ErrNoSnapshot = errors.New("нет снимка расписания для публикации")

// Uploader загружает данные по ключу и возвращает URL объекта
type Uploader interface {
	UploadFile(ctx context.Context, reader io.Reader, key string) (string, error)
}

// Service управляет публикацией снимков
type Service struct {
	uploader Uploader
	key      string
}

// NewService создает новый сервис публикации
func NewService(uploader Uploader, key string) *Service {
	return &Service{
		uploader: uploader,
		key:      key,
	}
}

// PushResult содержит результат публикации
type PushResult struct {
	URL      string
	Key      string
	Size     int64
	Sessions int
	Elapsed  time.Duration
}

// Push сериализует снимок в YAML и загружает его в S3
func (s *Service) Push(ctx context.Context, snapshot *schedule.Schedule, progressCallback func(int64)) (*PushResult, error) {
	if snapshot == nil || len(snapshot.Days) == 0 {
		return nil, ErrNoSnapshot
	}

	payload, err := yaml.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	// Создаем reader с отслеживанием прогресса
	var reader io.Reader = bytes.NewReader(payload)
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     reader,
			Size:       int64(len(payload)),
			OnProgress: progressCallback,
		}
	}

	started := time.Now()
	url, err := s.uploader.UploadFile(ctx, reader, s.key)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки в S3: %w", err)
	}

	return &PushResult{
		URL:      url,
		Key:      s.key,
		Size:     int64(len(payload)),
		Sessions: len(snapshot.Sessions()),
		Elapsed:  time.Since(started),
	}, nil
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}

// FormatFileSize форматирует размер в читаемом виде
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration форматирует длительность времени
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
