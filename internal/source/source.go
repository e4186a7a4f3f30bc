// Package source загружает снимки расписания из файла, ICS-календаря или S3
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-confplan/internal/config"
	"github.com/hazadus/go-confplan/internal/ics"
	"github.com/hazadus/go-confplan/internal/s3"
	"github.com/hazadus/go-confplan/internal/schedule"
)

// Source поставщик снимка расписания
type Source interface {
	GetSchedule(ctx context.Context) (*schedule.Schedule, error)
}

// FileSource читает снимок из YAML или JSON файла
type FileSource struct {
	Path string
}

// GetSchedule читает и нормализует снимок. Формат определяется по расширению
func (s *FileSource) GetSchedule(ctx context.Context) (*schedule.Schedule, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла расписания: %w", err)
	}
	return Decode(raw, filepath.Ext(s.Path))
}

// Decode разбирает снимок в формате JSON (ext ".json") или YAML
func Decode(raw []byte, ext string) (*schedule.Schedule, error) {
	snapshot := &schedule.Schedule{}
	if strings.EqualFold(ext, ".json") {
		if err := json.NewDecoder(bytes.NewReader(raw)).Decode(snapshot); err != nil {
			return nil, fmt.Errorf("ошибка разбора json: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, snapshot); err != nil {
		return nil, fmt.Errorf("ошибка разбора yaml: %w", err)
	}
	snapshot.Normalize()
	return snapshot, nil
}

// Downloader скачивает объект по ключу
type Downloader interface {
	DownloadFile(ctx context.Context, key string) ([]byte, error)
}

// S3Source скачивает YAML-снимок из S3
type S3Source struct {
	Client Downloader
	Key    string
}

// GetSchedule скачивает и разбирает снимок
func (s *S3Source) GetSchedule(ctx context.Context) (*schedule.Schedule, error) {
	raw, err := s.Client.DownloadFile(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	return Decode(raw, filepath.Ext(s.Key))
}

// ICSSource строит снимок из ICS-календаря
type ICSSource struct {
	Fetcher  *ics.Fetcher
	Feed     ics.Source
	Location *time.Location
}

// GetSchedule загружает календарь, разворачивает повторения и группирует
// вхождения по датам в часовом поясе Location
func (s *ICSSource) GetSchedule(ctx context.Context) (*schedule.Schedule, error) {
	res, err := s.Fetcher.Fetch(ctx, s.Feed)
	if err != nil {
		return nil, err
	}
	events, err := ics.ParseICS(s.Feed, res.Body)
	if err != nil {
		return nil, err
	}
	occurrences, err := ics.ExpandOccurrences(events, ics.ExpandConfig{DisplayLocation: s.Location})
	if err != nil {
		return nil, err
	}
	return ics.BuildSchedule(occurrences), nil
}

// New создает источник по конфигурации
func New(cfg *config.Config) (Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return &FileSource{Path: cfg.ScheduleFile}, nil

	case config.SourceICS:
		if cfg.ICSURL == "" {
			return nil, fmt.Errorf("не указан ics_url")
		}
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("неверный часовой пояс %q: %w", cfg.Timezone, err)
		}
		return &ICSSource{
			Fetcher:  ics.NewFetcher(cfg.ICSCacheDir),
			Feed:     ics.Source{ID: "conference", URL: cfg.ICSURL},
			Location: loc,
		}, nil

	case config.SourceS3:
		client, err := s3.NewClient(&s3.Config{
			Region:     cfg.AwsRegion,
			AccessKey:  cfg.AwsAccessKey,
			SecretKey:  cfg.AwsSecretKey,
			Endpoint:   cfg.AwsEndpoint,
			BucketName: cfg.AwsBucketName,
		})
		if err != nil {
			return nil, err
		}
		return &S3Source{Client: client, Key: cfg.S3Key}, nil
	}
	return nil, fmt.Errorf("неизвестный источник расписания %q", cfg.Source)
}
