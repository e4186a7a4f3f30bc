// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Источники расписания
const (
	SourceFile = "file"
	SourceICS  = "ics"
	SourceS3   = "s3"
)

// Хранилища избранного
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	DataFile         string `yaml:"data_file"`
	Source           string `yaml:"source"`
	ScheduleFile     string `yaml:"schedule_file"`
	ICSURL           string `yaml:"ics_url"`
	ICSCacheDir      string `yaml:"ics_cache_dir"`
	Timezone         string `yaml:"timezone"`
	RefreshCron      string `yaml:"refresh_cron"`
	FavoritesBackend string `yaml:"favorites_backend"`
	SQLitePath       string `yaml:"sqlite_path"`
	AwsBucketName    string `yaml:"aws_bucket_name"`
	AwsAccessKey     string `yaml:"aws_access_key"`
	AwsSecretKey     string `yaml:"aws_secret_key"`
	AwsRegion        string `yaml:"aws_region"`
	AwsEndpoint      string `yaml:"aws_endpoint"`
	S3Key            string `yaml:"s3_key"`
	LogLevel         string `yaml:"log_level"`
}

// DefaultConfig возвращает конфигурацию по умолчанию с раскрытыми путями
func DefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	config.expandPaths()
	return config
}

// LoadConfig загружает конфигурацию приложения из указанного файла
func LoadConfig(filePath string) (*Config, error) {
	path, err := expandTilde(filePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора yaml: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()
	config.expandPaths()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadOrDefault загружает конфигурацию, а при отсутствии файла возвращает
// конфигурацию по умолчанию с учетом переменных окружения
func LoadOrDefault(filePath string) (*Config, error) {
	config, err := LoadConfig(filePath)
	if err == nil {
		return config, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	config = &Config{}
	config.applyEnv()
	config.applyDefaults()
	config.expandPaths()
	return config, config.Validate()
}

// Validate проверяет значения перечислений
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFile, SourceICS, SourceS3:
	default:
		return fmt.Errorf("неизвестный источник расписания %q", c.Source)
	}
	switch c.FavoritesBackend {
	case BackendYAML, BackendSQLite:
	default:
		return fmt.Errorf("неизвестное хранилище избранного %q", c.FavoritesBackend)
	}
	return nil
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"CONFPLAN_SOURCE":  &c.Source,
		"CONFPLAN_ICS_URL": &c.ICSURL,
		"AWS_BUCKET_NAME":  &c.AwsBucketName,
		"AWS_ACCESS_KEY":   &c.AwsAccessKey,
		"AWS_SECRET_KEY":   &c.AwsSecretKey,
		"AWS_REGION":       &c.AwsRegion,
	}
	for name, field := range overrides {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}

// applyDefaults устанавливает значения по умолчанию, если они не заданы
func (c *Config) applyDefaults() {
	defaults := []struct {
		field *string
		value string
	}{
		{&c.DataFile, "~/.confplan/data.yaml"},
		{&c.Source, SourceFile},
		{&c.ScheduleFile, "~/.confplan/schedule.yaml"},
		{&c.ICSCacheDir, "~/.confplan/ics-cache"},
		{&c.Timezone, "UTC"},
		{&c.RefreshCron, "*/15 * * * *"},
		{&c.FavoritesBackend, BackendYAML},
		{&c.SQLitePath, "~/.confplan/favorites.db"},
		{&c.S3Key, "schedule.yaml"},
		{&c.LogLevel, "info"},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value
		}
	}
	c.Source = strings.ToLower(c.Source)
	c.FavoritesBackend = strings.ToLower(c.FavoritesBackend)
}

// expandPaths раскрывает тильду в путях
func (c *Config) expandPaths() {
	for _, p := range []*string{&c.DataFile, &c.ScheduleFile, &c.ICSCacheDir, &c.SQLitePath} {
		if expanded, err := expandTilde(*p); err == nil {
			*p = expanded
		}
	}
}

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(path, "~", home, 1), nil
}
