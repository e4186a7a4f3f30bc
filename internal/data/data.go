// Package data содержит локальный файл данных: кэш снимка расписания и избранное
package data

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-confplan/internal/schedule"
)

// AppData содержимое файла данных
type AppData struct {
	Schedule  *schedule.Schedule `yaml:"schedule,omitempty"`
	SyncedAt  time.Time          `yaml:"synced_at,omitempty"`
	Source    string             `yaml:"source,omitempty"`
	Favorites []string           `yaml:"favorites"`
}

// NewAppData создает пустую структуру AppData
func NewAppData() *AppData {
	return &AppData{
		Favorites: make([]string, 0),
	}
}

// ExpandPath раскрывает тильду в пути
func ExpandPath(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(filePath, "~", home, 1), nil
}

// LoadData загружает данные из файла
func (d *AppData) LoadData(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Если файл не найден, инициализируем пустыми данными
		if os.IsNotExist(err) {
			*d = *NewAppData()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла данных: %w", err)
	}
	if len(data) == 0 {
		*d = *NewAppData()
		return nil
	}
	if err := yaml.Unmarshal(data, d); err != nil {
		return fmt.Errorf("ошибка разбора данных: %w", err)
	}
	if d.Favorites == nil {
		d.Favorites = make([]string, 0)
	}
	if d.Schedule != nil {
		d.Schedule.Normalize()
	}
	return nil
}

// SaveData сохраняет данные в файл
func (d *AppData) SaveData(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("ошибка сериализации данных: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ошибка создания каталога данных: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла данных: %w", err)
	}
	return nil
}

// SetSchedule сохраняет свежий снимок расписания
func (d *AppData) SetSchedule(s *schedule.Schedule, source string) {
	d.Schedule = s
	d.Source = source
	d.SyncedAt = time.Now().UTC()
}

// HasFavorite проверяет, есть ли доклад в избранном
func (d *AppData) HasFavorite(id string) bool {
	return slices.Contains(d.Favorites, id)
}

// AddFavorite добавляет доклад в избранное без дубликатов
func (d *AppData) AddFavorite(id string) {
	if d.HasFavorite(id) {
		return
	}
	d.Favorites = append(d.Favorites, id)
}

// RemoveFavorite удаляет доклад из избранного
func (d *AppData) RemoveFavorite(id string) {
	d.Favorites = slices.DeleteFunc(d.Favorites, func(f string) bool {
		return f == id
	})
}

// List возвращает ключи избранного по алфавиту
func (d *AppData) List() []string {
	out := slices.Clone(d.Favorites)
	slices.Sort(out)
	return out
}
