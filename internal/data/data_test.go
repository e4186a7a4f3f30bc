package data

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hazadus/go-confplan/internal/schedule"
)

func TestLoadDataMissingFile(t *testing.T) {
	d := NewAppData()
	d.AddFavorite("stale")

	if err := d.LoadData(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("Отсутствующий файл не должен давать ошибку: %v", err)
	}
	if len(d.Favorites) != 0 || d.Schedule != nil {
		t.Errorf("Ожидались пустые данные, получено %+v", d)
	}
}

func TestLoadDataEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	d := NewAppData()
	if err := d.LoadData(path); err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if d.Favorites == nil {
		t.Error("Favorites не инициализирован")
	}
}

func TestSaveAndLoadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "data.yaml")
	start := time.Date(2016, 6, 1, 9, 0, 0, 0, time.UTC)

	d := NewAppData()
	d.SetSchedule(&schedule.Schedule{
		Locations: []string{"Main Hall"},
		Days: []schedule.Day{{
			Date: "2016-06-01",
			Sessions: []schedule.Session{
				{Name: "keynote", Title: "Keynote", Track: "General", Location: "Main Hall", Start: start, End: start.Add(time.Hour)},
			},
		}},
	}, "file")
	d.AddFavorite("keynote")

	if err := d.SaveData(path); err != nil {
		t.Fatalf("SaveData: %v", err)
	}

	loaded := NewAppData()
	if err := loaded.LoadData(path); err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	if !reflect.DeepEqual(loaded.Favorites, []string{"keynote"}) {
		t.Errorf("Favorites = %v", loaded.Favorites)
	}
	if loaded.Source != "file" || loaded.SyncedAt.IsZero() {
		t.Errorf("Метаданные синхронизации не сохранены: %+v", loaded)
	}
	if loaded.Schedule == nil || len(loaded.Schedule.Days) != 1 {
		t.Fatalf("Расписание не сохранено: %+v", loaded.Schedule)
	}
	sess := loaded.Schedule.Days[0].Sessions[0]
	if sess.Title != "Keynote" || !sess.Start.Equal(start) {
		t.Errorf("Доклад = %+v", sess)
	}
	// Normalize заполняет дату доклада и список треков
	if sess.Date != "2016-06-01" {
		t.Errorf("Дата доклада = %q", sess.Date)
	}
	if !reflect.DeepEqual(loaded.Schedule.Tracks, []string{"General"}) {
		t.Errorf("Tracks = %v", loaded.Schedule.Tracks)
	}
}

func TestLoadDataInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("favorites: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := NewAppData().LoadData(path); err == nil {
		t.Error("Ожидалась ошибка разбора")
	}
}

func TestFavorites(t *testing.T) {
	d := NewAppData()
	d.AddFavorite("b")
	d.AddFavorite("a")
	d.AddFavorite("b")

	if !reflect.DeepEqual(d.List(), []string{"a", "b"}) {
		t.Errorf("List = %v", d.List())
	}
	if !d.HasFavorite("a") {
		t.Error("HasFavorite(a) = false")
	}

	d.RemoveFavorite("a")
	d.RemoveFavorite("missing")
	if !reflect.DeepEqual(d.Favorites, []string{"b"}) {
		t.Errorf("Favorites = %v", d.Favorites)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("нет домашнего каталога")
	}
	got, err := ExpandPath("~/.confplan/data.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if want := home + "/.confplan/data.yaml"; got != want {
		t.Errorf("ExpandPath = %q, want %q", got, want)
	}
	if got, _ := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("Абсолютный путь изменился: %q", got)
	}
}
