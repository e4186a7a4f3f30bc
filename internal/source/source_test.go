package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazadus/go-confplan/internal/config"
	"github.com/hazadus/go-confplan/internal/schedule"
)

const testSnapshotYAML = `locations: [Room 1, Room 2]
days:
  - date: "2016-06-01"
    sessions:
      - name: a
        title: Keynote
        track: General
        location: Room 1
        start: 2016-06-01T09:00:00Z
        end: 2016-06-01T10:00:00Z
      - name: b
        title: Go tooling
        track: Go
        location: Room 2
        start: 2016-06-01T09:00:00Z
        end: 2016-06-01T10:00:00Z
  - date: "2016-06-02"
    sessions:
      - name: c
        title: Closing
        location: Room 1
        start: 2016-06-02T17:00:00Z
        end: 2016-06-02T18:00:00Z
`

const testSnapshotJSON = `{"locations":["Room 1"],"days":[{"date":"2016-06-01","sessions":[
{"name":"a","title":"Keynote","location":"Room 1","start":"2016-06-01T09:00:00Z","end":"2016-06-01T10:00:00Z"}]}]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Ошибка записи файла: %v", err)
	}
	return path
}

func TestFileSourceYAML(t *testing.T) {
	src := &FileSource{Path: writeFile(t, "schedule.yaml", testSnapshotYAML)}
	snapshot, err := src.GetSchedule(context.Background())
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if len(snapshot.Days) != 2 {
		t.Errorf("Ожидалось 2 дня, получено %d", len(snapshot.Days))
	}
	if len(snapshot.Tracks) != 2 {
		t.Errorf("Ожидалось 2 трека после нормализации, получено %v", snapshot.Tracks)
	}
	if snapshot.Days[1].Sessions[0].Date != "2016-06-02" {
		t.Errorf("Дата доклада не заполнена: %q", snapshot.Days[1].Sessions[0].Date)
	}
}

func TestFileSourceJSON(t *testing.T) {
	src := &FileSource{Path: writeFile(t, "schedule.json", testSnapshotJSON)}
	snapshot, err := src.GetSchedule(context.Background())
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if len(snapshot.Days) != 1 || snapshot.Days[0].Sessions[0].Title != "Keynote" {
		t.Errorf("Неверный снимок: %+v", snapshot)
	}
}

func TestFileSourceErrors(t *testing.T) {
	_, err := (&FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}).GetSchedule(context.Background())
	if err == nil {
		t.Error("Ожидалась ошибка для отсутствующего файла")
	}

	_, err = (&FileSource{Path: writeFile(t, "bad.yaml", "days: [unclosed")}).GetSchedule(context.Background())
	if err == nil || !strings.Contains(err.Error(), "yaml") {
		t.Errorf("Ожидалась ошибка разбора yaml, получено %v", err)
	}
}

type fakeDownloader struct {
	content string
	err     error
	keys    []string
}

func (d *fakeDownloader) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	d.keys = append(d.keys, key)
	return []byte(d.content), d.err
}

func TestS3Source(t *testing.T) {
	downloader := &fakeDownloader{content: testSnapshotYAML}
	src := &S3Source{Client: downloader, Key: "conf/schedule.yaml"}

	snapshot, err := src.GetSchedule(context.Background())
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if len(snapshot.Sessions()) != 3 {
		t.Errorf("Ожидалось 3 доклада, получено %d", len(snapshot.Sessions()))
	}
	if len(downloader.keys) != 1 || downloader.keys[0] != "conf/schedule.yaml" {
		t.Errorf("Неверные ключи: %v", downloader.keys)
	}
}

type countingSource struct {
	calls    int
	snapshot *schedule.Schedule
	err      error
}

func (s *countingSource) GetSchedule(ctx context.Context) (*schedule.Schedule, error) {
	s.calls++
	return s.snapshot, s.err
}

func TestProviderCachesSnapshot(t *testing.T) {
	snapshot, err := Decode([]byte(testSnapshotYAML), ".yaml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	src := &countingSource{snapshot: snapshot}
	provider := NewProvider(src)

	for i := 0; i < 3; i++ {
		if _, err := provider.GetSchedule(context.Background()); err != nil {
			t.Fatalf("GetSchedule: %v", err)
		}
	}
	if src.calls != 1 {
		t.Errorf("Ожидался 1 вызов источника, получено %d", src.calls)
	}
	if provider.FetchedAt().IsZero() {
		t.Error("FetchedAt не установлен")
	}
}

func TestProviderRefreshKeepsCacheOnError(t *testing.T) {
	snapshot, _ := Decode([]byte(testSnapshotYAML), ".yaml")
	src := &countingSource{err: errors.New("offline")}
	provider := NewStaticProvider(src, snapshot)

	if _, err := provider.Refresh(context.Background()); err == nil {
		t.Fatal("Ожидалась ошибка обновления")
	}
	got, err := provider.GetSchedule(context.Background())
	if err != nil || got != snapshot {
		t.Errorf("Кэш должен сохраниться после ошибки, получено %v, %v", got, err)
	}
}

func TestProviderGetTimeline(t *testing.T) {
	snapshot, _ := Decode([]byte(testSnapshotYAML), ".yaml")
	provider := NewStaticProvider(&countingSource{}, snapshot)

	f := schedule.NewFilter()
	f.ExcludedTracks.Add("Go")
	timeline, err := provider.GetTimeline(context.Background(), f, nil)
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if len(timeline.Groups) != 1 || len(timeline.Groups[0].Sessions) != 1 {
		t.Fatalf("Неверная лента: %+v", timeline)
	}
	if timeline.Groups[0].Sessions[0].Name != "a" {
		t.Errorf("Ожидался доклад a, получено %s", timeline.Groups[0].Sessions[0].Name)
	}

	f.DayIndex = 5
	if _, err := provider.GetTimeline(context.Background(), f, nil); !errors.Is(err, schedule.ErrDayIndexOutOfRange) {
		t.Errorf("Ожидалась ErrDayIndexOutOfRange, получено %v", err)
	}
}

func TestRefresher(t *testing.T) {
	snapshot, _ := Decode([]byte(testSnapshotYAML), ".yaml")
	src := &countingSource{snapshot: snapshot}

	var updates []*schedule.Schedule
	refresher, err := NewRefresher(NewProvider(src), "@every 1h", func(s *schedule.Schedule) {
		updates = append(updates, s)
	})
	if err != nil {
		t.Fatalf("NewRefresher: %v", err)
	}

	refresher.Run()
	if len(updates) != 1 || updates[0] != snapshot {
		t.Errorf("Ожидалось одно обновление, получено %d", len(updates))
	}

	src.err = errors.New("offline")
	refresher.Run()
	if len(updates) != 1 {
		t.Error("Ошибка обновления не должна вызывать OnUpdate")
	}
}

func TestRefresherInvalidSpec(t *testing.T) {
	if _, err := NewRefresher(NewProvider(&countingSource{}), "not a cron", nil); err == nil {
		t.Error("Ожидалась ошибка для неверного cron-расписания")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	src, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := src.(*FileSource); !ok {
		t.Errorf("Ожидался FileSource, получено %T", src)
	}

	cfg.Source = config.SourceICS
	if _, err := New(cfg); err == nil {
		t.Error("Ожидалась ошибка без ics_url")
	}

	cfg.ICSURL = "https://example.com/conf.ics"
	cfg.Timezone = "UTC"
	src, err = New(cfg)
	if err != nil {
		t.Fatalf("New ics: %v", err)
	}
	if _, ok := src.(*ICSSource); !ok {
		t.Errorf("Ожидался ICSSource, получено %T", src)
	}

	cfg.Source = config.SourceS3
	cfg.AwsBucketName = "bucket"
	cfg.AwsRegion = "us-east-1"
	src, err = New(cfg)
	if err != nil {
		t.Fatalf("New s3: %v", err)
	}
	if _, ok := src.(*S3Source); !ok {
		t.Errorf("Ожидался S3Source, получено %T", src)
	}
}
