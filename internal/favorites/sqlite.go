package favorites

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	appLog "github.com/hazadus/go-confplan/internal/log"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS favorites (
    session_id TEXT PRIMARY KEY,
    added_at   TEXT NOT NULL
);
`

// SQLiteStore хранилище избранного в SQLite. Держит копию множества в памяти,
// поэтому чтение не обращается к базе. Ошибки записи логируются
type SQLiteStore struct {
	db  *sql.DB
	ids map[string]struct{}
}

// NewSQLiteStore открывает (или создает) базу и загружает избранное
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	s := &SQLiteStore{db: db, ids: make(map[string]struct{})}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) load() error {
	rows, err := s.db.Query("SELECT session_id FROM favorites")
	if err != nil {
		return fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan favorite: %w", err)
		}
		s.ids[id] = struct{}{}
	}
	return rows.Err()
}

// HasFavorite реализует Store
func (s *SQLiteStore) HasFavorite(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// AddFavorite реализует Store
func (s *SQLiteStore) AddFavorite(id string) {
	s.ids[id] = struct{}{}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO favorites (session_id, added_at) VALUES (?, ?)",
		id, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		appLog.Error("favorites: insert failed", err, "session", id)
	}
}

// RemoveFavorite реализует Store
func (s *SQLiteStore) RemoveFavorite(id string) {
	delete(s.ids, id)
	if _, err := s.db.Exec("DELETE FROM favorites WHERE session_id = ?", id); err != nil {
		appLog.Error("favorites: delete failed", err, "session", id)
	}
}

// List возвращает ключи избранного по алфавиту
func (s *SQLiteStore) List() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Close закрывает базу
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
