package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/reciteapp/recite/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	title      TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schedules (
	note_id          TEXT PRIMARY KEY,
	algorithm        TEXT NOT NULL,
	review_count     INTEGER NOT NULL,
	last_review_date TEXT,
	next_review_date TEXT NOT NULL,
	sm2              TEXT,
	fsrs             TEXT
);

CREATE TABLE IF NOT EXISTS history (
	id            TEXT PRIMARY KEY,
	note_id       TEXT NOT NULL,
	timestamp     TEXT NOT NULL,
	response      INTEGER NOT NULL,
	interval_days INTEGER NOT NULL,
	ease          INTEGER NOT NULL,
	skipped       INTEGER NOT NULL,
	position      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS custom_order (
	position INTEGER PRIMARY KEY,
	note_id  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// timeFormat is the canonical timestamp encoding for all stored instants.
const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default settings when the settings table is empty.
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'recite init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema is idempotent; applying it on load covers version upgrades
	// that add tables.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetStorePath() string {
	return s.path
}
