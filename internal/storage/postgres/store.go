// Package postgres backs the storage Provider with a PostgreSQL database,
// for setups that sync one review collection across machines.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/reciteapp/recite/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	path TEXT NOT NULL,
	title TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS schedules (
	note_id TEXT PRIMARY KEY,
	algorithm TEXT NOT NULL,
	review_count INTEGER NOT NULL DEFAULT 0,
	last_review_date TIMESTAMPTZ,
	next_review_date TIMESTAMPTZ NOT NULL,
	sm2 JSONB,
	fsrs JSONB
);

CREATE TABLE IF NOT EXISTS history (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	note_id TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL,
	response INTEGER NOT NULL,
	interval_days INTEGER NOT NULL,
	ease INTEGER NOT NULL,
	skipped BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS custom_order (
	position INTEGER PRIMARY KEY,
	note_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type Store struct {
	connStr string
	db      *sql.DB
}

func NewStore(connStr string) *Store {
	return &Store{connStr: connStr}
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

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
	if err := s.connect(); err != nil {
		return err
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}
	return nil
}

func (s *Store) connect() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStorePath reports the connection target rather than a file path.
func (s *Store) GetStorePath() string {
	return "postgres"
}
