// Package store persists the canonical event log in a SQLite snapshot so a
// large JSON export only has to be parsed once.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) a snapshot database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS Event (
  id INTEGER PRIMARY KEY,
  track_id TEXT NOT NULL,
  track TEXT NOT NULL,
  artist TEXT NOT NULL,
  album TEXT,
  ts INTEGER NOT NULL,
  ms_played INTEGER NOT NULL,
  skipped INTEGER NOT NULL,
  UNIQUE (track_id, ts, ms_played)
);

CREATE INDEX IF NOT EXISTS idx_event_ts ON Event (ts);
`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// Exists reports whether the snapshot has been initialized with any events.
func (s *Store) Exists() (bool, error) {
	row := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'Event'")
	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking snapshot existence: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Event").Scan(&count); err != nil {
		return false, fmt.Errorf("counting events: %w", err)
	}
	return count > 0, nil
}
