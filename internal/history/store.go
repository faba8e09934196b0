// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of executed searches to SQLite. The log is
// observational only: recording failures never affect the search path, and
// the engine works with no store configured at all.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one logged search call.
type Entry struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	Query       string        `json:"query"`
	BackendUsed string        `json:"backend_used"`
	Requested   int           `json:"requested"`
	Returned    int           `json:"returned"`
	Duration    time.Duration `json:"duration"`
}

// Store manages the search-log SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the search log at path, creating the schema and any
// missing parent directories.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			timestamp TEXT NOT NULL,
			query TEXT NOT NULL,
			backend_used TEXT NOT NULL,
			requested INTEGER NOT NULL,
			returned INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_timestamp ON searches(timestamp)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one entry.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO searches (id, timestamp, query, backend_used, requested, returned, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.UTC().Format(time.RFC3339Nano), e.Query, e.BackendUsed,
		e.Requested, e.Returned, e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the latest n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.Query(
		`SELECT id, timestamp, query, backend_used, requested, returned, duration_ms
		 FROM searches ORDER BY timestamp DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		var durMs int64
		if err := rows.Scan(&e.ID, &ts, &e.Query, &e.BackendUsed, &e.Requested, &e.Returned, &durMs); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
			e.Timestamp = t
		}
		e.Duration = time.Duration(durMs) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
