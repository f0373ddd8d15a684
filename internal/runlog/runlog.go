// Package runlog provides SQLite-based recording of simulation runs.
// Only run metadata is stored, never the grids themselves.
package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection holding the run ledger.
type Store struct {
	db *sql.DB
}

// Record describes one completed simulation run.
type Record struct {
	ID        int64
	Seed      int64
	Width     int
	Height    int
	Steps     int
	Repairs   int
	Duration  time.Duration
	CreatedAt time.Time
}

// Open opens or creates the ledger database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the ledger schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		repairs INTEGER NOT NULL DEFAULT 0,
		duration_us INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Insert records a completed run and returns its row id.
func (s *Store) Insert(r Record) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (seed, width, height, steps, repairs, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Width, r.Height, r.Steps, r.Repairs, r.Duration.Microseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run record: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, width, height, steps, repairs, duration_us, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var durationUS int64
		if err := rows.Scan(&r.ID, &r.Seed, &r.Width, &r.Height, &r.Steps,
			&r.Repairs, &durationUS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		r.Duration = time.Duration(durationUS) * time.Microsecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the total number of recorded runs.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}
