// Package archive records analysis runs and their diagnostics in a SQLite
// database so results can be compared across runs.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/coolc/internal/diagnostics"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	files       TEXT NOT NULL,
	diagnostics INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id  TEXT NOT NULL REFERENCES runs(id),
	seq     INTEGER NOT NULL,
	code    TEXT NOT NULL,
	file    TEXT NOT NULL,
	line    INTEGER NOT NULL,
	col     INTEGER NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("archive is closed")

// Run is one recorded analysis run.
type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	Files       string
	Diagnostics int
}

// Entry is one archived diagnostic.
type Entry struct {
	Code    diagnostics.ErrorCode
	File    string
	Line    int
	Column  int
	Message string
}

// Rendered is the diagnostic exactly as it was printed.
func (e Entry) Rendered() string {
	d := &diagnostics.DiagnosticError{Code: e.Code, File: e.File, Message: e.Message}
	d.Token.Line = e.Line
	d.Token.Column = e.Column
	return d.Error()
}

// Store is a SQLite-backed run archive.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the archive at path. ":memory:" gives a
// private in-memory archive.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores one run with its diagnostics in insertion order and returns
// the new run's ID.
func (s *Store) Record(ctx context.Context, startedAt time.Time, files []string, errs []*diagnostics.DiagnosticError) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return uuid.Nil, ErrClosed
	}

	id := uuid.New()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recording run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, files, diagnostics) VALUES (?, ?, ?, ?)`,
		id.String(), startedAt.UnixNano(), strings.Join(files, "\n"), len(errs)); err != nil {
		return uuid.Nil, fmt.Errorf("recording run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO diagnostics (run_id, seq, code, file, line, col, message) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recording diagnostics: %w", err)
	}
	defer stmt.Close()

	for i, e := range errs {
		if _, err := stmt.ExecContext(ctx, id.String(), i, string(e.Code), e.File, e.Token.Line, e.Token.Column, e.Message); err != nil {
			return uuid.Nil, fmt.Errorf("recording diagnostic %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// Runs returns the most recent runs first, at most limit of them (all when
// limit <= 0).
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, files, diagnostics FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			id      string
			started int64
		)
		if err := rows.Scan(&id, &started, &run.Files, &run.Diagnostics); err != nil {
			return nil, fmt.Errorf("listing runs: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run %q: %w", id, err)
		}
		run.StartedAt = time.Unix(0, started)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Diagnostics returns the diagnostics of one run in the order they were
// reported.
func (s *Store) Diagnostics(ctx context.Context, runID uuid.UUID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT code, file, line, col, message FROM diagnostics WHERE run_id = ? ORDER BY seq`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("reading diagnostics: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			code string
		)
		if err := rows.Scan(&code, &e.File, &e.Line, &e.Column, &e.Message); err != nil {
			return nil, fmt.Errorf("reading diagnostics: %w", err)
		}
		e.Code = diagnostics.ErrorCode(code)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
