// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists run history in a local SQLite database. The
// ledger is bookkeeping only: resumability is decided by output files on
// disk, so a lost or stale ledger never changes what a run does.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smyrgeorge/lexis/pkg/types"
)

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command TEXT NOT NULL,
			provider TEXT,
			source_lang TEXT,
			target_lang TEXT,
			started_at TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			translated INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_chunks (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_chunks_run_id ON run_chunks(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a finished run and its per-chunk results, returning
// the run's ledger id.
func (s *Store) RecordRun(ctx context.Context, report *types.RunReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (command, provider, source_lang, target_lang, started_at, elapsed_ms, translated, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Command, report.Provider, report.SourceLang, report.TargetLang,
		report.StartedAt.Format(time.RFC3339), report.Elapsed.Milliseconds(),
		report.Translated, report.Skipped, report.Failed,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, c := range report.Chunks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_chunks (run_id, name, status, elapsed_ms, error) VALUES (?, ?, ?, ?, ?)`,
			runID, c.Name, string(c.Status), c.Elapsed.Milliseconds(), c.Error,
		); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting chunk result %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Run summarizes one recorded run.
type Run struct {
	ID         int64
	Command    string
	Provider   string
	SourceLang string
	TargetLang string
	StartedAt  time.Time
	Elapsed    time.Duration
	Translated int
	Skipped    int
	Failed     int
}

// History returns the most recent runs, newest first. limit <= 0 means the
// default of 20.
func (s *Store) History(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, provider, source_lang, target_lang, started_at, elapsed_ms, translated, skipped, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var elapsedMS int64
		if err := rows.Scan(&r.ID, &r.Command, &r.Provider, &r.SourceLang, &r.TargetLang,
			&startedAt, &elapsedMS, &r.Translated, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = ts
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ChunkResults returns the per-chunk rows for a run in insertion order.
func (s *Store) ChunkResults(ctx context.Context, runID int64) ([]types.ChunkResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, status, elapsed_ms, error FROM run_chunks WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying chunk results: %w", err)
	}
	defer rows.Close()

	var results []types.ChunkResult
	for rows.Next() {
		var c types.ChunkResult
		var status string
		var elapsedMS int64
		if err := rows.Scan(&c.Name, &status, &elapsedMS, &c.Error); err != nil {
			return nil, fmt.Errorf("scanning chunk result: %w", err)
		}
		c.Status = types.TranslationStatus(status)
		c.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		results = append(results, c)
	}
	return results, rows.Err()
}
