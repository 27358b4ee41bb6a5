// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog keeps an audit trail of extraction runs in SQLite.
// Recording is best effort: the pipeline works fine without it.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is where the run log lives unless configured otherwise.
const DefaultPath = "runs.db"

// Run outcomes. One per failure domain, plus success.
const (
	StatusOK               = "ok"
	StatusExtractionFailed = "extraction_failed"
	StatusFormatFailed     = "format_failed"
	StatusPersistFailed    = "persist_failed"
)

// Entry is one recorded pipeline run.
type Entry struct {
	ID            int64
	StartedAt     time.Time
	Duration      time.Duration
	ArticleSHA256 string
	ArticleBytes  int
	Backend       string
	Model         string
	Status        string
	Error         string
	Asset         string
	BookPath      string
}

// Store manages the run log SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run log database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			article_sha256 TEXT NOT NULL,
			article_bytes INTEGER NOT NULL,
			backend TEXT NOT NULL,
			model TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			asset TEXT,
			book_path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ms, article_sha256, article_bytes,
			backend, model, status, error, asset, book_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.StartedAt.UTC().Format(time.RFC3339Nano), e.Duration.Milliseconds(),
		e.ArticleSHA256, e.ArticleBytes, e.Backend, e.Model,
		e.Status, e.Error, e.Asset, e.BookPath,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive
// limit means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, article_sha256, article_bytes,
			backend, model, status, error, asset, book_path
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			startedAt  string
			durationMS int64
			errMsg     sql.NullString
			asset      sql.NullString
			bookPath   sql.NullString
		)

		if err := rows.Scan(
			&e.ID, &startedAt, &durationMS, &e.ArticleSHA256, &e.ArticleBytes,
			&e.Backend, &e.Model, &e.Status, &errMsg, &asset, &bookPath,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		e.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if errMsg.Valid {
			e.Error = errMsg.String
		}
		if asset.Valid {
			e.Asset = asset.String
		}
		if bookPath.Valid {
			e.BookPath = bookPath.String
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
