// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists extracted page text by URL in SQLite so repeated
// runs over the same inputs skip downloading and parsing.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// Store is a SQLite-backed page text cache. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS extractions (
		url TEXT PRIMARY KEY,
		pages TEXT NOT NULL,
		page_count INTEGER NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached pages for url. The boolean is false when the URL
// has no entry.
func (s *Store) Get(ctx context.Context, url string) (types.PageText, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT pages FROM extractions WHERE url = ?`, url,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying %s: %w", url, err)
	}

	var pages types.PageText
	if err := json.Unmarshal([]byte(raw), &pages); err != nil {
		return nil, false, fmt.Errorf("decoding cached pages for %s: %w", url, err)
	}
	return pages, true, nil
}

// Put stores pages for url, replacing any previous entry.
func (s *Store) Put(ctx context.Context, url string, pages types.PageText) error {
	raw, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("encoding pages: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extractions (url, pages, page_count, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			pages=excluded.pages, page_count=excluded.page_count, fetched_at=excluded.fetched_at`,
		url, string(raw), len(pages), s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", url, err)
	}
	return nil
}

// Len returns the number of cached URLs.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM extractions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
