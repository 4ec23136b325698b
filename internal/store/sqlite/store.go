// Package sqlite backs the store.Store interface with an embedded SQLite
// database, keeping the application self-contained: the persisted state is
// a single-user local profile, not a shared server database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`

// Store is the SQLite implementation of store.Store. Records are JSON
// payloads in a two-column key/value table.
type Store struct {
	db *sql.DB
}

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Open opens (and creates, if needed) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

// LoadHistory returns the certificate history, newest first.
func (s *Store) LoadHistory(ctx context.Context) ([]domain.Certificate, error) {
	history := []domain.Certificate{}
	if err := s.load(ctx, store.HistoryKey, &history); err != nil {
		return nil, store.NewStoreError("history", "load", err)
	}
	return history, nil
}

// SaveHistory replaces the stored history wholesale.
func (s *Store) SaveHistory(ctx context.Context, history []domain.Certificate) error {
	if err := s.save(ctx, store.HistoryKey, history); err != nil {
		return store.NewStoreError("history", "save", err)
	}
	return nil
}

// LoadUsedTexts returns the cumulative used-question-text list.
func (s *Store) LoadUsedTexts(ctx context.Context) ([]string, error) {
	texts := []string{}
	if err := s.load(ctx, store.UsedTextsKey, &texts); err != nil {
		return nil, store.NewStoreError("used_texts", "load", err)
	}
	return texts, nil
}

// SaveUsedTexts replaces the stored used-text list wholesale.
func (s *Store) SaveUsedTexts(ctx context.Context, texts []string) error {
	if err := s.save(ctx, store.UsedTextsKey, texts); err != nil {
		return store.NewStoreError("used_texts", "save", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// load reads and unmarshals a record into v. A missing record leaves v
// untouched (callers pass initialized empty slices).
func (s *Store) load(ctx context.Context, key string, v interface{}) error {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(value), v)
}

// save marshals v and upserts it under key.
func (s *Store) save(ctx context.Context, key string, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	return err
}
