// Package redis backs the store.Store interface with Redis. The two records
// are stored as JSON strings under the same keys the other backends use.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/store"
)

// Store is the Redis implementation of store.Store.
type Store struct {
	client *redis.Client
}

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// New creates a Store on top of an existing Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
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

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) load(ctx context.Context, key string, v interface{}) error {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(value), v)
}

func (s *Store) save(ctx context.Context, key string, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// Records live for the lifetime of the profile; no TTL.
	return s.client.Set(ctx, key, string(value), 0).Err()
}
