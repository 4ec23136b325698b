// Package memory provides an in-memory store.Store used by tests and by
// development runs with the memory driver. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/store"
)

// Store is the map-backed implementation of store.Store.
type Store struct {
	mu        sync.RWMutex
	history   []domain.Certificate
	usedTexts []string
}

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// LoadHistory returns a copy of the stored history.
func (s *Store) LoadHistory(_ context.Context) ([]domain.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]domain.Certificate, len(s.history))
	copy(history, s.history)
	return history, nil
}

// SaveHistory replaces the stored history with a copy of the given slice.
func (s *Store) SaveHistory(_ context.Context, history []domain.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = make([]domain.Certificate, len(history))
	copy(s.history, history)
	return nil
}

// LoadUsedTexts returns a copy of the stored used-text list.
func (s *Store) LoadUsedTexts(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	texts := make([]string, len(s.usedTexts))
	copy(texts, s.usedTexts)
	return texts, nil
}

// SaveUsedTexts replaces the stored used-text list with a copy.
func (s *Store) SaveUsedTexts(_ context.Context, texts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usedTexts = make([]string, len(texts))
	copy(s.usedTexts, texts)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
