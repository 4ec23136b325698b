package store

import (
	"context"

	"github.com/zahroai/zahro-api/internal/domain"
)

// Record keys shared by all backends. The names are carried over from the
// browser build of the application, which kept the same two records in
// localStorage.
const (
	HistoryKey   = "zahro_history"
	UsedTextsKey = "zahro_used_texts"
)

// Store persists the certificate history and the used-question-text list.
// Loads return empty slices, not errors, when a record has never been
// written.
type Store interface {
	// LoadHistory returns the certificate history, newest first.
	LoadHistory(ctx context.Context) ([]domain.Certificate, error)

	// SaveHistory replaces the stored history with the given slice.
	SaveHistory(ctx context.Context, history []domain.Certificate) error

	// LoadUsedTexts returns the cumulative used-question-text list.
	LoadUsedTexts(ctx context.Context) ([]string, error)

	// SaveUsedTexts replaces the stored used-text list with the given slice.
	SaveUsedTexts(ctx context.Context, texts []string) error

	// Close releases backend resources.
	Close() error
}
