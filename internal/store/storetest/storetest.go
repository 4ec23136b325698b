// Package storetest holds a conformance suite shared by all store.Store
// implementations.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/store"
)

// Run exercises the store.Store contract against the given implementation.
// Callers own setup and teardown of the backend.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty loads return empty slices", func(t *testing.T) {
		history, err := s.LoadHistory(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)

		texts, err := s.LoadUsedTexts(ctx)
		require.NoError(t, err)
		assert.Empty(t, texts)
	})

	t.Run("history round-trips newest first", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		older := domain.NewCertificate("chapter-one.pdf", 28, 30, now)
		newer := domain.NewCertificate("chapter-two.pdf", 19, 30, now.Add(time.Hour))

		require.NoError(t, s.SaveHistory(ctx, []domain.Certificate{newer, older}))

		history, err := s.LoadHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, newer.ID, history[0].ID)
		assert.Equal(t, older.ID, history[1].ID)
		assert.Equal(t, domain.GradeCPlus, history[0].Grade)
		assert.Equal(t, domain.GradeA, history[1].Grade)
		assert.Equal(t, "chapter-one.pdf", history[1].FileName)
		assert.True(t, history[0].IssuedAt.Equal(newer.IssuedAt))
	})

	t.Run("save replaces rather than appends", func(t *testing.T) {
		now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
		only := domain.NewCertificate("solo.pdf", 30, 30, now)

		require.NoError(t, s.SaveHistory(ctx, []domain.Certificate{only}))

		history, err := s.LoadHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, only.ID, history[0].ID)
	})

	t.Run("used texts round-trip in order", func(t *testing.T) {
		texts := []string{
			"What is the capital of France?",
			"Which planet is closest to the sun?",
		}
		require.NoError(t, s.SaveUsedTexts(ctx, texts))

		loaded, err := s.LoadUsedTexts(ctx)
		require.NoError(t, err)
		assert.Equal(t, texts, loaded)
	})
}
