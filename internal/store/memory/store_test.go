package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/store/storetest"
)

func TestStoreConformance(t *testing.T) {
	t.Parallel()
	storetest.Run(t, New())
}

func TestStoreReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cert := domain.NewCertificate("notes.pdf", 24, 30, now)
	require.NoError(t, s.SaveHistory(ctx, []domain.Certificate{cert}))

	loaded, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	loaded[0].FileName = "mutated.pdf"

	again, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", again[0].FileName)
}
