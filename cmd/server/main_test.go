package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahroai/zahro-api/internal/config"
	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/service"
	"github.com/zahroai/zahro-api/internal/store/memory"
)

type stubExtractor struct{}

func (stubExtractor) ExtractQuestions(
	context.Context,
	domain.Document,
	[]string,
) ([]domain.Question, error) {
	return []domain.Question{}, nil
}

func TestOpenStoreDrivers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		st, err := openStore(ctx, config.StoreConfig{Driver: "memory"})
		require.NoError(t, err)
		assert.NoError(t, st.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()
		st, err := openStore(ctx, config.StoreConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "zahro.db"),
		})
		require.NoError(t, err)
		assert.NoError(t, st.Close())
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, err := openStore(ctx, config.StoreConfig{Driver: "cassandra"})
		assert.Error(t, err)
	})
}

func TestSetupRouterServesHealth(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := service.NewQuizService(context.Background(), logger, stubExtractor{}, memory.New())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	app := &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
			Quiz:   config.QuizConfig{MaxUploadBytes: 1 << 20},
		},
		logger:      logger,
		store:       memory.New(),
		quizService: svc,
	}

	rec := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	// Unknown session through the full middleware stack.
	rec = httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/quizzes/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRootCommandHasServe(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.Flags().Lookup("config"))
	assert.NotNil(t, serve.Flags().Lookup("port"))
}
