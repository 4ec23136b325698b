package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/zahroai/zahro-api/internal/config"
	"github.com/zahroai/zahro-api/internal/platform/gemini"
	"github.com/zahroai/zahro-api/internal/platform/logger"
	"github.com/zahroai/zahro-api/internal/service"
	"github.com/zahroai/zahro-api/internal/store"
	"github.com/zahroai/zahro-api/internal/store/memory"
	redisstore "github.com/zahroai/zahro-api/internal/store/redis"
	"github.com/zahroai/zahro-api/internal/store/sqlite"
)

// application bundles the wired dependencies of a running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	store       store.Store
	quizService *service.QuizService
}

// newApplication wires the store, the Gemini extractor and the quiz service
// from the loaded configuration.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log := logger.Setup(cfg.Server)

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	extractor, err := gemini.NewExtractor(ctx, log, cfg.LLM)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	quizService, err := service.NewQuizService(ctx, log, extractor, st)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}

	log.Info("application initialized",
		"store_driver", cfg.Store.Driver,
		"model", cfg.LLM.ModelName,
		"question_count", cfg.LLM.QuestionCount)

	return &application{
		config:      cfg,
		logger:      log,
		store:       st,
		quizService: quizService,
	}, nil
}

// openStore selects the persistence backend from configuration.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(ctx, cfg.SQLitePath)
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.New(client), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// cleanup releases application resources after the server stops.
func (app *application) cleanup() {
	if err := app.quizService.Close(); err != nil {
		app.logger.Error("failed to close quiz service", "error", err)
	}
	if err := app.store.Close(); err != nil {
		app.logger.Error("failed to close store", "error", err)
	}
}
