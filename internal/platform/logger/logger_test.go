package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahroai/zahro-api/internal/config"
)

func TestSetup(t *testing.T) {
	cases := []struct {
		level    string
		debugOn  bool
		errorOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, true},
		{"bogus", false, true}, // falls back to info
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			log := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.level})
			require.NotNil(t, log)
			assert.Equal(t, tc.debugOn, log.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tc.errorOn, log.Enabled(context.Background(), slog.LevelError))
		})
	}
}

func TestSetupSetsDefault(t *testing.T) {
	log := Setup(config.ServerConfig{Port: 8080, LogLevel: "warn"})
	assert.Equal(t, log, slog.Default())
}
