package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with JSON format", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "info", Format: "json"})

		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "debug", Format: "console"})

		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("defaults to info level for invalid level", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "invalid", Format: "json"})

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("respects warn level", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "warn", Format: "console"})

		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})
}

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerTo(&config.LogConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("model loaded")
	require.NoError(t, logger.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "model loaded", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "neonsenti", entry["logger"])
	assert.NotEmpty(t, entry["timestamp"])
}
