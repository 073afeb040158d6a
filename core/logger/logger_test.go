package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionexpiry/core/logger"
)

func TestNew_TextDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden")
	log.Info("shown", logger.Component("test"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "component=test")
}

func TestNew_JSONWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithLevel(slog.LevelDebug),
		logger.WithAttr(slog.String("service", "web")),
	)

	log.Debug("expiry set", logger.ExpiresAt(1700000000))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "expiry set", record["msg"])
	assert.Equal(t, "web", record["service"])
	assert.Equal(t, "DEBUG", record["level"])
	assert.Contains(t, record, "expires_at")
}

func TestNew_HandlerOptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelDebug),
		logger.WithHandlerOptions(opts),
		logger.WithTextFormatter(),
	)

	log.Info("dropped")
	log.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	assert.NotPanics(t, func() { log.Error("nothing") })
}
