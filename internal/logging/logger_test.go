package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	l := NewLogger(Config{Level: "warn", Format: "text"})
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))

	// Unknown levels fall back to info.
	l = NewLogger(Config{Level: "noisy", Format: "json"})
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
}

func TestLoggerContextRoundTrip(t *testing.T) {
	l := NewLogger(Config{Level: "info", Format: "text"}).WithRunID("abc123")
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	// Missing logger falls back to the default.
	assert.NotNil(t, FromContext(context.Background()))
}
