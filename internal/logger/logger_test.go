package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleHandler_Development(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(consoleHandler(&buf, true))

	log.Debug("milestone toggled", "milestone_id", "m3")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "milestone_id=m3")
}

func TestConsoleHandler_Production(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(consoleHandler(&buf, false))

	log.Debug("hidden")
	assert.Empty(t, buf.String(), "debug is dropped in production")

	log.Info("goal created", "goal_id", "g1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "goal created", entry["msg"])
	assert.Equal(t, "g1", entry["goal_id"])
}

func TestCombine_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(combine([]slog.Handler{
		consoleHandler(&a, true),
		consoleHandler(&b, false),
	}))

	log.Warn("rate limit exceeded", "ip", "10.0.0.1")

	assert.Contains(t, a.String(), "rate limit exceeded")
	assert.Contains(t, b.String(), "rate limit exceeded")
}

func TestInit_WithoutSentry(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	flush := Init(Options{IsDev: true})
	require.NotNil(t, flush)
	flush()

	assert.Same(t, Log, slog.Default())
}
