package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "info").With("fetcher")

	l.Warn("provider failed", String("op", "quote"), Int("attempt", 1), Error(errors.New("timeout")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "fetcher", entry["component"])
	assert.Equal(t, "quote", entry["op"])
	assert.Equal(t, float64(1), entry["attempt"])
	assert.Equal(t, "timeout", entry["error"])
	assert.Equal(t, "provider failed", entry["message"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	l.Error("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().With("x").Info("nothing", Bool("ok", true))
	})
}
