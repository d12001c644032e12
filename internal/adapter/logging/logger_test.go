package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/pagetest.net/internal/config"
)

func TestNewConfiguredLogger_WritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pagetest.log")
	l := NewConfiguredLogger(&config.LogConfig{
		Level:      "info",
		File:       file,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}, false)

	l.Debug("hidden", "k", 1)
	l.Info("artifact written", "key", "https___example_com__abc")
	l.Warn("slow render", "ms", 1200)
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "artifact written", entry["msg"])
	assert.Equal(t, "https___example_com__abc", entry["key"])
	assert.Contains(t, entry, "time")
}

func TestNewConfiguredLogger_DebugModeLowersLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "debug.log")
	l := NewConfiguredLogger(&config.LogConfig{Level: "error", File: file, MaxSizeMB: 1}, true)

	l.Debug("visible")
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNewNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Info("x", "a", 1)
		l.Error("y")
	})
}
