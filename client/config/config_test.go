package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("BOOKREVIEW_API_URL", "http://books.local:8080")
	t.Setenv("BOOKREVIEW_STATE_DIR", "/tmp/state")
	t.Setenv("BOOKREVIEW_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://books.local:8080", cfg.APIURL)
	assert.Equal(t, "/tmp/state", cfg.StateDir)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log().LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t,
		"BOOKREVIEW_API_URL", "API_URL",
		"BOOKREVIEW_STATE_DIR", "STATE_DIR",
		"BOOKREVIEW_LOG_LEVEL", "LOG_LEVEL",
		"BOOKREVIEW_LOG_SINK", "LOG_SINK",
	)
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, "bookreview", filepath.Base(cfg.StateDir))
	assert.Equal(t, zapcore.WarnLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Log().Sink)
}
