package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/enetx/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "playback.yaml", `
initial_state: Paused
autoplay: false
downloaded: true
log_level: debug
log_format: json
`)

	t.Setenv("PLAYBACK_LOG_LEVEL", "warn")
	t.Setenv("PLAYBACK_AUTO_ADVANCE", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, playback.StatePaused, cfg.InitialState)
	assert.False(t, cfg.Autoplay)
	assert.True(t, cfg.Downloaded)
	assert.False(t, cfg.AutoAdvance)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "playbackctl", cfg.MetricsNamespace)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, ".env", "PLAYBACK_INITIAL_STATE=downloading\nPLAYBACK_METRICS_NAMESPACE=demo\n")
	t.Cleanup(func() {
		os.Unsetenv("PLAYBACK_INITIAL_STATE")
		os.Unsetenv("PLAYBACK_METRICS_NAMESPACE")
	})

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, playback.StateDownloading, cfg.InitialState)
	assert.Equal(t, "demo", cfg.MetricsNamespace)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown state in yaml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "initial_state: rewinding\n")

		_, err := Load(path)

		var unknown *playback.ErrUnknownState
		assert.True(t, errors.As(err, &unknown), "got %v", err)
	})

	t.Run("abstract state from environment", func(t *testing.T) {
		t.Setenv("PLAYBACK_INITIAL_STATE", "running")

		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidInitialState)
	})

	t.Run("log format", func(t *testing.T) {
		t.Setenv("PLAYBACK_LOG_FORMAT", "xml")

		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidLogFormat)
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("PLAYBACK_LOG_LEVEL", "loud")

		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})
}
