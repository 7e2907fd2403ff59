package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 30*time.Minute, cfg.Activity.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.Activity.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Warning.Postpone)
	assert.True(t, cfg.WatchSettings)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "sound"), cfg.Sound.Dir)
}

func TestLoadReadsFile(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, `
data_dir: `+dataDir+`
logging:
  level: debug
  format: json
activity:
  idle_timeout: 10m
  poll_interval: 2s
warning:
  postpone: 90s
sound:
  dir: /usr/share/mindfulpause
watch_settings: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10*time.Minute, cfg.Activity.IdleTimeout)
	assert.Equal(t, 2*time.Second, cfg.Activity.PollInterval)
	assert.Equal(t, 90*time.Second, cfg.Warning.Postpone)
	assert.Equal(t, "/usr/share/mindfulpause", cfg.Sound.Dir)
	assert.False(t, cfg.WatchSettings)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("MINDFULPAUSE_LOGGING_LEVEL", "warn")
	t.Setenv("MINDFULPAUSE_ACTIVITY_IDLE_TIMEOUT", "45m")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 45*time.Minute, cfg.Activity.IdleTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"level":    "logging:\n  level: verbose\n",
		"format":   "logging:\n  format: xml\n",
		"timeout":  "activity:\n  idle_timeout: 0s\n",
		"poll":     "activity:\n  poll_interval: -5s\n",
		"postpone": "warning:\n  postpone: 0s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "logging: [unterminated\n"))

	assert.Error(t, err)
}
