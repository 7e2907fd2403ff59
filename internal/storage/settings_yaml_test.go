package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mindfulpause/internal/core/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsStore(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(t.TempDir(), zerolog.Nop())
}

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	store := newSettingsStore(t)

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSettings(), settings)
	assert.FileExists(t, store.Path())

	reread, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), reread)
}

func TestSaveLoadKeepsUnits(t *testing.T) {
	store := newSettingsStore(t)
	settings := model.DefaultSettings()
	settings.BigBreakInterval = 45 * time.Minute
	settings.BigBreakDuration = 10 * time.Minute
	settings.ShortPauseInterval = 15 * time.Minute
	settings.ShortPauseDuration = 40 * time.Second
	settings.WarningTime = 90 * time.Second
	settings.StrictMode = true
	settings.Autostart = true
	settings.DarkenShortPause = true

	require.NoError(t, store.Save(settings))

	rawData, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(rawData), "big_break_interval: 45")
	assert.Contains(t, string(rawData), "short_pause_duration: 40")
	assert.Contains(t, string(rawData), "warning_time: 90")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestMissingKeysUseDefaults(t *testing.T) {
	store := newSettingsStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("big_break_interval: 30\nsound_enabled: false\n"), 0o644))

	settings, err := store.Load()
	require.NoError(t, err)

	expected := model.DefaultSettings()
	expected.BigBreakInterval = 30 * time.Minute
	expected.SoundEnabled = false
	assert.Equal(t, expected, settings)
}

func TestNonPositiveValuesArePassedThrough(t *testing.T) {
	store := newSettingsStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("short_pause_interval: 0\nwarning_time: -5\n"), 0o644))

	settings, err := store.Read()
	require.NoError(t, err)

	assert.Zero(t, settings.ShortPauseInterval)
	assert.Equal(t, -5*time.Second, settings.WarningTime)
}

func TestCorruptSettingsAreBackedUpAndRegenerated(t *testing.T) {
	store := newSettingsStore(t)
	corrupt := []byte("big_break_interval: [1, 2\n")
	require.NoError(t, os.WriteFile(store.Path(), corrupt, 0o644))

	_, err := store.Read()
	assert.True(t, errors.Is(err, ErrCorruptFile))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)

	backup, err := os.ReadFile(store.Path() + ".bak")
	require.NoError(t, err)
	assert.Equal(t, corrupt, backup)

	_, err = store.Read()
	assert.NoError(t, err)
}

func TestWrongTypeIsCorrupt(t *testing.T) {
	store := newSettingsStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("strict_mode: sometimes\n"), 0o644))

	_, err := store.Read()

	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestReloadDetectsExternalChangesOnly(t *testing.T) {
	store := newSettingsStore(t)
	_, err := store.Load()
	require.NoError(t, err)

	_, changed, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	settings := model.DefaultSettings()
	settings.StrictMode = true
	require.NoError(t, store.Save(settings))
	_, changed, err = store.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "own writes are not reported")

	require.NoError(t, os.WriteFile(store.Path(), []byte("big_break_interval: 25\n"), 0o644))
	reloaded, changed, err := store.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 25*time.Minute, reloaded.BigBreakInterval)

	_, changed, err = store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSaveCreatesDataDirectory(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "nested", "dir"), zerolog.Nop())

	require.NoError(t, store.Save(model.DefaultSettings()))

	assert.FileExists(t, store.Path())
}
