package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mindfulpause/internal/core/model"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// ErrCorruptFile is returned when a data file exists but cannot be parsed.
var ErrCorruptFile = errors.New("corrupt data file")

// yamlSettings mirrors the settings file. Pointer fields let missing keys
// fall back to the built-in defaults.
type yamlSettings struct {
	BigBreakEnabled    *bool `yaml:"big_break_enabled"`
	BigBreakInterval   *int  `yaml:"big_break_interval"`
	BigBreakDuration   *int  `yaml:"big_break_duration"`
	ShortPauseEnabled  *bool `yaml:"short_pause_enabled"`
	ShortPauseInterval *int  `yaml:"short_pause_interval"`
	ShortPauseDuration *int  `yaml:"short_pause_duration"`
	WarningEnabled     *bool `yaml:"warning_enabled"`
	WarningTime        *int  `yaml:"warning_time"`
	StrictMode         *bool `yaml:"strict_mode"`
	TrackActivity      *bool `yaml:"track_activity"`
	SoundEnabled       *bool `yaml:"sound_enabled"`
	SoundStartEnabled  *bool `yaml:"sound_start_enabled"`
	DarkenShortPause   *bool `yaml:"darken_short_pause"`
	Autostart          *bool `yaml:"autostart"`
}

// SettingsStore persists model.Settings as YAML inside a data directory.
type SettingsStore struct {
	mu       sync.Mutex
	dir      string
	lastSeen []byte
	logger   zerolog.Logger
}

// NewSettingsStore creates a store rooted at dir.
func NewSettingsStore(dir string, logger zerolog.Logger) *SettingsStore {
	return &SettingsStore{
		dir:    dir,
		logger: logger.With().Str("component", "settings_store").Logger(),
	}
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return filepath.Join(store.dir, settingsFileName)
}

// Read parses the settings file without repairing it. A missing file yields
// the defaults; an unparsable one yields the defaults and ErrCorruptFile.
func (store *SettingsStore) Read() (model.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	settings, _, err := store.readLocked()
	return settings, err
}

// Load returns usable settings unconditionally. A missing file is created
// with the defaults; a corrupt one is moved aside to <name>.bak and
// regenerated. The returned error only reports failures to write the
// regenerated file.
func (store *SettingsStore) Load() (model.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings, rawData, err := store.readLocked()
	switch {
	case err == nil && rawData != nil:
		store.lastSeen = rawData
		return settings, nil
	case err == nil:
		store.logger.Info().Str("path", store.Path()).Msg("Settings file missing, writing defaults")
	case errors.Is(err, ErrCorruptFile):
		store.logger.Warn().Err(err).Str("path", store.Path()).Msg("Settings file unreadable, regenerating defaults")
		if backupErr := os.Rename(store.Path(), store.Path()+".bak"); backupErr != nil {
			store.logger.Warn().Err(backupErr).Msg("Failed to back up corrupt settings file")
		}
	default:
		store.logger.Warn().Err(err).Str("path", store.Path()).Msg("Settings file unreadable, using defaults")
		return model.DefaultSettings(), nil
	}

	defaults := model.DefaultSettings()
	if err := store.writeLocked(defaults); err != nil {
		return defaults, err
	}
	return defaults, nil
}

// Reload re-reads the file and reports whether its content differs from
// what this store last loaded or saved.
func (store *SettingsStore) Reload() (model.Settings, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	settings, rawData, err := store.readLocked()
	if err != nil {
		return settings, false, err
	}
	if rawData == nil || bytes.Equal(rawData, store.lastSeen) {
		return settings, false, nil
	}
	store.lastSeen = rawData
	return settings, true, nil
}

// Save writes settings to disk.
func (store *SettingsStore) Save(settings model.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.writeLocked(settings)
}

// readLocked returns nil raw data when the file does not exist.
func (store *SettingsStore) readLocked() (model.Settings, []byte, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(store.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil, nil
		}
		return settings, nil, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, rawData, fmt.Errorf("parse settings yaml: %w: %v", ErrCorruptFile, err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, rawData, nil
}

func (store *SettingsStore) writeLocked(settings model.Settings) error {
	serialized, err := yaml.Marshal(toYamlSettings(settings))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := writeFileAtomic(store.Path(), serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	store.lastSeen = serialized
	return nil
}

func toYamlSettings(settings model.Settings) yamlSettings {
	return yamlSettings{
		BigBreakEnabled:    boolPtr(settings.BigBreakEnabled),
		BigBreakInterval:   intPtr(int(settings.BigBreakInterval / time.Minute)),
		BigBreakDuration:   intPtr(int(settings.BigBreakDuration / time.Minute)),
		ShortPauseEnabled:  boolPtr(settings.ShortPauseEnabled),
		ShortPauseInterval: intPtr(int(settings.ShortPauseInterval / time.Minute)),
		ShortPauseDuration: intPtr(int(settings.ShortPauseDuration / time.Second)),
		WarningEnabled:     boolPtr(settings.WarningEnabled),
		WarningTime:        intPtr(int(settings.WarningTime / time.Second)),
		StrictMode:         boolPtr(settings.StrictMode),
		TrackActivity:      boolPtr(settings.TrackActivity),
		SoundEnabled:       boolPtr(settings.SoundEnabled),
		SoundStartEnabled:  boolPtr(settings.SoundStartEnabled),
		DarkenShortPause:   boolPtr(settings.DarkenShortPause),
		Autostart:          boolPtr(settings.Autostart),
	}
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	setBool(&settings.BigBreakEnabled, fileData.BigBreakEnabled)
	setDuration(&settings.BigBreakInterval, fileData.BigBreakInterval, time.Minute)
	setDuration(&settings.BigBreakDuration, fileData.BigBreakDuration, time.Minute)
	setBool(&settings.ShortPauseEnabled, fileData.ShortPauseEnabled)
	setDuration(&settings.ShortPauseInterval, fileData.ShortPauseInterval, time.Minute)
	setDuration(&settings.ShortPauseDuration, fileData.ShortPauseDuration, time.Second)
	setBool(&settings.WarningEnabled, fileData.WarningEnabled)
	setDuration(&settings.WarningTime, fileData.WarningTime, time.Second)
	setBool(&settings.StrictMode, fileData.StrictMode)
	setBool(&settings.TrackActivity, fileData.TrackActivity)
	setBool(&settings.SoundEnabled, fileData.SoundEnabled)
	setBool(&settings.SoundStartEnabled, fileData.SoundStartEnabled)
	setBool(&settings.DarkenShortPause, fileData.DarkenShortPause)
	setBool(&settings.Autostart, fileData.Autostart)
}

func setBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}

func setDuration(target *time.Duration, value *int, unit time.Duration) {
	if value != nil {
		*target = time.Duration(*value) * unit
	}
}

func boolPtr(value bool) *bool {
	return &value
}

func intPtr(value int) *int {
	return &value
}

// writeFileAtomic replaces path through a temporary file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
