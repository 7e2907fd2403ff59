package model

import "time"

// Settings holds every user-editable option. It is read-only to the core:
// the storage layer loads it and the coordinator receives a copy.
type Settings struct {
	BigBreakEnabled  bool
	BigBreakInterval time.Duration
	BigBreakDuration time.Duration

	ShortPauseEnabled  bool
	ShortPauseInterval time.Duration
	ShortPauseDuration time.Duration

	WarningEnabled bool
	WarningTime    time.Duration

	StrictMode    bool
	TrackActivity bool

	SoundEnabled      bool
	SoundStartEnabled bool
	DarkenShortPause  bool
	Autostart         bool
}

// DefaultSettings returns the built-in defaults used for missing keys.
func DefaultSettings() Settings {
	return Settings{
		BigBreakEnabled:    true,
		BigBreakInterval:   60 * time.Minute,
		BigBreakDuration:   5 * time.Minute,
		ShortPauseEnabled:  true,
		ShortPauseInterval: 20 * time.Minute,
		ShortPauseDuration: 20 * time.Second,
		WarningEnabled:     true,
		WarningTime:        30 * time.Second,
		StrictMode:         false,
		TrackActivity:      true,
		SoundEnabled:       true,
		SoundStartEnabled:  true,
		DarkenShortPause:   false,
		Autostart:          false,
	}
}

// WarningLead is the lead time of the pre-break warning, or zero when warnings are off.
func (settings Settings) WarningLead() time.Duration {
	if !settings.WarningEnabled {
		return 0
	}
	return settings.WarningTime
}
