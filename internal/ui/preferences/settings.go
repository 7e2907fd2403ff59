package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mindfulpause/internal/core/model"
)

// ErrInvalidNumber is returned when a numeric field does not hold a
// non-negative whole number.
var ErrInvalidNumber = errors.New("not a non-negative whole number")

// Form holds the editable settings as the preferences window shows them.
// Numeric fields are text in the unit printed next to the entry.
type Form struct {
	BigBreakEnabled  bool
	BigBreakInterval string // minutes
	BigBreakDuration string // minutes

	ShortPauseEnabled  bool
	ShortPauseInterval string // minutes
	ShortPauseDuration string // seconds

	WarningEnabled bool
	WarningTime    string // seconds

	StrictMode    bool
	TrackActivity bool

	SoundEnabled      bool
	SoundStartEnabled bool
	DarkenShortPause  bool
	Autostart         bool
}

// FormFromSettings converts settings into form values.
func FormFromSettings(settings model.Settings) Form {
	return Form{
		BigBreakEnabled:    settings.BigBreakEnabled,
		BigBreakInterval:   formatUnits(settings.BigBreakInterval, time.Minute),
		BigBreakDuration:   formatUnits(settings.BigBreakDuration, time.Minute),
		ShortPauseEnabled:  settings.ShortPauseEnabled,
		ShortPauseInterval: formatUnits(settings.ShortPauseInterval, time.Minute),
		ShortPauseDuration: formatUnits(settings.ShortPauseDuration, time.Second),
		WarningEnabled:     settings.WarningEnabled,
		WarningTime:        formatUnits(settings.WarningTime, time.Second),
		StrictMode:         settings.StrictMode,
		TrackActivity:      settings.TrackActivity,
		SoundEnabled:       settings.SoundEnabled,
		SoundStartEnabled:  settings.SoundStartEnabled,
		DarkenShortPause:   settings.DarkenShortPause,
		Autostart:          settings.Autostart,
	}
}

// Settings parses the form. Every invalid field is reported in the error.
func (form Form) Settings() (model.Settings, error) {
	var (
		settings model.Settings
		problems []error
	)
	parse := func(name, value string, unit time.Duration, target *time.Duration) {
		parsed, err := parseUnits(value, unit)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", name, err))
			return
		}
		*target = parsed
	}

	parse("big break interval", form.BigBreakInterval, time.Minute, &settings.BigBreakInterval)
	parse("big break duration", form.BigBreakDuration, time.Minute, &settings.BigBreakDuration)
	parse("short pause interval", form.ShortPauseInterval, time.Minute, &settings.ShortPauseInterval)
	parse("short pause duration", form.ShortPauseDuration, time.Second, &settings.ShortPauseDuration)
	parse("warning time", form.WarningTime, time.Second, &settings.WarningTime)
	if len(problems) > 0 {
		return model.Settings{}, errors.Join(problems...)
	}

	settings.BigBreakEnabled = form.BigBreakEnabled
	settings.ShortPauseEnabled = form.ShortPauseEnabled
	settings.WarningEnabled = form.WarningEnabled
	settings.StrictMode = form.StrictMode
	settings.TrackActivity = form.TrackActivity
	settings.SoundEnabled = form.SoundEnabled
	settings.SoundStartEnabled = form.SoundStartEnabled
	settings.DarkenShortPause = form.DarkenShortPause
	settings.Autostart = form.Autostart
	return settings, nil
}

func formatUnits(value, unit time.Duration) string {
	return strconv.FormatInt(int64(value/unit), 10)
}

func parseUnits(value string, unit time.Duration) (time.Duration, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidNumber)
	}
	return time.Duration(parsed) * unit, nil
}
