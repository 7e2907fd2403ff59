package main

import (
	"bytes"
	"testing"
	"time"

	"mindfulpause/internal/config"
	"mindfulpause/internal/core/model"
	"mindfulpause/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanBigBreakWithWarning(t *testing.T) {
	settings := model.DefaultSettings()
	settings.ShortPauseEnabled = false

	plan := planSchedule(settings, 2*time.Hour)

	require.Len(t, plan, 3)
	assert.Equal(t, planEntry{At: 59*time.Minute + 30*time.Second, Event: "warning, big break in 30s"}, plan[0])
	assert.Equal(t, planEntry{At: time.Hour, Event: "big break starts for 5m0s"}, plan[1])
	assert.Equal(t, planEntry{At: 65 * time.Minute, Event: "big break ends"}, plan[2])
}

func TestPlanShortPausesRestartAfterEachPause(t *testing.T) {
	settings := model.DefaultSettings()
	settings.BigBreakEnabled = false

	plan := planSchedule(settings, 70*time.Minute)

	var offsets []time.Duration
	for _, entry := range plan {
		offsets = append(offsets, entry.At)
	}
	assert.Equal(t, []time.Duration{
		20 * time.Minute, 20*time.Minute + 20*time.Second,
		40*time.Minute + 20*time.Second, 40*time.Minute + 40*time.Second,
		60*time.Minute + 40*time.Second, 61 * time.Minute,
	}, offsets)
	assert.Equal(t, "short pause starts for 20s", plan[0].Event)
}

func TestPlanNothingScheduled(t *testing.T) {
	settings := model.DefaultSettings()
	settings.BigBreakEnabled = false
	settings.ShortPauseInterval = 0

	assert.Empty(t, planSchedule(settings, 3*time.Hour))
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+0:59:30", formatOffset(59*time.Minute+30*time.Second))
	assert.Equal(t, "+2:05:00", formatOffset(125*time.Minute))
}

func TestListPractices(t *testing.T) {
	store := storage.NewPracticeStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, store.Add(storage.PracticesBig, "walk"))
	require.NoError(t, store.Add(storage.PracticesBig, "look far away"))

	var out bytes.Buffer
	require.NoError(t, listPractices(&out, store, storage.PracticesBig))

	assert.Contains(t, out.String(), " 1. walk")
	assert.Contains(t, out.String(), " 2. look far away")
}

func TestNewLoggerLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var out bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "WARN", Format: "json"}, &out)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"message":"shown"`)
}
