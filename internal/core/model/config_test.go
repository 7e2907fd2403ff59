package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.True(t, settings.BigBreakEnabled)
	assert.Equal(t, 60*time.Minute, settings.BigBreakInterval)
	assert.Equal(t, 5*time.Minute, settings.BigBreakDuration)
	assert.Equal(t, 20*time.Minute, settings.ShortPauseInterval)
	assert.Equal(t, 20*time.Second, settings.ShortPauseDuration)
	assert.Equal(t, 30*time.Second, settings.WarningTime)
	assert.False(t, settings.StrictMode)
	assert.True(t, settings.TrackActivity)
}

func TestWarningLead(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, 30*time.Second, settings.WarningLead())

	settings.WarningEnabled = false
	assert.Zero(t, settings.WarningLead())
}
