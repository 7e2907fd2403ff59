package overlay

import (
	"testing"
	"time"

	"mindfulpause/internal/core/coordinator"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestEscapePolicy(t *testing.T) {
	assert.Equal(t, escapeEnd, escapePolicy(coordinator.Session{Kind: coordinator.SessionShort}))
	assert.Equal(t, escapeConfirm, escapePolicy(coordinator.Session{Kind: coordinator.SessionBig}))
	assert.Equal(t, escapeIgnore, escapePolicy(coordinator.Session{Kind: coordinator.SessionBig, Strict: true}))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "05:00", formatDuration(5*time.Minute))
	assert.Equal(t, "00:30", formatDuration(29*time.Second+100*time.Millisecond))
	assert.Equal(t, "61:01", formatDuration(time.Hour+61*time.Second))
	assert.Equal(t, "00:00", formatDuration(-time.Second))
}

func TestPostponeLabel(t *testing.T) {
	assert.Equal(t, "Postpone 5 min", postponeLabel(5*time.Minute))
	assert.Equal(t, "Postpone", postponeLabel(10*time.Second))
}

func TestEscapeEndsShortPause(t *testing.T) {
	app := test.NewTempApp(t)
	var interrupted []string
	pause := New(app, DefaultConfig(), func(sessionID string) { interrupted = append(interrupted, sessionID) })

	pause.bind(coordinator.Session{ID: "s1", Kind: coordinator.SessionShort, Text: "breathe", Duration: 20 * time.Second})
	pause.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})

	assert.Equal(t, []string{"s1"}, interrupted)
	assert.Equal(t, "breathe", pause.textLabel.Text)
	assert.False(t, pause.timerLabel.Visible())
}

func TestStrictBigBreakCannotBeSkipped(t *testing.T) {
	app := test.NewTempApp(t)
	var interrupted []string
	pause := New(app, DefaultConfig(), func(sessionID string) { interrupted = append(interrupted, sessionID) })

	pause.bind(coordinator.Session{ID: "s2", Kind: coordinator.SessionBig, Strict: true, Duration: 5 * time.Minute})
	pause.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})
	test.Tap(pause.skipButton)

	assert.Empty(t, interrupted)
	assert.True(t, pause.skipButton.Disabled())
	assert.Equal(t, "05:00", pause.timerLabel.Text)
}

func TestBigBreakAsksBeforeEnding(t *testing.T) {
	app := test.NewTempApp(t)
	var interrupted []string
	pause := New(app, DefaultConfig(), func(sessionID string) { interrupted = append(interrupted, sessionID) })

	pause.bind(coordinator.Session{ID: "s3", Kind: coordinator.SessionBig, Duration: 5 * time.Minute})
	pause.requestInterrupt()

	assert.Empty(t, interrupted)
	assert.True(t, pause.confirming)

	pause.interrupt("s3")
	assert.Equal(t, []string{"s3"}, interrupted)
}

func TestInterruptIgnoresStaleSession(t *testing.T) {
	app := test.NewTempApp(t)
	var interrupted []string
	pause := New(app, DefaultConfig(), func(sessionID string) { interrupted = append(interrupted, sessionID) })

	pause.bind(coordinator.Session{ID: "new", Kind: coordinator.SessionBig, Duration: time.Minute})
	pause.interrupt("old")

	assert.Empty(t, interrupted)
}

func TestWarningButtons(t *testing.T) {
	app := test.NewTempApp(t)
	var postponed, started int
	warning := NewWarningWindow(app, 5*time.Minute, WarningActions{
		OnPostpone: func() { postponed++ },
		OnStartNow: func() { started++ },
	})

	assert.Equal(t, "Postpone 5 min", warning.postponeButton.Text)

	test.Tap(warning.postponeButton)
	test.Tap(warning.startButton)

	assert.Equal(t, 1, postponed)
	assert.Equal(t, 1, started)
	assert.False(t, warning.Visible())
}

func TestWarningCountdownText(t *testing.T) {
	app := test.NewTempApp(t)
	warning := NewWarningWindow(app, time.Minute, WarningActions{})

	warning.setCountdown(30 * time.Second)

	assert.Equal(t, "Big break in 00:30", warning.countdownLabel.Text)
}
