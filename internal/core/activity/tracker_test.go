package activity

import (
	"errors"
	"testing"
	"time"

	"mindfulpause/internal/core/clock"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeIdle struct {
	idle  time.Duration
	err   error
	calls int
}

func (provider *fakeIdle) IdleDuration() (time.Duration, error) {
	provider.calls++
	return provider.idle, provider.err
}

type edgeCounter struct {
	inactive int
	active   int
}

func (counter *edgeCounter) handlers() Handlers {
	return Handlers{
		OnInactive: func() { counter.inactive++ },
		OnActive:   func() { counter.active++ },
	}
}

func newTestTracker(provider IdleProvider) (*Tracker, *clock.Manual, *edgeCounter) {
	manual := clock.NewManual(epoch)
	counter := &edgeCounter{}
	tracker := NewTracker(manual, provider, Config{Timeout: time.Minute, PollInterval: 5 * time.Second}, counter.handlers(), zerolog.Nop())
	return tracker, manual, counter
}

func TestTrackerEmitsInactivityOnce(t *testing.T) {
	provider := &fakeIdle{idle: 10 * time.Second}
	tracker, manual, counter := newTestTracker(provider)
	tracker.Enable()

	manual.Advance(30 * time.Second)
	assert.Zero(t, counter.inactive)

	provider.idle = time.Minute + time.Second
	manual.Advance(5 * time.Minute)

	assert.Equal(t, 1, counter.inactive)
	assert.Zero(t, counter.active)
	assert.True(t, tracker.Inactive())
}

func TestTrackerThresholdIsExclusive(t *testing.T) {
	provider := &fakeIdle{idle: time.Minute}
	tracker, manual, counter := newTestTracker(provider)
	tracker.Enable()

	manual.Advance(time.Minute)

	assert.Zero(t, counter.inactive)
}

func TestTrackerEmitsActivityOnceAfterInactive(t *testing.T) {
	provider := &fakeIdle{idle: 2 * time.Minute}
	tracker, manual, counter := newTestTracker(provider)
	tracker.Enable()
	manual.Advance(5 * time.Second)

	provider.idle = time.Minute
	manual.Advance(time.Minute)

	assert.Equal(t, 1, counter.inactive)
	assert.Equal(t, 1, counter.active)
	assert.False(t, tracker.Inactive())
}

func TestTrackerPollsOnCadence(t *testing.T) {
	provider := &fakeIdle{}
	tracker, manual, _ := newTestTracker(provider)
	tracker.Enable()

	manual.Advance(5*time.Second - time.Nanosecond)
	assert.Zero(t, provider.calls)

	manual.Advance(time.Nanosecond)
	assert.Equal(t, 1, provider.calls)

	manual.Advance(time.Minute)
	assert.Equal(t, 13, provider.calls)
}

func TestTrackerFailsOpen(t *testing.T) {
	for _, err := range []error{ErrIdleUnsupported, errors.New("xprintidle: exit status 1")} {
		provider := &fakeIdle{idle: time.Hour, err: err}
		tracker, manual, counter := newTestTracker(provider)
		tracker.Enable()

		manual.Advance(time.Minute)

		assert.Zero(t, counter.inactive)
		assert.False(t, tracker.Inactive())
	}
}

func TestTrackerErrorWhileInactiveCountsAsActivity(t *testing.T) {
	provider := &fakeIdle{idle: time.Hour}
	tracker, manual, counter := newTestTracker(provider)
	tracker.Enable()
	manual.Advance(5 * time.Second)

	provider.err = errors.New("dbus: connection closed")
	manual.Advance(5 * time.Second)

	assert.Equal(t, 1, counter.active)
	assert.False(t, tracker.Inactive())
}

func TestTrackerDisableResetsState(t *testing.T) {
	provider := &fakeIdle{idle: time.Hour}
	tracker, manual, counter := newTestTracker(provider)
	tracker.Enable()
	manual.Advance(5 * time.Second)
	assert.True(t, tracker.Inactive())

	tracker.Disable()
	assert.False(t, tracker.Inactive())
	assert.False(t, tracker.Enabled())

	calls := provider.calls
	manual.Advance(time.Hour)
	assert.Equal(t, calls, provider.calls)

	// Re-enabling while the user is back must not emit a spurious activity edge.
	provider.idle = 0
	tracker.Enable()
	manual.Advance(time.Minute)
	assert.Zero(t, counter.active)
	assert.Equal(t, 1, counter.inactive)
}

func TestTrackerSetEnabled(t *testing.T) {
	provider := &fakeIdle{}
	tracker, manual, _ := newTestTracker(provider)

	tracker.SetEnabled(false)
	manual.Advance(time.Minute)
	assert.Zero(t, provider.calls)

	tracker.SetEnabled(true)
	assert.True(t, tracker.Enabled())
	manual.Advance(5 * time.Second)
	assert.Equal(t, 1, provider.calls)
}

func TestTrackerHandlerMayDisable(t *testing.T) {
	provider := &fakeIdle{idle: time.Hour}
	manual := clock.NewManual(epoch)
	var tracker *Tracker
	tracker = NewTracker(manual, provider, Config{Timeout: time.Minute, PollInterval: 5 * time.Second}, Handlers{
		OnInactive: func() { tracker.Disable() },
	}, zerolog.Nop())
	tracker.Enable()

	manual.Advance(time.Minute)

	assert.Equal(t, 1, provider.calls)
	assert.Zero(t, manual.Pending())
}

func TestNewTrackerAppliesDefaults(t *testing.T) {
	tracker := NewTracker(clock.NewManual(epoch), &fakeIdle{}, Config{}, Handlers{}, zerolog.Nop())

	assert.Equal(t, DefaultConfig(), tracker.config)
}
