package activity

import (
	"errors"
	"sync"
	"time"

	"mindfulpause/internal/core/clock"

	"github.com/rs/zerolog"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleProvider reports the duration since the last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// Config contains tracker tuning.
type Config struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Minute,
		PollInterval: 5 * time.Second,
	}
}

// Handlers receive activity edges.
type Handlers struct {
	OnInactive func()
	OnActive   func()
}

// Tracker polls an IdleProvider and reports edge-triggered transitions
// between the Active and Inactive states.
type Tracker struct {
	mu             sync.Mutex
	clock          clock.Clock
	provider       IdleProvider
	config         Config
	handlers       Handlers
	enabled        bool
	inactive       bool
	timer          clock.Timer
	generation     uint64
	warnedFailures bool
	logger         zerolog.Logger
}

// NewTracker creates a disabled tracker.
func NewTracker(clk clock.Clock, provider IdleProvider, config Config, handlers Handlers, logger zerolog.Logger) *Tracker {
	defaults := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	return &Tracker{
		clock:    clk,
		provider: provider,
		config:   config,
		handlers: handlers,
		logger:   logger.With().Str("component", "activity").Logger(),
	}
}

// Enable (re)starts polling from a clean Active state.
func (tracker *Tracker) Enable() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.enabled = true
	tracker.inactive = false
	tracker.armLocked()
}

// Disable stops polling and resets the state to Active.
func (tracker *Tracker) Disable() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.enabled = false
	tracker.inactive = false
	tracker.cancelLocked()
}

// SetEnabled enables or disables polling.
func (tracker *Tracker) SetEnabled(enabled bool) {
	if enabled {
		tracker.Enable()
		return
	}
	tracker.Disable()
}

// Enabled reports whether polling is running.
func (tracker *Tracker) Enabled() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.enabled
}

// Inactive reports whether the last poll saw the user as away.
func (tracker *Tracker) Inactive() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.inactive
}

func (tracker *Tracker) poll(generation uint64) {
	tracker.mu.Lock()
	if !tracker.enabled || generation != tracker.generation {
		tracker.mu.Unlock()
		return
	}
	tracker.timer = nil
	idle := tracker.measureLocked()

	var handler func()
	switch {
	case idle > tracker.config.Timeout && !tracker.inactive:
		tracker.inactive = true
		handler = tracker.handlers.OnInactive
		tracker.logger.Info().Dur("idle", idle).Msg("User became inactive")
	case idle <= tracker.config.Timeout && tracker.inactive:
		tracker.inactive = false
		handler = tracker.handlers.OnActive
		tracker.logger.Info().Msg("User became active")
	}
	tracker.armLocked()
	tracker.mu.Unlock()

	if handler != nil {
		handler()
	}
}

// measureLocked fails open: any error counts as zero idle time.
func (tracker *Tracker) measureLocked() time.Duration {
	if tracker.provider == nil {
		return 0
	}
	idle, err := tracker.provider.IdleDuration()
	if err != nil {
		if !tracker.warnedFailures {
			tracker.warnedFailures = true
			tracker.logger.Warn().
				Err(err).
				Bool("unsupported", errors.Is(err, ErrIdleUnsupported)).
				Msg("Idle measurement failed, treating user as present")
		}
		return 0
	}
	if idle < 0 {
		return 0
	}
	return idle
}

func (tracker *Tracker) armLocked() {
	tracker.cancelLocked()
	generation := tracker.generation
	tracker.timer = tracker.clock.AfterFunc(tracker.config.PollInterval, func() {
		tracker.poll(generation)
	})
}

func (tracker *Tracker) cancelLocked() {
	tracker.generation++
	if tracker.timer != nil {
		tracker.timer.Stop()
		tracker.timer = nil
	}
}
