package timekeeper

import (
	"sync"
	"time"

	"mindfulpause/internal/core/clock"

	"github.com/rs/zerolog"
)

// TimeKeeper owns the big-break, short-pause and warning schedules.
// The warning schedule is derived: it fires a lead time before the big break.
type TimeKeeper struct {
	mu          sync.Mutex
	clock       clock.Clock
	handlers    Handlers
	bigBreak    *Schedule
	shortPause  *Schedule
	warning     *Schedule
	warningLead time.Duration
	logger      zerolog.Logger
}

// New creates a TimeKeeper with every schedule stopped.
func New(clk clock.Clock, handlers Handlers, logger zerolog.Logger) *TimeKeeper {
	keeper := &TimeKeeper{
		clock:    clk,
		handlers: handlers,
		logger:   logger.With().Str("component", "timekeeper").Logger(),
	}
	keeper.bigBreak = keeper.newSchedule(KindBigBreak)
	keeper.shortPause = keeper.newSchedule(KindShortPause)
	keeper.warning = keeper.newSchedule(KindWarning)
	return keeper
}

// SetWarningLead changes how long before the big break the warning fires.
// A non-positive lead disables the warning schedule. When the big break is
// running or paused the warning is recomputed from its current remaining time.
func (keeper *TimeKeeper) SetWarningLead(lead time.Duration) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if lead < 0 {
		lead = 0
	}
	keeper.warningLead = lead

	remaining, ok := keeper.bigBreak.Remaining()
	switch {
	case !ok:
		return
	case keeper.bigBreak.Paused():
		keeper.warning.Stop()
		if offset := remaining - lead; lead > 0 && offset > 0 {
			keeper.warning.suspend(offset)
		}
	default:
		keeper.restartWarningLocked(remaining)
	}
}

// StartBigBreak (re)starts the big-break countdown and its warning.
func (keeper *TimeKeeper) StartBigBreak(interval time.Duration) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if interval <= 0 {
		return
	}
	keeper.bigBreak.Start(interval)
	keeper.restartWarningLocked(interval)
	keeper.logger.Debug().Dur("interval", interval).Dur("warning_lead", keeper.warningLead).Msg("Big break scheduled")
}

// StartShortPause (re)starts the short-pause countdown.
func (keeper *TimeKeeper) StartShortPause(interval time.Duration) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if interval <= 0 {
		return
	}
	keeper.shortPause.Start(interval)
	keeper.logger.Debug().Dur("interval", interval).Msg("Short pause scheduled")
}

// StopBigBreak stops the big break together with its warning.
func (keeper *TimeKeeper) StopBigBreak() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.bigBreak.Stop()
	keeper.warning.Stop()
}

// StopShortPause stops the short-pause countdown.
func (keeper *TimeKeeper) StopShortPause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.shortPause.Stop()
}

// Postpone replaces the big break's remaining time with by and derives the
// warning from that new remaining time. The configured interval is kept.
func (keeper *TimeKeeper) Postpone(by time.Duration) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if by <= 0 {
		return
	}
	keeper.bigBreak.runFor(by)
	keeper.restartWarningLocked(by)
	keeper.logger.Info().Dur("by", by).Msg("Big break postponed")
}

// PauseAll freezes every running schedule, keeping each remaining time.
func (keeper *TimeKeeper) PauseAll() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.bigBreak.Pause()
	keeper.warning.Pause()
	keeper.shortPause.Pause()
}

// ResumeAll restarts every paused schedule from its own saved remaining time.
func (keeper *TimeKeeper) ResumeAll() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.bigBreak.Resume()
	keeper.warning.Resume()
	keeper.shortPause.Resume()
}

// ResumeBigBreak resumes only the big break and its warning.
func (keeper *TimeKeeper) ResumeBigBreak() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.bigBreak.Resume()
	keeper.warning.Resume()
}

// StopAll stops every schedule.
func (keeper *TimeKeeper) StopAll() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.bigBreak.Stop()
	keeper.warning.Stop()
	keeper.shortPause.Stop()
}

// ResetBigBreak restarts the big break from its last configured interval.
func (keeper *TimeKeeper) ResetBigBreak() {
	keeper.mu.Lock()
	interval := keeper.bigBreak.Interval()
	keeper.mu.Unlock()
	keeper.StartBigBreak(interval)
}

// ResetShortPause restarts the short pause from its last configured interval.
func (keeper *TimeKeeper) ResetShortPause() {
	keeper.mu.Lock()
	interval := keeper.shortPause.Interval()
	keeper.mu.Unlock()
	keeper.StartShortPause(interval)
}

// Snapshot returns the state of every schedule.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return Snapshot{
		BigBreak:    keeper.bigBreak.state(),
		ShortPause:  keeper.shortPause.state(),
		Warning:     keeper.warning.state(),
		WarningLead: keeper.warningLead,
	}
}

func (keeper *TimeKeeper) newSchedule(kind Kind) *Schedule {
	schedule := newSchedule(kind, keeper.clock)
	schedule.notify = func(generation uint64) {
		keeper.handleFire(schedule, generation)
	}
	return schedule
}

func (keeper *TimeKeeper) handleFire(schedule *Schedule, generation uint64) {
	keeper.mu.Lock()
	if !schedule.expire(generation) {
		keeper.mu.Unlock()
		return
	}
	var handler func()
	switch schedule.kind {
	case KindBigBreak:
		// A warning must never fire after its break has started.
		keeper.warning.Stop()
		handler = keeper.handlers.OnBigBreak
	case KindShortPause:
		handler = keeper.handlers.OnShortPause
	case KindWarning:
		handler = keeper.handlers.OnWarning
	}
	keeper.mu.Unlock()

	keeper.logger.Debug().Stringer("schedule", schedule.kind).Msg("Schedule fired")
	if handler != nil {
		handler()
	}
}

func (keeper *TimeKeeper) restartWarningLocked(bigBreakRemaining time.Duration) {
	offset := bigBreakRemaining - keeper.warningLead
	if keeper.warningLead <= 0 || offset <= 0 {
		keeper.warning.Stop()
		return
	}
	keeper.warning.Start(offset)
}
