package timekeeper

import (
	"time"

	"mindfulpause/internal/core/clock"
)

// Schedule is a one-shot countdown that can be paused and resumed.
// It is running (active), paused with a saved remaining time, or stopped;
// never two of these at once. A Schedule is not safe for concurrent use.
type Schedule struct {
	kind            Kind
	clock           clock.Clock
	interval        time.Duration
	deadline        time.Time
	active          bool
	paused          bool
	pausedRemaining time.Duration
	timer           clock.Timer
	generation      uint64
	notify          func(generation uint64)
}

// NewSchedule creates a stopped schedule that calls onFire when it reaches zero.
func NewSchedule(kind Kind, clk clock.Clock, onFire func()) *Schedule {
	schedule := newSchedule(kind, clk)
	schedule.notify = func(generation uint64) {
		if schedule.expire(generation) && onFire != nil {
			onFire()
		}
	}
	return schedule
}

func newSchedule(kind Kind, clk clock.Clock) *Schedule {
	return &Schedule{kind: kind, clock: clk}
}

// Kind returns the schedule identity.
func (schedule *Schedule) Kind() Kind {
	return schedule.kind
}

// Start counts down from interval, replacing any remaining time.
// Non-positive intervals are ignored.
func (schedule *Schedule) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}
	schedule.interval = interval
	schedule.runFor(interval)
}

// Stop halts the countdown and forgets the remaining time.
func (schedule *Schedule) Stop() {
	schedule.cancelTimer()
	schedule.active = false
	schedule.paused = false
	schedule.pausedRemaining = 0
	schedule.deadline = time.Time{}
}

// Pause captures the remaining time and halts the countdown. No-op unless running.
func (schedule *Schedule) Pause() {
	if !schedule.active {
		return
	}
	remaining := schedule.deadline.Sub(schedule.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	schedule.cancelTimer()
	schedule.active = false
	schedule.paused = true
	schedule.pausedRemaining = remaining
	schedule.deadline = time.Time{}
}

// Resume restarts the countdown from the captured remaining time. No-op unless paused.
func (schedule *Schedule) Resume() {
	if !schedule.paused {
		return
	}
	schedule.runFor(schedule.pausedRemaining)
}

// Remaining reports the time left and whether the schedule is running or paused.
func (schedule *Schedule) Remaining() (time.Duration, bool) {
	switch {
	case schedule.active:
		remaining := schedule.deadline.Sub(schedule.clock.Now())
		if remaining < 0 {
			remaining = 0
		}
		return remaining, true
	case schedule.paused:
		return schedule.pausedRemaining, true
	default:
		return 0, false
	}
}

// Active reports whether the countdown is running.
func (schedule *Schedule) Active() bool {
	return schedule.active
}

// Paused reports whether a remaining time is saved.
func (schedule *Schedule) Paused() bool {
	return schedule.paused
}

// Interval returns the last interval the schedule was started with.
func (schedule *Schedule) Interval() time.Duration {
	return schedule.interval
}

func (schedule *Schedule) state() ScheduleState {
	remaining, _ := schedule.Remaining()
	return ScheduleState{
		Kind:      schedule.kind,
		Interval:  schedule.interval,
		Remaining: remaining,
		Active:    schedule.active,
		Paused:    schedule.paused,
	}
}

// runFor arms the countdown without touching the configured interval.
func (schedule *Schedule) runFor(remaining time.Duration) {
	if remaining < 0 {
		remaining = 0
	}
	schedule.cancelTimer()
	schedule.active = true
	schedule.paused = false
	schedule.pausedRemaining = 0
	schedule.deadline = schedule.clock.Now().Add(remaining)

	generation := schedule.generation
	notify := schedule.notify
	schedule.timer = schedule.clock.AfterFunc(remaining, func() {
		notify(generation)
	})
}

// suspend stores a paused countdown of remaining without arming a timer.
func (schedule *Schedule) suspend(remaining time.Duration) {
	schedule.cancelTimer()
	schedule.active = false
	schedule.paused = true
	schedule.pausedRemaining = remaining
	schedule.deadline = time.Time{}
}

// expire marks the schedule stopped when generation is still current.
// A stale generation means the fire was dispatched before a stop, pause or restart.
func (schedule *Schedule) expire(generation uint64) bool {
	if generation != schedule.generation || !schedule.active {
		return false
	}
	schedule.generation++
	schedule.timer = nil
	schedule.active = false
	schedule.deadline = time.Time{}
	return true
}

func (schedule *Schedule) cancelTimer() {
	schedule.generation++
	if schedule.timer != nil {
		schedule.timer.Stop()
		schedule.timer = nil
	}
}
