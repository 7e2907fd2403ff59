package clock

import (
	"sync"
	"time"
)

// Manual is a deterministic clock that only moves when told to.
// Due timers fire synchronously on the goroutine calling Advance or Set,
// ordered by deadline and then by creation order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	seq      uint64
	callback func()
}

// NewManual returns a manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current time.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// AfterFunc registers callback to run once the clock reaches now+delay.
func (manual *Manual) AfterFunc(delay time.Duration, callback func()) Timer {
	if delay < 0 {
		delay = 0
	}
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.seq++
	timer := &manualTimer{
		clock:    manual,
		deadline: manual.now.Add(delay),
		seq:      manual.seq,
		callback: callback,
	}
	manual.timers = append(manual.timers, timer)
	return timer
}

// Advance moves the clock forward by delta, firing every timer that becomes due.
func (manual *Manual) Advance(delta time.Duration) {
	manual.Set(manual.Now().Add(delta))
}

// Set moves the clock to target, firing every timer due at or before it.
// Moving backwards only fires timers that are already overdue.
func (manual *Manual) Set(target time.Time) {
	for {
		manual.mu.Lock()
		next := manual.nextDueLocked(target)
		if next == nil {
			if target.After(manual.now) {
				manual.now = target
			}
			manual.mu.Unlock()
			return
		}
		manual.removeLocked(next)
		if next.deadline.After(manual.now) {
			manual.now = next.deadline
		}
		manual.mu.Unlock()

		next.callback()
	}
}

// Pending reports how many timers are armed.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.timers)
}

func (manual *Manual) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, timer := range manual.timers {
		if timer.deadline.After(target) {
			continue
		}
		if next == nil ||
			timer.deadline.Before(next.deadline) ||
			(timer.deadline.Equal(next.deadline) && timer.seq < next.seq) {
			next = timer
		}
	}
	return next
}

func (manual *Manual) removeLocked(target *manualTimer) bool {
	for index, timer := range manual.timers {
		if timer == target {
			manual.timers = append(manual.timers[:index], manual.timers[index+1:]...)
			return true
		}
	}
	return false
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (timer *manualTimer) Stop() bool {
	timer.clock.mu.Lock()
	defer timer.clock.mu.Unlock()
	return timer.clock.removeLocked(timer)
}
