package coordinator

import (
	"time"

	"mindfulpause/internal/core/clock"
)

// deadline is a cancellable one-shot timer. A callback that was already
// dispatched when cancel ran is dropped through the generation check.
type deadline struct {
	clock      clock.Clock
	timer      clock.Timer
	generation uint64
	at         time.Time
}

func newDeadline(clk clock.Clock) *deadline {
	return &deadline{clock: clk}
}

func (pending *deadline) arm(delay time.Duration, callback func()) {
	pending.cancel()
	generation := pending.generation
	pending.at = pending.clock.Now().Add(delay)
	pending.timer = pending.clock.AfterFunc(delay, func() {
		if generation != pending.generation {
			return
		}
		pending.timer = nil
		pending.at = time.Time{}
		callback()
	})
}

func (pending *deadline) cancel() {
	pending.generation++
	pending.at = time.Time{}
	if pending.timer != nil {
		pending.timer.Stop()
		pending.timer = nil
	}
}

func (pending *deadline) armed() bool {
	return pending.timer != nil
}
