package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"mindfulpause/internal/core/clock"

	"github.com/rs/zerolog"
)

// ErrStopped is returned by Run when the loop was already stopped.
var ErrStopped = errors.New("dispatch loop stopped")

// Loop serialises every state transition of the application onto one goroutine.
// Timer callbacks, tracker polls and UI actions are posted here and run one at a time.
type Loop struct {
	mu      sync.Mutex
	tasks   chan func()
	done    chan struct{}
	stopped bool
	running bool
	logger  zerolog.Logger
}

// New creates a loop with a task queue of the given size.
func New(logger zerolog.Logger, buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		tasks:  make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: logger.With().Str("component", "dispatch").Logger(),
	}
}

// Post queues task for execution. It returns false once the loop has stopped.
func (loop *Loop) Post(task func()) bool {
	if task == nil {
		return false
	}
	select {
	case <-loop.done:
		return false
	default:
	}
	select {
	case loop.tasks <- task:
		return true
	case <-loop.done:
		return false
	}
}

// Call posts task and waits for it to finish. It reports whether the task ran.
func (loop *Loop) Call(task func()) bool {
	finished := make(chan struct{})
	if !loop.Post(func() {
		defer close(finished)
		task()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-loop.done:
		return false
	}
}

// Run executes posted tasks until ctx is cancelled or Stop is called.
func (loop *Loop) Run(ctx context.Context) error {
	loop.mu.Lock()
	if loop.stopped {
		loop.mu.Unlock()
		return ErrStopped
	}
	loop.running = true
	loop.mu.Unlock()

	defer loop.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-loop.done:
			return nil
		case task := <-loop.tasks:
			loop.execute(task)
		}
	}
}

// Stop ends Run and rejects further posts. Queued tasks are dropped.
func (loop *Loop) Stop() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if loop.stopped {
		return
	}
	loop.stopped = true
	loop.running = false
	close(loop.done)
}

// Done is closed once the loop stops.
func (loop *Loop) Done() <-chan struct{} {
	return loop.done
}

// Clock wraps base so that timer callbacks are dispatched onto the loop.
func (loop *Loop) Clock(base clock.Clock) clock.Clock {
	return loopClock{base: base, loop: loop}
}

func (loop *Loop) execute(task func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			loop.logger.Error().Interface("panic", recovered).Msg("Dispatched task panicked")
		}
	}()
	task()
}

type loopClock struct {
	base clock.Clock
	loop *Loop
}

func (wrapped loopClock) Now() time.Time {
	return wrapped.base.Now()
}

func (wrapped loopClock) AfterFunc(delay time.Duration, callback func()) clock.Timer {
	return wrapped.base.AfterFunc(delay, func() {
		wrapped.loop.Post(callback)
	})
}
