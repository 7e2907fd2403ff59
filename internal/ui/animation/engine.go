package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Phase is one step of the breathing cue.
type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHold
	PhaseExhale
	PhaseRest
)

// Label returns the text shown for the phase.
func (phase Phase) Label() string {
	switch phase {
	case PhaseInhale:
		return "Breathe in"
	case PhaseHold:
		return "Hold"
	case PhaseExhale:
		return "Breathe out"
	case PhaseRest:
		return "Rest"
	default:
		return ""
	}
}

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains the breathing cue timing.
type Config struct {
	Inhale Range
	Hold   Range
	Exhale Range
	Rest   Range
}

// Engine cycles through breathing phases while a pause overlay is open.
type Engine struct {
	mu       sync.Mutex
	config   Config
	onPhase  func(Phase, time.Duration)
	cancel   context.CancelFunc
	rng      *rand.Rand
	sequence []Phase
}

// New creates a breathing cue engine. onPhase is called from the engine's
// goroutine with the phase and how long it lasts.
func New(config Config, onPhase func(Phase, time.Duration)) *Engine {
	return &Engine{
		config:   config,
		onPhase:  onPhase,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sequence: []Phase{PhaseInhale, PhaseHold, PhaseExhale, PhaseRest},
	}
}

// Start begins cycling phases until ctx is done or Stop is called.
// A running cycle is replaced.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.mu.Unlock()

	go engine.run(runCtx)
}

// Stop terminates any active cycle.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) run(ctx context.Context) {
	for {
		for _, phase := range engine.sequence {
			duration := engine.duration(phase)
			if duration <= 0 {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			if engine.onPhase != nil {
				engine.onPhase(phase, duration)
			}
			if !sleepWithContext(ctx, duration) {
				return
			}
		}
	}
}

func (engine *Engine) duration(phase Phase) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	switch phase {
	case PhaseInhale:
		return engine.config.Inhale.Random(engine.rng)
	case PhaseHold:
		return engine.config.Hold.Random(engine.rng)
	case PhaseExhale:
		return engine.config.Exhale.Random(engine.rng)
	default:
		return engine.config.Rest.Random(engine.rng)
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
