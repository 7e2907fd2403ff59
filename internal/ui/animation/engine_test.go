package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type phaseRecorder struct {
	mu     sync.Mutex
	phases []Phase
}

func (recorder *phaseRecorder) record(phase Phase, _ time.Duration) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.phases = append(recorder.phases, phase)
}

func (recorder *phaseRecorder) snapshot() []Phase {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]Phase(nil), recorder.phases...)
}

func TestRangeRandomStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 100; i++ {
		sample := value.Random(rng)
		assert.GreaterOrEqual(t, sample, time.Second)
		assert.Less(t, sample, 2*time.Second)
	}

	assert.Equal(t, 3*time.Second, Range{Min: 3 * time.Second, Max: time.Second}.Random(rng))
}

func TestEngineCyclesPhasesInOrder(t *testing.T) {
	recorder := &phaseRecorder{}
	step := Range{Min: 5 * time.Millisecond, Max: 5 * time.Millisecond}
	engine := New(Config{Inhale: step, Hold: step, Exhale: step, Rest: step}, recorder.record)

	engine.Start(context.Background())
	defer engine.Stop()

	assert.Eventually(t, func() bool { return len(recorder.snapshot()) >= 5 }, 2*time.Second, 5*time.Millisecond)
	phases := recorder.snapshot()
	assert.Equal(t, []Phase{PhaseInhale, PhaseHold, PhaseExhale, PhaseRest, PhaseInhale}, phases[:5])
}

func TestEngineSkipsZeroLengthPhases(t *testing.T) {
	recorder := &phaseRecorder{}
	step := Range{Min: 5 * time.Millisecond, Max: 5 * time.Millisecond}
	engine := New(Config{Inhale: step, Exhale: step}, recorder.record)

	engine.Start(context.Background())
	defer engine.Stop()

	assert.Eventually(t, func() bool { return len(recorder.snapshot()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []Phase{PhaseInhale, PhaseExhale, PhaseInhale}, recorder.snapshot()[:3])
}

func TestEngineStopHaltsCallbacks(t *testing.T) {
	recorder := &phaseRecorder{}
	step := Range{Min: 20 * time.Millisecond, Max: 20 * time.Millisecond}
	engine := New(Config{Inhale: step, Hold: step, Exhale: step, Rest: step}, recorder.record)

	engine.Start(context.Background())
	assert.Eventually(t, func() bool { return len(recorder.snapshot()) >= 1 }, time.Second, 5*time.Millisecond)
	engine.Stop()
	count := len(recorder.snapshot())

	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, len(recorder.snapshot()), count+1)
}

func TestPhaseLabels(t *testing.T) {
	assert.Equal(t, "Breathe in", PhaseInhale.Label())
	assert.Equal(t, "Breathe out", PhaseExhale.Label())
	assert.Empty(t, Phase(42).Label())
}
