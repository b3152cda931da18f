package review

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase labels shown while an analysis is in flight
const (
	PhaseTranscribing = "transcribing audio"
	PhaseSummarizing  = "generating summary"
	PhaseExtracting   = "extracting action items"
	PhaseDone         = "analysis complete"
	PhaseFailed       = "analysis failed"
)

// Simulator states
const (
	StateIdle      = "idle"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

const (
	progressCeiling = 90
	progressMaxStep = 5
)

// ProgressSnapshot is one observation of the simulated progress
type ProgressSnapshot struct {
	Percent int    `json:"percent"`
	Phase   string `json:"phase"`
	State   string `json:"state"`
}

// ProgressSimulator approximates the duration of an analysis whose true
// progress is unobservable. The value starts at 0 and grows by a random
// bounded step per tick, clamped below 100 so it never looks finished before
// the real call settles. The caller cancels it the moment the call settles
// and then sets the terminal state itself.
type ProgressSimulator struct {
	mu        sync.Mutex
	interval  time.Duration
	value     float64
	state     string
	cancelled bool

	stop     chan struct{}
	stopOnce sync.Once
	rng      *rand.Rand
	logger   *zap.Logger
}

// NewProgressSimulator creates a simulator ticking at the given interval
func NewProgressSimulator(interval time.Duration, logger *zap.Logger) *ProgressSimulator {
	return &ProgressSimulator{
		interval: interval,
		state:    StateRunning,
		stop:     make(chan struct{}),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logger,
	}
}

// Start launches the tick loop
func (p *ProgressSimulator) Start() {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()
}

// tick advances the simulated value. The cancelled check runs under the same
// lock Cancel takes, so a tick already scheduled when the operation settles
// becomes a no-op instead of racing the terminal state.
func (p *ProgressSimulator) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelled {
		return
	}
	p.value = math.Min(p.value+p.rng.Float64()*progressMaxStep, progressCeiling)
}

// Cancel silences the simulator. Safe to call more than once; every tick
// after this call is suppressed, including one already in flight.
func (p *ProgressSimulator) Cancel() {
	p.mu.Lock()
	p.cancelled = true
	p.mu.Unlock()
	p.stopOnce.Do(func() { close(p.stop) })
}

// Complete cancels the simulator and pins the terminal success state
func (p *ProgressSimulator) Complete() {
	p.Cancel()
	p.mu.Lock()
	p.value = 100
	p.state = StateCompleted
	p.mu.Unlock()
}

// Fail cancels the simulator and pins the terminal failure state
func (p *ProgressSimulator) Fail() {
	p.Cancel()
	p.mu.Lock()
	p.state = StateFailed
	p.mu.Unlock()
	if p.logger != nil {
		p.logger.Warn("progress simulator stopped on failure")
	}
}

// Snapshot returns the current value, phase label and state
func (p *ProgressSimulator) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ProgressSnapshot{
		Percent: int(p.value),
		Phase:   p.phaseLocked(),
		State:   p.state,
	}
}

func (p *ProgressSimulator) phaseLocked() string {
	switch {
	case p.state == StateFailed:
		return PhaseFailed
	case p.state == StateCompleted:
		return PhaseDone
	case p.value < 30:
		return PhaseTranscribing
	case p.value < 60:
		return PhaseSummarizing
	default:
		return PhaseExtracting
	}
}
