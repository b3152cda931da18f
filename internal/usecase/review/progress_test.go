package review

import (
	"testing"
	"time"
)

func TestProgress_MonotonicAndBounded(t *testing.T) {
	sim := NewProgressSimulator(time.Millisecond, nil)
	sim.Start()
	defer sim.Cancel()

	last := -1
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case <-deadline:
			if last < 0 {
				t.Fatal("simulator never advanced")
			}
			return
		default:
		}
		snap := sim.Snapshot()
		if snap.Percent < last {
			t.Fatalf("progress went backwards: %d -> %d", last, snap.Percent)
		}
		if snap.Percent > progressCeiling {
			t.Fatalf("progress %d exceeded ceiling before completion", snap.Percent)
		}
		last = snap.Percent
		time.Sleep(2 * time.Millisecond)
	}
}

func TestProgress_TickAfterCancelIsNoOp(t *testing.T) {
	sim := NewProgressSimulator(time.Hour, nil)
	sim.Start()

	// Advance a few ticks by hand, then cancel and deliver one more tick to
	// model a tick that was already scheduled when the operation settled.
	sim.tick()
	sim.tick()
	before := sim.Snapshot().Percent

	sim.Cancel()
	sim.tick()

	after := sim.Snapshot().Percent
	if after != before {
		t.Fatalf("tick after cancel moved progress: %d -> %d", before, after)
	}
}

func TestProgress_CancelIsIdempotent(t *testing.T) {
	sim := NewProgressSimulator(time.Hour, nil)
	sim.Start()
	sim.Cancel()
	sim.Cancel()
}

func TestProgress_CompleteSetsTerminalState(t *testing.T) {
	sim := NewProgressSimulator(time.Hour, nil)
	sim.Start()
	sim.Complete()

	snap := sim.Snapshot()
	if snap.Percent != 100 || snap.State != StateCompleted || snap.Phase != PhaseDone {
		t.Fatalf("unexpected terminal snapshot: %+v", snap)
	}

	// A straggler tick must not disturb the terminal state
	sim.tick()
	if got := sim.Snapshot().Percent; got != 100 {
		t.Fatalf("terminal value disturbed: %d", got)
	}
}

func TestProgress_FailKeepsValueBelowCeiling(t *testing.T) {
	sim := NewProgressSimulator(time.Hour, nil)
	sim.Start()
	sim.tick()
	sim.Fail()

	snap := sim.Snapshot()
	if snap.State != StateFailed || snap.Phase != PhaseFailed {
		t.Fatalf("unexpected failure snapshot: %+v", snap)
	}
	if snap.Percent > progressCeiling {
		t.Fatalf("failed run exceeded ceiling: %d", snap.Percent)
	}
}

func TestProgress_PhaseThresholds(t *testing.T) {
	cases := []struct {
		value float64
		phase string
	}{
		{0, PhaseTranscribing},
		{29, PhaseTranscribing},
		{30, PhaseSummarizing},
		{59, PhaseSummarizing},
		{60, PhaseExtracting},
		{90, PhaseExtracting},
	}
	for _, tc := range cases {
		sim := NewProgressSimulator(time.Hour, nil)
		sim.value = tc.value
		if got := sim.Snapshot().Phase; got != tc.phase {
			t.Fatalf("value %.0f: expected phase %q, got %q", tc.value, tc.phase, got)
		}
	}
}
