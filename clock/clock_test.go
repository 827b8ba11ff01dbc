package clock

import (
	"math"
	"testing"
)

func TestFixedStep(t *testing.T) {
	c := New(NewFixed(0.5))

	first := c.Tick()
	if first.Elapsed != 0 || first.Delta != 0 || first.Frame != 1 {
		t.Errorf("expected first tick (0, 0, 1), got %+v", first)
	}

	for i := 2; i <= 5; i++ {
		tick := c.Tick()
		wantElapsed := float32(i-1) * 0.5
		if math.Abs(float64(tick.Elapsed-wantElapsed)) > 1e-6 {
			t.Errorf("tick %d: expected elapsed %f, got %f", i, wantElapsed, tick.Elapsed)
		}
		if tick.Delta != 0.5 {
			t.Errorf("tick %d: expected delta 0.5, got %f", i, tick.Delta)
		}
		if tick.Frame != uint64(i) {
			t.Errorf("tick %d: expected frame %d, got %d", i, i, tick.Frame)
		}
	}
}

func TestStartsAtFirstSample(t *testing.T) {
	c := New(SourceFunc(func() float64 { return 100 }))
	tick := c.Tick()
	if tick.Elapsed != 0 {
		t.Errorf("elapsed should be relative to the first sample, got %f", tick.Elapsed)
	}
}

func TestBackwardsSourceIsMonotonic(t *testing.T) {
	samples := []float64{1, 2, 1.5, 3}
	i := 0
	c := New(SourceFunc(func() float64 {
		v := samples[i]
		i++
		return v
	}))

	var prev float32
	deltas := make([]float32, 0, len(samples))
	for range samples {
		tick := c.Tick()
		if tick.Elapsed < prev {
			t.Fatalf("elapsed went backwards: %f < %f", tick.Elapsed, prev)
		}
		if tick.Delta < 0 {
			t.Fatalf("negative delta %f", tick.Delta)
		}
		prev = tick.Elapsed
		deltas = append(deltas, tick.Delta)
	}

	if deltas[2] != 0 {
		t.Errorf("expected zero delta for the backwards sample, got %f", deltas[2])
	}
	if deltas[3] != 1 {
		t.Errorf("expected delta 1 measured from the last accepted sample, got %f", deltas[3])
	}
	if prev != 2 {
		t.Errorf("expected final elapsed 2, got %f", prev)
	}
}
