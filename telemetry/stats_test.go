package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/skyhunt/systems"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9},
		{"clamped", []float64{1, 2, 3}, 1.5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{4, 2, 8, 6}
	s := Summarize(values)

	if math.Abs(s.Mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", s.Mean)
	}
	if math.Abs(s.Std-math.Sqrt(5)) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(5))
	}
	if s.Min != 2 {
		t.Errorf("min = %v, want 2", s.Min)
	}
	if values[0] != 4 {
		t.Error("input was reordered")
	}
	if (Summarize(nil) != DistanceSummary{}) {
		t.Error("empty input should give a zero summary")
	}
}

func TestCollector_Window(t *testing.T) {
	c := NewCollector(1)

	if c.ShouldFlush(10) {
		t.Fatal("empty collector should not flush")
	}

	for i := 0; i < 60; i++ {
		out := systems.Outcome{
			Frame:            uint64(i),
			PredatorDistance: 10,
			ClosestIndex:     0,
			ClosestDistance:  6,
			HasClosest:       true,
			TargetAlert:      i%2 == 0,
			Remaining:        4,
			Total:            5,
		}
		if i == 30 {
			out.ConsumedTargets = []int{2}
		}
		c.Record(out, float64(i)/60)
	}
	c.RecordReset()

	if !c.ShouldFlush(1.0) {
		t.Fatal("expected flush after one second")
	}
	stats := c.Flush(1.0)

	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 59 {
		t.Errorf("window frames %d..%d, want 0..59", stats.WindowStartFrame, stats.WindowEndFrame)
	}
	if stats.TargetsConsumed != 1 || stats.Resets != 1 {
		t.Errorf("events: consumed %d resets %d", stats.TargetsConsumed, stats.Resets)
	}
	if math.Abs(stats.TargetAlertRate-0.5) > 1e-9 {
		t.Errorf("target alert rate %v, want 0.5", stats.TargetAlertRate)
	}
	if stats.PredatorDistMean != 10 || stats.ClosestDistP50 != 6 {
		t.Errorf("distances: predator %v closest %v", stats.PredatorDistMean, stats.ClosestDistP50)
	}
	if stats.Remaining != 4 {
		t.Errorf("remaining %d, want 4", stats.Remaining)
	}

	// Counters start over
	c.Record(systems.Outcome{Frame: 60}, 1.0)
	next := c.Flush(2.0)
	if next.TargetsConsumed != 0 || next.Resets != 0 {
		t.Error("counters not reset after flush")
	}
	if next.WindowStartFrame != 60 {
		t.Errorf("next window starts at %d, want 60", next.WindowStartFrame)
	}
}

func TestEventsFrom(t *testing.T) {
	out := systems.Outcome{
		Frame:              7,
		AvatarJustConsumed: true,
		AvatarConsumed:     true,
		ConsumedTargets:    []int{1, 3},
		Remaining:          0,
		Total:              5,
	}
	events := EventsFrom(nil, out, 2.5)

	want := []EventType{EventAvatarConsumed, EventTargetConsumed, EventTargetConsumed, EventAllConsumed}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Errorf("event %d: expected %s, got %s", i, typ, events[i].Type)
		}
	}
	if events[2].Target != 3 {
		t.Errorf("expected target 3, got %d", events[2].Target)
	}

	// Already eaten everything: no repeat of all_consumed
	quiet := EventsFrom(nil, systems.Outcome{Frame: 8, AvatarConsumed: true, Total: 5}, 2.6)
	if len(quiet) != 0 {
		t.Errorf("expected no events, got %v", quiet)
	}
}
