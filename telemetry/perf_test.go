package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/skyhunt/systems"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(systems.PhaseTransform)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(systems.PhaseGeometry)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseTransform]; !ok {
		t.Error("expected transform phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseGeometry]; !ok {
		t.Error("expected geometry phase to be tracked")
	}
	if pc.SampleCount() != 5 {
		t.Errorf("expected 5 samples, got %d", pc.SampleCount())
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(systems.PhaseLogic)
		pc.EndFrame()
	}

	if pc.SampleCount() != 5 {
		t.Errorf("window should cap at 5 samples, got %d", pc.SampleCount())
	}
	stats := pc.Stats()
	if stats.MinFrameDuration > stats.MaxFrameDuration {
		t.Errorf("min %v above max %v", stats.MinFrameDuration, stats.MaxFrameDuration)
	}
}

// stepClock is a manual clock for timing tests.
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time          { return c.t }
func (c *stepClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPerfCollector_PhasePercentages(t *testing.T) {
	clk := &stepClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(10)
	pc.now = clk.Now

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(systems.PhaseLogic)
		clk.Advance(1 * time.Millisecond)
		pc.StartPhase(systems.PhaseBlur)
		clk.Advance(3 * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrameDuration != 4*time.Millisecond {
		t.Errorf("expected 4ms average frame, got %v", stats.AvgFrameDuration)
	}
	if math.Abs(stats.PhasePct[systems.PhaseLogic]-25) > 1e-9 {
		t.Errorf("expected logic 25%%, got %v%%", stats.PhasePct[systems.PhaseLogic])
	}
	if math.Abs(stats.PhasePct[systems.PhaseBlur]-75) > 1e-9 {
		t.Errorf("expected blur 75%%, got %v%%", stats.PhasePct[systems.PhaseBlur])
	}
	if stats.PhaseAvg[systems.PhaseBlur] != 3*time.Millisecond {
		t.Errorf("expected blur average 3ms, got %v", stats.PhaseAvg[systems.PhaseBlur])
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.BlurPct != stats.PhasePct[systems.PhaseBlur] {
		t.Errorf("csv row does not carry the stats: %+v", row)
	}
}

func TestPerfCollector_PresentInterval(t *testing.T) {
	clk := &stepClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(10)
	pc.now = clk.Now

	pc.RecordPresent()
	clk.Advance(20 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.PresentInterval != 20*time.Millisecond {
		t.Errorf("expected 20ms interval, got %v", stats.PresentInterval)
	}
	if math.Abs(stats.FPS-50) > 1e-9 {
		t.Errorf("expected 50 FPS, got %v", stats.FPS)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}
