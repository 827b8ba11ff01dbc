package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	v := pv.Clamp([]float64{100, -1, 0, 0})
	if v[0] != pv.Specs[0].Max {
		t.Errorf("expected speed clamped to %v, got %v", pv.Specs[0].Max, v[0])
	}
	if v[1] != pv.Specs[1].Min {
		t.Errorf("expected spread clamped to %v, got %v", pv.Specs[1].Min, v[1])
	}
	if v[3] != pv.Specs[3].Max {
		t.Errorf("expected predator z clamped to %v, got %v", pv.Specs[3].Max, v[3])
	}
}

func TestApplySpreadKeepsCentroid(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scene.Targets = []mgl32.Vec3{{0, 0, 0}, {4, 0, 0}, {2, 6, 0}}
	before := targetCentroid(cfg.Scene.Targets)
	orig := cfg.Scene.Targets

	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{2.5, 2.0, 0, -25})

	after := targetCentroid(cfg.Scene.Targets)
	if after.Sub(before).Len() > 1e-5 {
		t.Errorf("centroid moved from %v to %v", before, after)
	}
	want := before.Add(orig[1].Sub(before).Mul(2))
	if cfg.Scene.Targets[1].Sub(want).Len() > 1e-5 {
		t.Errorf("expected target 1 at %v, got %v", want, cfg.Scene.Targets[1])
	}
	if orig[1] != (mgl32.Vec3{4, 0, 0}) {
		t.Errorf("source targets were modified: %v", orig[1])
	}
	if cfg.Camera.Speed != 2.5 {
		t.Errorf("expected speed 2.5, got %v", cfg.Camera.Speed)
	}
	if cfg.Scene.PredatorAnchor[2] != -25 {
		t.Errorf("expected predator z -25, got %v", cfg.Scene.PredatorAnchor[2])
	}
}

func TestStartOffsetsCentred(t *testing.T) {
	offsets := startOffsets(3, 2)
	want := []float32{-2, 0, 2}
	for i, o := range offsets {
		if o.X() != want[i] {
			t.Errorf("offset %d: expected x %v, got %v", i, want[i], o.X())
		}
	}
}

func TestComputeFitnessPenalties(t *testing.T) {
	fe := &FitnessEvaluator{goals: Goals{ClearTimeSec: 20, PredatorAlertRate: 0.1}}

	perfect := fe.computeFitness(&runResult{cleared: true, clearTimeSec: 20, alertFrames: 10, frames: 100})
	if math.Abs(perfect) > 1e-9 {
		t.Errorf("expected zero fitness on goal, got %v", perfect)
	}

	uncleared := fe.computeFitness(&runResult{clearTimeSec: 20, alertFrames: 10, frames: 100})
	if math.Abs(uncleared-penaltyUncleared) > 1e-9 {
		t.Errorf("expected %v for uncleared session, got %v", penaltyUncleared, uncleared)
	}

	slow := fe.computeFitness(&runResult{cleared: true, clearTimeSec: 30, alertFrames: 10, frames: 100})
	if math.Abs(slow-0.5) > 1e-9 {
		t.Errorf("expected 0.5 for 50%% slow clear, got %v", slow)
	}
}

func TestExtractFromConfigMatchesApply(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scene.Targets = []mgl32.Vec3{{0, 0, 0}, {4, 0, 0}}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{3, 1.5, -4, -30})

	got := pv.ExtractFromConfig(cfg)
	want := []float64{3, 1, -4, -30}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("%s: expected %v, got %v", pv.Specs[i].Name, want[i], got[i])
		}
	}
}
