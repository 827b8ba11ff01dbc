package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skyhunt/components"
	"github.com/pthm-cable/skyhunt/motion"
)

func layout() Layout {
	return Layout{
		PredatorAnchor: mgl32.Vec3{0, 0, -25},
		BalloonAnchor:  mgl32.Vec3{0, -20, -35},
		AvatarProbe:    mgl32.Vec3{0, 3.5, 0},
		AvatarScale:    0.5,
		Targets:        []mgl32.Vec3{{0, -6, -35}, {-8, -5, -40}, {2, -5.5, -30}},
	}
}

func TestNew_SpawnsRoles(t *testing.T) {
	s := New(layout())

	if s.Total() != 3 || s.Remaining() != 3 {
		t.Fatalf("expected 3 targets remaining, got total %d remaining %d", s.Total(), s.Remaining())
	}
	if r := s.Actor(s.Predator()).Role; r != components.RolePredator {
		t.Errorf("predator has role %s", r)
	}
	if r := s.Actor(s.Avatar()).Role; r != components.RoleAvatar {
		t.Errorf("avatar has role %s", r)
	}
	for i, e := range s.Targets() {
		a := s.Actor(e)
		if a.Role != components.RoleTarget || a.Index != i {
			t.Errorf("target %d: got role %s index %d", i, a.Role, a.Index)
		}
	}
	if len(s.Decor()) != 1 {
		t.Errorf("expected one decorative actor, got %d", len(s.Decor()))
	}

	// Initial positions come from the curves at t=0
	want := mgl32.Vec3{10, -1, -25}
	if got := s.Position(s.Predator()); !got.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected predator at %v, got %v", want, got)
	}
}

func TestConsume(t *testing.T) {
	s := New(layout())
	target := s.Targets()[1]

	if !s.Consume(target) {
		t.Fatal("first consume should change state")
	}
	if s.Consume(target) {
		t.Error("second consume should be a no-op")
	}
	if s.Remaining() != 2 {
		t.Errorf("expected 2 remaining, got %d", s.Remaining())
	}

	// Avatar consumption does not touch the target count
	if !s.Consume(s.Avatar()) {
		t.Error("expected avatar consumed")
	}
	if s.Remaining() != 2 {
		t.Errorf("avatar consumption changed remaining to %d", s.Remaining())
	}

	// Actors without consumption state are never consumed
	if s.Consume(s.Predator()) || s.Consumed(s.Predator()) {
		t.Error("predator should not be consumable")
	}
	if s.Consume(s.Decor()[0]) {
		t.Error("decor should not be consumable")
	}
}

func TestResetConsumption(t *testing.T) {
	s := New(layout())
	for _, e := range s.Targets() {
		s.Consume(e)
	}
	s.Consume(s.Avatar())

	s.ResetConsumption()

	if s.Remaining() != s.Total() {
		t.Errorf("expected %d remaining, got %d", s.Total(), s.Remaining())
	}
	if s.Consumed(s.Avatar()) {
		t.Error("avatar still consumed")
	}
	for i, e := range s.Targets() {
		if s.Consumed(e) {
			t.Errorf("target %d still consumed", i)
		}
	}
}

func TestCommit(t *testing.T) {
	s := New(layout())
	p := mgl32.Vec3{1, 2, 3}
	s.Commit(Frame{Number: 4, Time: 2}, []Pose{
		{Entity: s.Avatar(), Position: p, Transform: mgl32.Translate3D(1, 2, 3)},
	})

	if got := s.Position(s.Avatar()); got != p {
		t.Errorf("expected %v, got %v", p, got)
	}
	if f, ok := s.Committed(); !ok || f.Number != 4 {
		t.Errorf("expected frame 4 committed, got %+v", f)
	}
}

func TestSetCurve(t *testing.T) {
	s := New(layout())
	s.SetCurve(s.Avatar(), motion.Bird{Scale: 2})

	found := false
	s.EachMotion(func(e ecs.Entity, m *components.Motion) {
		if e != s.Avatar() {
			return
		}
		found = true
		if m.Curve != (motion.Bird{Scale: 2}) {
			t.Errorf("expected scaled bird curve, got %#v", m.Curve)
		}
		if m.Probe != layout().AvatarProbe {
			t.Errorf("avatar offset changed to %v", m.Probe)
		}
	})
	if !found {
		t.Error("avatar not visited")
	}
}
