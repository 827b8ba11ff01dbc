package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/camera"
	"github.com/pthm-cable/skyhunt/sim"
)

// Autopilot flies the camera so the avatar closes on the nearest target.
// Used by headless runs in place of keyboard input.
type Autopilot struct {
	AvatarOffset mgl32.Vec3 // Camera to avatar anchor
	AvatarProbe  mgl32.Vec3 // Avatar anchor to logic position
	SpeedScale   float32    // Multiplier on the camera's own speed
}

// NewAutopilot creates an autopilot for the given avatar placement.
func NewAutopilot(offset, probe mgl32.Vec3) *Autopilot {
	return &Autopilot{AvatarOffset: offset, AvatarProbe: probe, SpeedScale: 2}
}

// Steer moves the camera toward the closest target from the last outcome.
// It reports whether the camera moved.
func (a *Autopilot) Steer(cam *camera.Camera, st *sim.State, out Outcome, dt float32) bool {
	if !out.HasClosest || dt <= 0 {
		return false
	}

	target := st.Position(st.Targets()[out.ClosestIndex])
	goal := target.Sub(a.AvatarOffset).Sub(a.AvatarProbe)
	toGoal := goal.Sub(cam.Position)
	dist := toGoal.Len()
	if dist < 1e-4 {
		return false
	}

	step := cam.Speed * a.SpeedScale * dt
	if step > dist {
		step = dist
	}
	cam.Position = cam.Position.Add(toGoal.Mul(step / dist))

	// Keep looking along the flight path, level with the horizon
	if flat := (mgl32.Vec3{toGoal.X(), 0, toGoal.Z()}); flat.Len() > 1e-4 {
		cam.SetFront(flat)
	}
	return true
}
