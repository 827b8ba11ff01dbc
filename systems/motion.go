package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skyhunt/components"
	"github.com/pthm-cable/skyhunt/motion"
	"github.com/pthm-cable/skyhunt/sim"
)

// MotionSystem is the transform phase: it evaluates every actor's curve for the
// frame's elapsed time and commits the results to the state in one step.
type MotionSystem struct {
	poses []sim.Pose // Reused between frames
}

// NewMotionSystem creates a motion system.
func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

// Update computes and commits transforms for frame.
func (s *MotionSystem) Update(st *sim.State, frame sim.Frame) {
	s.poses = s.poses[:0]
	st.EachMotion(func(e ecs.Entity, m *components.Motion) {
		xf := motion.Transform(m.Curve, frame.Time, m.Anchor)
		s.poses = append(s.poses, sim.Pose{
			Entity:    e,
			Transform: xf,
			Position:  motion.Translation(xf).Add(m.Probe),
		})
	})
	st.Commit(frame, s.poses)
}

// AvatarAnchor returns where the avatar sits for a camera at cameraPos.
func AvatarAnchor(cameraPos, offset mgl32.Vec3) mgl32.Vec3 {
	return cameraPos.Add(offset)
}
