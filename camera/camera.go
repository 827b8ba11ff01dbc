// Package camera provides a free-flying 3D camera for viewing the scene.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard movement axis.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Pose is the part of the camera that can be reset and persisted.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32 // Degrees, -90 looks down -Z
	Pitch    float32 // Degrees
	Zoom     float32 // Vertical field of view in degrees
}

// Camera is a yaw/pitch fly camera.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw, Pitch float32

	// Zoom is the vertical field of view in degrees
	Zoom             float32
	MinZoom, MaxZoom float32

	Speed       float32 // World units per second
	Sensitivity float32 // Degrees per pointer pixel

	Near, Far float32

	// Origin is the pose Reset returns to
	Origin Pose
}

// New creates a camera at the origin pose.
func New(origin Pose) *Camera {
	c := &Camera{
		WorldUp:     mgl32.Vec3{0, 1, 0},
		MinZoom:     1,
		MaxZoom:     45,
		Speed:       2.5,
		Sensitivity: 0.1,
		Near:        0.1,
		Far:         100,
		Origin:      origin,
	}
	c.Reset()
	return c
}

// Reset returns the camera to its origin pose.
func (c *Camera) Reset() {
	c.Position = c.Origin.Position
	c.Yaw = c.Origin.Yaw
	c.Pitch = c.Origin.Pitch
	c.Zoom = c.Origin.Zoom
	if c.Zoom == 0 {
		c.Zoom = c.MaxZoom
	}
	c.updateVectors()
}

// Move translates the camera along a movement axis for dt seconds.
func (c *Camera) Move(dir Direction, dt float32) {
	velocity := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

// Look applies a pointer delta in pixels. Positive dy looks up.
func (c *Camera) Look(dx, dy float32, constrainPitch bool) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity

	// Past +-90 the view flips
	if constrainPitch {
		c.Pitch = clamp(c.Pitch, -89, 89)
	}
	c.updateVectors()
}

// Scroll zooms by a wheel delta; positive narrows the field of view.
func (c *Camera) Scroll(dy float32) {
	c.SetZoom(c.Zoom - dy)
}

// SetZoom sets the field of view, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// SetFront points the camera along front and derives yaw and pitch from it.
// A zero vector leaves the orientation unchanged.
func (c *Camera) SetFront(front mgl32.Vec3) {
	if front.Len() == 0 {
		return
	}
	f := front.Normalize()
	c.Pitch = clamp(mgl32.RadToDeg(float32(math.Asin(float64(clamp(f.Y(), -1, 1))))), -89, 89)
	c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(f.Z()), float64(f.X()))))
	c.updateVectors()
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, c.Near, c.Far)
}

// Target returns the point one unit in front of the camera.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Front)
}

// updateVectors recomputes Front, Right and Up from yaw and pitch.
func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
