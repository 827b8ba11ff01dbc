// Package motion maps an actor's curve, elapsed time and anchor to a world transform.
// Every curve is closed form in t: no integration, no state carried between frames.
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Curve is a deterministic local transform over time, applied after the anchor translation.
type Curve interface {
	Local(t float32) mgl32.Mat4
}

// Transform returns T(anchor) * curve.Local(t). Negative t is treated as 0.
func Transform(c Curve, t float32, anchor mgl32.Vec3) mgl32.Mat4 {
	if t < 0 || math.IsNaN(float64(t)) {
		t = 0
	}
	return mgl32.Translate3D(anchor.X(), anchor.Y(), anchor.Z()).Mul4(c.Local(t))
}

// Translation extracts the world position from a transform.
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// Position is shorthand for Translation(Transform(c, t, anchor)).
func Position(c Curve, t float32, anchor mgl32.Vec3) mgl32.Vec3 {
	return Translation(Transform(c, t, anchor))
}

// Balloon drifts on a wide circle well behind the scene.
type Balloon struct{}

// Local implements Curve.
func (Balloon) Local(t float32) mgl32.Mat4 {
	a := 0.1 * t
	return mgl32.Scale3D(0.01, 0.01, 0.01).
		Mul4(mgl32.Translate3D(3600*cos(a), 0, 3600*sin(a)+1000)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-90)))
}

// Falcon patrols a circle around its anchor, nose along the direction of travel.
type Falcon struct{}

// FalconSpeed is the patrol angular speed in radians per second.
const FalconSpeed = 0.15

// Local implements Curve.
func (Falcon) Local(t float32) mgl32.Mat4 {
	a := FalconSpeed * t
	return mgl32.Scale3D(0.2, 0.2, 0.2).
		Mul4(mgl32.Translate3D(50*cos(a), -5, 50*sin(a))).
		Mul4(mgl32.HomogRotate3DY(Heading(t)))
}

// Heading is the falcon's yaw in radians at time t. It turns the model's +X axis
// onto the tangent of the patrol circle.
func Heading(t float32) float32 {
	return -(FalconSpeed*t + math.Pi/2)
}

// Bird bobs in place and faces away from the camera.
type Bird struct {
	Scale float32
}

// Local implements Curve.
func (b Bird) Local(t float32) mgl32.Mat4 {
	s := b.Scale
	if s == 0 {
		s = 1
	}
	return mgl32.Scale3D(s, s, s).
		Mul4(mgl32.Translate3D(0, 0.5*sin(2.5*t), 0)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(180)))
}

// Insect drifts along sinusoids that depend on its index in the target set.
type Insect struct {
	Index int
}

// Local implements Curve.
func (in Insect) Local(t float32) mgl32.Mat4 {
	i := float32(in.Index)
	return mgl32.Scale3D(0.01, 0.01, 0.01).
		Mul4(mgl32.Translate3D(sin(t/(i+3))*(i+8), 0, cos(t*(i+2))))
}

// LightOrbit is the point light's circular path.
type LightOrbit struct {
	Center       mgl32.Vec3
	Radius       float32
	AngularSpeed float32 // Radians per second
}

// At returns the light position at time t.
func (o LightOrbit) At(t float32) mgl32.Vec3 {
	if t < 0 || math.IsNaN(float64(t)) {
		t = 0
	}
	a := o.AngularSpeed * t
	return mgl32.Vec3{
		o.Center.X() + o.Radius*cos(a),
		o.Center.Y(),
		o.Center.Z() + o.Radius*sin(a),
	}
}

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos(x float32) float32 { return float32(math.Cos(float64(x))) }
