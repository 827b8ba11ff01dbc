package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/graph"
	"github.com/pthm-cable/skyhunt/motion"
)

// DirLight is a directional light with Phong terms.
type DirLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// Apply uploads the light as the named struct uniform.
func (l DirLight) Apply(u graph.Uniforms, name string) {
	u.SetVec3(name+".direction", l.Direction)
	u.SetVec3(name+".ambient", l.Ambient)
	u.SetVec3(name+".diffuse", l.Diffuse)
	u.SetVec3(name+".specular", l.Specular)
}

// PointLight is an attenuated point light that orbits a fixed center.
type PointLight struct {
	Orbit     motion.LightOrbit
	Position  mgl32.Vec3 // Updated by Advance
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Advance moves the light along its orbit to time t.
func (l *PointLight) Advance(t float32) {
	l.Position = l.Orbit.At(t)
}

// Attenuation returns the light's falloff factor at distance d.
func (l *PointLight) Attenuation(d float32) float32 {
	den := l.Constant + l.Linear*d + l.Quadratic*d*d
	if den <= 0 {
		return 1
	}
	return 1 / den
}

// Apply uploads the light as the named struct uniform.
func (l *PointLight) Apply(u graph.Uniforms, name string) {
	u.SetVec3(name+".position", l.Position)
	u.SetVec3(name+".ambient", l.Ambient)
	u.SetVec3(name+".diffuse", l.Diffuse)
	u.SetVec3(name+".specular", l.Specular)
	u.SetFloat(name+".constant", l.Constant)
	u.SetFloat(name+".linear", l.Linear)
	u.SetFloat(name+".quadratic", l.Quadratic)
}

// Lights is the scene's fixed light set.
type Lights struct {
	Dir       DirLight
	Point     PointLight
	Shininess float32
}

// NewLights builds the light set from config.
func NewLights(cfg config.LightingConfig) *Lights {
	p := cfg.Point
	d := cfg.Directional
	l := &Lights{
		Dir: DirLight{
			Direction: d.Direction,
			Ambient:   d.Ambient,
			Diffuse:   d.Diffuse,
			Specular:  d.Specular,
		},
		Point: PointLight{
			Orbit:     motion.LightOrbit{Center: p.Center, Radius: p.Radius, AngularSpeed: p.AngularSpeed},
			Ambient:   p.Ambient,
			Diffuse:   p.Diffuse,
			Specular:  p.Specular,
			Constant:  p.Constant,
			Linear:    p.Linear,
			Quadratic: p.Quadratic,
		},
		Shininess: cfg.Shininess,
	}
	l.Point.Advance(0)
	return l
}

// Apply uploads every light and the shininess exponent.
func (l *Lights) Apply(u graph.Uniforms) {
	l.Dir.Apply(u, "dirLight")
	l.Point.Apply(u, "pointLight")
	u.SetFloat("shininess", l.Shininess)
}
