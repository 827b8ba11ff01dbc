package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "camera_speed", Path: "camera.speed", Min: 1.0, Max: 6.0, Default: 2.5},
			// Scales every insect anchor about the targets' centroid
			{Name: "target_spread", Path: "scene.targets", Min: 0.5, Max: 2.0, Default: 1.0},
			{Name: "predator_x", Path: "scene.predator_anchor[0]", Min: -15, Max: 15, Default: 0},
			{Name: "predator_z", Path: "scene.predator_anchor[2]", Min: -45, Max: -10, Default: -25},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Camera.Speed = float32(clamped[0])

	spread := float32(clamped[1])
	centroid := targetCentroid(cfg.Scene.Targets)
	targets := make([]mgl32.Vec3, len(cfg.Scene.Targets))
	for i, t := range cfg.Scene.Targets {
		targets[i] = centroid.Add(t.Sub(centroid).Mul(spread))
	}
	cfg.Scene.Targets = targets

	cfg.Scene.PredatorAnchor[0] = float32(clamped[2])
	cfg.Scene.PredatorAnchor[2] = float32(clamped[3])
}

// ExtractFromConfig reads current parameter values from a Config.
// Spread is relative, so it always reads as 1.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Camera.Speed),
		1.0,
		float64(cfg.Scene.PredatorAnchor[0]),
		float64(cfg.Scene.PredatorAnchor[2]),
	}
}

func targetCentroid(targets []mgl32.Vec3) mgl32.Vec3 {
	var c mgl32.Vec3
	if len(targets) == 0 {
		return c
	}
	for _, t := range targets {
		c = c.Add(t)
	}
	return c.Mul(1 / float32(len(targets)))
}
