package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/config"
)

type recorder struct {
	floats map[string]float32
	vecs   map[string]mgl32.Vec3
}

func newRecorder() *recorder {
	return &recorder{floats: map[string]float32{}, vecs: map[string]mgl32.Vec3{}}
}

func (r *recorder) SetInt(name string, v int32)       { r.floats[name] = float32(v) }
func (r *recorder) SetFloat(name string, v float32)   { r.floats[name] = v }
func (r *recorder) SetVec3(name string, v mgl32.Vec3) { r.vecs[name] = v }
func (r *recorder) SetMat4(string, mgl32.Mat4)        {}

func TestLights_Apply(t *testing.T) {
	l := NewLights(config.LightingConfig{
		Point: config.PointLightConfig{
			Center:   mgl32.Vec3{0, 10, 0},
			Radius:   5,
			Diffuse:  mgl32.Vec3{1, 1, 1},
			Constant: 1, Linear: 0.09, Quadratic: 0.032,
		},
		Directional: config.DirLightConfig{Direction: mgl32.Vec3{-0.2, -1, -0.3}},
		Shininess:   32,
	})
	r := newRecorder()
	l.Apply(r)

	if r.floats["shininess"] != 32 {
		t.Errorf("shininess: got %f", r.floats["shininess"])
	}
	if r.floats["pointLight.linear"] != 0.09 {
		t.Errorf("linear: got %f", r.floats["pointLight.linear"])
	}
	if r.vecs["dirLight.direction"] != (mgl32.Vec3{-0.2, -1, -0.3}) {
		t.Errorf("direction: got %v", r.vecs["dirLight.direction"])
	}
	if r.vecs["pointLight.position"] != (mgl32.Vec3{5, 10, 0}) {
		t.Errorf("position at t=0: got %v", r.vecs["pointLight.position"])
	}
}

func TestPointLight_Attenuation(t *testing.T) {
	l := PointLight{Constant: 1, Linear: 0.09, Quadratic: 0.032}
	if got := l.Attenuation(0); got != 1 {
		t.Errorf("at zero distance expected 1, got %f", got)
	}
	prev := float32(2)
	for d := float32(0); d < 100; d += 5 {
		a := l.Attenuation(d)
		if a >= prev {
			t.Fatalf("attenuation not decreasing at %f", d)
		}
		prev = a
	}
	want := 1 / (1 + 0.09*10 + 0.032*100)
	if got := l.Attenuation(10); math.Abs(float64(got)-want) > 1e-6 {
		t.Errorf("at 10 expected %f, got %f", want, got)
	}
}

func TestMatrix_ColumnMajor(t *testing.T) {
	m := Matrix(mgl32.Translate3D(1, 2, 3))
	if m.M12 != 1 || m.M13 != 2 || m.M14 != 3 {
		t.Errorf("translation should land in M12..M14, got %f %f %f", m.M12, m.M13, m.M14)
	}
}
