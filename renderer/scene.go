package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/assets"
	"github.com/pthm-cable/skyhunt/camera"
	"github.com/pthm-cable/skyhunt/components"
	"github.com/pthm-cable/skyhunt/sim"
)

// View is the per-frame camera state shared by the 3D passes.
type View struct {
	Camera     rl.Camera3D
	Position   mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// NewView captures a camera for one frame.
func NewView(cam *camera.Camera, aspect float32) View {
	return View{
		Camera: rl.Camera3D{
			Position:   Vec(cam.Position),
			Target:     Vec(cam.Target()),
			Up:         Vec(cam.Up),
			Fovy:       cam.Zoom,
			Projection: rl.CameraPerspective,
		},
		Position:   cam.Position,
		View:       cam.View(),
		Projection: cam.Projection(aspect),
	}
}

// begin3D enters raylib's 3D mode, then replaces its matrices with the
// camera's own so near/far planes follow config.
func (v View) begin3D() {
	rl.BeginMode3D(v.Camera)
	rl.SetMatrixProjection(Matrix(v.Projection))
	rl.SetMatrixModelview(Matrix(v.View))
}

// Scene draws the lit models.
type Scene struct {
	program *Program
	models  map[components.Mesh]rl.Model
}

// NewScene assigns the lit program to every material of every model.
// Invalid models are kept so their actors silently draw nothing.
func NewScene(program *Program, models map[components.Mesh]rl.Model) *Scene {
	for mesh, m := range models {
		if !assets.ModelValid(m) {
			slog.Warn("model missing, actor will not be drawn", "mesh", mesh)
			continue
		}
		mats := m.GetMaterials()
		for i := range mats {
			mats[i].Shader = program.Shader
		}
	}
	return &Scene{program: program, models: models}
}

// Draw renders drawables with the lights applied. The HDR target must be bound.
func (s *Scene) Draw(v View, lights *Lights, threshold float32, drawables []sim.Drawable) {
	lights.Apply(s.program)
	s.program.SetVec3("viewPosition", v.Position)
	s.program.SetFloat("threshold", threshold)

	v.begin3D()
	for _, d := range drawables {
		m, ok := s.models[d.Mesh]
		if !ok || !assets.ModelValid(m) {
			continue
		}
		m.Transform = Matrix(d.Transform)
		rl.DrawModel(m, rl.Vector3{}, 1, rl.White)
	}
	rl.EndMode3D()
}
