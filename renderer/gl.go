package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// InitGL loads OpenGL entry points for the context raylib created.
// Must be called after rl.InitWindow and before NewTargets.
func InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("loading OpenGL functions: %w", err)
	}
	return nil
}

// GLVersion returns the driver's version string.
func GLVersion() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Matrix converts a column-major mgl32 matrix to raylib's layout.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// Vec converts an mgl32 vector to raylib's.
func Vec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// flush submits raylib's pending batch so direct GL state changes apply in order.
func flush() {
	rl.DrawRenderBatchActive()
}
