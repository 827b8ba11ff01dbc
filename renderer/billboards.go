package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Billboards draws alpha-blended camera-facing quads, such as clouds.
type Billboards struct {
	program   *Program
	texture   rl.Texture2D
	positions []mgl32.Vec3
	size      float32
}

// NewBillboards creates a billboard set drawn in the given order. Positions
// are authored in unit-quad space: scale sizes the quad and multiplies every
// position, so the layout grows with the quads.
func NewBillboards(program *Program, tex rl.Texture2D, positions []mgl32.Vec3, scale float32) *Billboards {
	world := make([]mgl32.Vec3, len(positions))
	for i, p := range positions {
		world[i] = p.Mul(scale)
	}
	return &Billboards{program: program, texture: tex, positions: world, size: scale}
}

// Draw renders every billboard. The HDR target must be bound.
func (b *Billboards) Draw(v View, threshold float32) {
	if b.texture.ID == 0 || len(b.positions) == 0 {
		return
	}
	b.program.SetFloat("threshold", threshold)

	v.begin3D()
	rl.BeginShaderMode(b.program.Shader)
	rl.BeginBlendMode(rl.BlendAlpha)
	for _, p := range b.positions {
		rl.DrawBillboard(v.Camera, b.texture, Vec(p), b.size, rl.White)
	}
	rl.EndBlendMode()
	rl.EndShaderMode()
	rl.EndMode3D()
}
