package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Skybox draws a cubemap behind everything else.
type Skybox struct {
	program *Program
	cube    rl.Model
	valid   bool
	depth   depthState
}

// NewSkybox builds the unit cube and binds the cubemap to its material.
// An invalid cubemap leaves the background at the clear color.
func NewSkybox(program *Program, cubemap rl.Texture2D) *Skybox {
	program.Bind(rl.ShaderLocMapCubemap, "environmentMap")
	cube := rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
	mats := cube.GetMaterials()
	mats[0].Shader = program.Shader
	rl.SetMaterialTexture(&mats[0], rl.MapCubemap, cubemap)
	return &Skybox{program: program, cube: cube, valid: cubemap.ID != 0, depth: glDepth}
}

// Draw renders the sky at the far plane. The HDR target must be bound.
func (s *Skybox) Draw(v View, threshold float32) {
	if !s.valid {
		return
	}
	s.program.SetFloat("threshold", threshold)

	v.begin3D()
	rl.DisableBackfaceCulling()
	flush()
	s.depth.with(gl.LEQUAL, func() {
		rl.DrawModel(s.cube, rl.Vector3{}, 1, rl.White)
		flush()
	})
	rl.EnableBackfaceCulling()
	rl.EndMode3D()
}

// Unload frees the cube. The shader and cubemap are owned elsewhere and
// raylib leaves material resources alone when unloading a model.
func (s *Skybox) Unload() {
	rl.UnloadModel(s.cube)
}

// depthState reads and writes the depth comparison function.
type depthState struct {
	get func() uint32
	set func(uint32)
}

var glDepth = depthState{
	get: func() uint32 {
		var fn int32
		gl.GetIntegerv(gl.DEPTH_FUNC, &fn)
		return uint32(fn)
	},
	set: func(fn uint32) { gl.DepthFunc(fn) },
}

// with runs draw under depth function fn and then puts back whatever was
// active before. draw must flush its own batched raylib calls.
func (d depthState) with(fn uint32, draw func()) {
	prev := d.get()
	d.set(fn)
	draw()
	d.set(prev)
}
