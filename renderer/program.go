package renderer

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/graph"
)

// Program is a compiled shader with a uniform location cache.
// It implements graph.Uniforms.
type Program struct {
	Name   string
	Shader rl.Shader

	locs    map[string]int32
	missing map[string]bool
}

var _ graph.Uniforms = (*Program)(nil)

// NewProgram compiles a shader from source.
func NewProgram(name, vs, fs string) *Program {
	return &Program{
		Name:    name,
		Shader:  rl.LoadShaderFromMemory(vs, fs),
		locs:    make(map[string]int32),
		missing: make(map[string]bool),
	}
}

// Loc returns a uniform's location, or -1 when the shader does not use it.
// Each missing name is logged once.
func (p *Program) Loc(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := rl.GetShaderLocation(p.Shader, name)
	p.locs[name] = loc
	if loc < 0 && !p.missing[name] {
		p.missing[name] = true
		slog.Debug("uniform not found", "program", p.Name, "uniform", name)
	}
	return loc
}

// SetInt implements graph.Uniforms.
func (p *Program) SetInt(name string, v int32) {
	loc := p.Loc(name)
	if loc < 0 {
		return
	}
	// raylib copies the raw bits, so an int travels in a float32 slot
	rl.SetShaderValue(p.Shader, loc, []float32{math.Float32frombits(uint32(v))}, rl.ShaderUniformInt)
}

// SetFloat implements graph.Uniforms.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Loc(name); loc >= 0 {
		rl.SetShaderValue(p.Shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

// SetVec3 implements graph.Uniforms.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Loc(name); loc >= 0 {
		rl.SetShaderValue(p.Shader, loc, v[:], rl.ShaderUniformVec3)
	}
}

// SetMat4 implements graph.Uniforms.
func (p *Program) SetMat4(name string, v mgl32.Mat4) {
	if loc := p.Loc(name); loc >= 0 {
		rl.SetShaderValueMatrix(p.Shader, loc, Matrix(v))
	}
}

// SetFloats uploads a float array uniform.
func (p *Program) SetFloats(name string, v []float32) {
	if loc := p.Loc(name); loc >= 0 && len(v) > 0 {
		rl.SetShaderValueV(p.Shader, loc, v, rl.ShaderUniformFloat, int32(len(v)))
	}
}

// SetTexture binds a texture to a sampler uniform for the next draw.
func (p *Program) SetTexture(name string, tex rl.Texture2D) {
	if loc := p.Loc(name); loc >= 0 {
		rl.SetShaderValueTexture(p.Shader, loc, tex)
	}
}

// Bind points one of raylib's default shader slots at a named uniform.
func (p *Program) Bind(slot int32, name string) {
	p.Shader.UpdateLocation(slot, p.Loc(name))
}

// Unload frees the shader.
func (p *Program) Unload() {
	if p.Shader.ID != 0 {
		rl.UnloadShader(p.Shader)
		p.Shader = rl.Shader{}
	}
}
