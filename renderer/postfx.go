package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/graph"
)

// PostFX runs the full-screen blur and composite shaders.
type PostFX struct {
	blur      *Program
	composite *Program
	weights   []float32
}

// NewPostFX creates the post-processing stage with a one-sided blur kernel.
func NewPostFX(blur, composite *Program, weights []float32) *PostFX {
	p := &PostFX{blur: blur, composite: composite, weights: weights}
	blur.SetInt("taps", int32(len(weights)))
	blur.SetFloats("weights", weights)
	return p
}

// BlurStep runs one ping-pong iteration into the bound buffer.
func (p *PostFX) BlurStep(src rl.Texture2D, step *graph.BlurStep) {
	horizontal := int32(0)
	if step.Horizontal {
		horizontal = 1
	}
	p.blur.SetInt("horizontal", horizontal)

	rl.BeginShaderMode(p.blur.Shader)
	fullscreen(src)
	rl.EndShaderMode()
}

// Composite tone-maps scene, adding bloom when it is non-nil, into the bound target.
func (p *PostFX) Composite(scene rl.Texture2D, bloom *rl.Texture2D, f graph.Features) {
	u := p.composite
	u.SetInt("bloom", boolInt(bloom != nil))
	u.SetInt("hdr", boolInt(f.HDR))
	u.SetFloat("exposure", f.Exposure)
	gamma := f.Gamma
	if gamma <= 0 {
		gamma = 2.2
	}
	u.SetFloat("gamma", gamma)

	rl.BeginShaderMode(u.Shader)
	if bloom != nil {
		u.SetTexture("bloomBlur", *bloom)
	}
	fullscreen(scene)
	rl.EndShaderMode()
}

// fullscreen draws a render texture over the bound target. Render textures
// are stored bottom-up, so the source rectangle is flipped.
func fullscreen(tex rl.Texture2D) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	rl.DrawTextureRec(tex, src, rl.Vector2{}, rl.White)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
