package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/graph"
	"github.com/pthm-cable/skyhunt/post"
)

// PostChain runs the blur and composite passes over HDR images supplied by
// the caller and renders into an off-screen 8-bit target. It lets the GPU
// shaders be compared with the CPU reference in package post.
type PostChain struct {
	targets *Targets
	output  rl.RenderTexture2D

	blur, composite *Program
	post            *PostFX

	graph    *graph.Graph
	executor *graph.Executor
	backend  *gpuBackend
}

// NewPostChain allocates the targets and compiles the post shaders.
// Requires a GL context.
func NewPostChain(w, h int32, iterations int, weights []float32) (*PostChain, error) {
	targets, err := NewTargets(w, h)
	c := &PostChain{
		targets:   targets,
		output:    rl.LoadRenderTexture(w, h),
		blur:      NewProgram("blur", quadVS, blurFS),
		composite: NewProgram("composite", quadVS, compositeFS),
	}
	c.post = NewPostFX(c.blur, c.composite, weights)
	c.backend = &gpuBackend{
		targets:    targets,
		background: func() mgl32.Vec3 { return mgl32.Vec3{} },
		screen:     &c.output,
	}

	st := func() (*PostFX, *Targets) { return c.post, c.targets }
	c.graph = &graph.Graph{Passes: []graph.Pass{blurPass(iterations, st), compositePass(st)}}
	if verr := c.graph.Validate(); verr != nil {
		return c, fmt.Errorf("post chain graph: %w", verr)
	}
	c.executor = graph.NewExecutor(c.graph, c.backend)
	return c, err
}

// Upload copies the lit scene and bright-pass images into the HDR target's
// attachments. Both must match the chain's size.
func (c *PostChain) Upload(scene, bright *post.Image) error {
	for _, img := range []*post.Image{scene, bright} {
		if int32(img.W) != c.targets.Width || int32(img.H) != c.targets.Height {
			return fmt.Errorf("image is %dx%d, chain is %dx%d", img.W, img.H, c.targets.Width, c.targets.Height)
		}
	}
	flush()
	uploadFloat(c.targets.sceneTex, scene)
	uploadFloat(c.targets.brightTex, bright)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// uploadFloat writes img into a float texture. Rows are reversed to match
// what rendering into the framebuffer would have stored.
func uploadFloat(tex uint32, img *post.Image) {
	rows := make([]post.RGB, 0, len(img.Pix))
	for y := img.H - 1; y >= 0; y-- {
		rows = append(rows, img.Pix[y*img.W:(y+1)*img.W]...)
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(img.W), int32(img.H), gl.RGB, gl.FLOAT, gl.Ptr(&rows[0]))
}

// Run executes the chain into the output target.
func (c *PostChain) Run(f graph.Features) graph.Report {
	report := c.executor.Run(f)
	c.backend.release()
	return report
}

// Read returns the output as an image, top row first. The caller unloads it.
func (c *PostChain) Read() *rl.Image {
	img := rl.LoadImageFromTexture(c.output.Texture)
	rl.ImageFlipVertical(img)
	return img
}

// Unload frees the chain's shaders and targets.
func (c *PostChain) Unload() {
	c.blur.Unload()
	c.composite.Unload()
	rl.UnloadRenderTexture(c.output)
	c.targets.Unload()
}
