// Package renderer draws the scene through an HDR render graph: lit models,
// billboards and a skybox into a float framebuffer, a ping-pong Gaussian blur
// of the bright-pass, then a tone-mapped composite to the screen.
package renderer

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/assets"
	"github.com/pthm-cable/skyhunt/camera"
	"github.com/pthm-cable/skyhunt/components"
	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/graph"
	"github.com/pthm-cable/skyhunt/post"
	"github.com/pthm-cable/skyhunt/sim"
	"github.com/pthm-cable/skyhunt/systems"
)

// Pass names, in execution order.
const (
	PassGeometry     = systems.PhaseGeometry
	PassTransparency = systems.PhaseTransparency
	PassSkybox       = systems.PhaseSkybox
	PassBlur         = systems.PhaseBlur
	PassComposite    = systems.PhaseComposite
)

// Frame is everything the passes need for one frame.
type Frame struct {
	Camera     *camera.Camera
	Time       float32
	Drawables  []sim.Drawable
	Background mgl32.Vec3
}

// Pipeline owns the GPU resources and the pass graph.
type Pipeline struct {
	targets *Targets
	lib     *assets.Library

	lit, blend, sky, blur, composite *Program

	Lights *Lights
	scene  *Scene
	clouds *Billboards
	skybox *Skybox
	post   *PostFX

	graph    *graph.Graph
	executor *graph.Executor
	backend  *gpuBackend

	aspect    float32
	threshold float32

	// Per-frame inputs read by pass callbacks
	view  View
	frame Frame
}

// NewPipeline allocates render targets, compiles shaders and loads assets.
// Must be called after the window exists and InitGL succeeded. Asset and
// framebuffer failures are logged and the pipeline still renders what it can.
func NewPipeline(cfg *config.Config, lib *assets.Library) *Pipeline {
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	targets, err := NewTargets(w, h)
	if err != nil {
		slog.Error("render targets incomplete", "error", err)
	}

	p := &Pipeline{
		targets:   targets,
		lib:       lib,
		lit:       NewProgram("lit", litVS, litFS),
		blend:     NewProgram("blend", blendVS, blendFS),
		sky:       NewProgram("skybox", skyboxVS, skyboxFS),
		blur:      NewProgram("blur", quadVS, blurFS),
		composite: NewProgram("composite", quadVS, compositeFS),
		Lights:    NewLights(cfg.Lighting),
		aspect:    cfg.Derived.Aspect,
		threshold: cfg.Render.BrightThreshold,
	}

	models := map[components.Mesh]rl.Model{
		components.MeshBalloon: lib.LoadModel(cfg.Derived.BalloonPath),
		components.MeshFalcon:  lib.LoadModel(cfg.Derived.FalconPath),
		components.MeshBird:    lib.LoadModel(cfg.Derived.BirdPath),
		components.MeshInsect:  lib.LoadModel(cfg.Derived.InsectPath),
	}
	p.scene = NewScene(p.lit, models)
	p.clouds = NewBillboards(p.blend, lib.LoadTexture(cfg.Derived.CloudPath), cfg.Scene.Clouds, cfg.Scene.CloudScale)
	p.skybox = NewSkybox(p.sky, lib.LoadCubemap(cfg.Derived.SkyboxPaths))
	p.post = NewPostFX(p.blur, p.composite, post.GaussianWeights(cfg.Render.BlurTaps, cfg.Render.BlurSigma))

	p.backend = &gpuBackend{targets: targets, background: func() mgl32.Vec3 { return p.frame.Background }}
	p.graph = p.buildGraph(cfg.Render.BlurIterations)
	if err := p.graph.Validate(); err != nil {
		// The pass list is fixed, so this only fires on a programming error
		panic(fmt.Sprintf("renderer: invalid pass graph: %v", err))
	}
	p.executor = graph.NewExecutor(p.graph, p.backend)
	return p
}

// Graph returns the pass list.
func (p *Pipeline) Graph() *graph.Graph { return p.graph }

// OnPass registers a hook called before each pass, for timing.
func (p *Pipeline) OnPass(fn func(name string)) { p.executor.OnPass = fn }

// SetThreshold changes the bright-pass cut-off.
func (p *Pipeline) SetThreshold(t float32) { p.threshold = t }

func (p *Pipeline) buildGraph(iterations int) *graph.Graph {
	st := func() (*PostFX, *Targets) { return p.post, p.targets }
	return &graph.Graph{Passes: []graph.Pass{
		{
			Name:   PassGeometry,
			Writes: graph.TargetHDR,
			Clear:  graph.ClearAll,
			Draw: func(*graph.Context) {
				p.scene.Draw(p.view, p.Lights, p.threshold, p.frame.Drawables)
			},
		},
		{
			Name:   PassTransparency,
			Writes: graph.TargetHDR,
			Draw: func(*graph.Context) {
				p.clouds.Draw(p.view, p.threshold)
			},
		},
		{
			Name:   PassSkybox,
			Writes: graph.TargetHDR,
			Draw: func(*graph.Context) {
				p.skybox.Draw(p.view, p.threshold)
			},
		},
		blurPass(iterations, st),
		compositePass(st),
	}}
}

// stage resolves the post-processing stage when a pass runs.
type stage func() (*PostFX, *Targets)

// blurPass is the ping-pong bloom over the bright-pass attachment.
func blurPass(iterations int, st stage) graph.Pass {
	return graph.Pass{
		Name:    PassBlur,
		Reads:   []graph.Attachment{graph.BrightColor},
		Enabled: graph.BloomEnabled,
		Blur:    &graph.BlurSpec{Iterations: iterations, StartHorizontal: true, Source: graph.BrightColor},
		Draw: func(ctx *graph.Context) {
			fx, targets := st()
			fx.BlurStep(targets.Texture(ctx.Step.Read), ctx.Step)
		},
	}
}

// compositePass tone-maps the lit scene plus the blur result to the screen.
func compositePass(st stage) graph.Pass {
	return graph.Pass{
		Name:   PassComposite,
		Reads:  []graph.Attachment{graph.SceneColor, graph.BlurResult},
		Writes: graph.TargetScreen,
		Clear:  graph.ClearColor,
		Draw: func(ctx *graph.Context) {
			fx, targets := st()
			var bloom *rl.Texture2D
			if len(ctx.Inputs) > 1 {
				tex := targets.Texture(ctx.Inputs[1])
				bloom = &tex
			}
			fx.Composite(targets.Texture(ctx.Inputs[0]), bloom, ctx.Features)
		},
	}
}

// Render runs every pass for one frame. It must be called between
// rl.BeginDrawing and rl.EndDrawing; the composite lands on the screen.
func (p *Pipeline) Render(f Frame, features graph.Features) graph.Report {
	p.frame = f
	p.view = NewView(f.Camera, p.aspect)
	p.Lights.Point.Advance(f.Time)

	report := p.executor.Run(features)
	p.backend.release()
	return report
}

// Unload frees shaders, targets and the skybox cube. Assets belong to the library.
func (p *Pipeline) Unload() {
	p.skybox.Unload()
	for _, prog := range []*Program{p.lit, p.blend, p.sky, p.blur, p.composite} {
		prog.Unload()
	}
	p.targets.Unload()
}

// gpuBackend binds targets through raylib's texture mode.
type gpuBackend struct {
	targets    *Targets
	background func() mgl32.Vec3
	screen     *rl.RenderTexture2D // Stands in for the window when set

	active  bool
	current graph.Target
}

// Bind implements graph.Backend. Rebinding the current target is a no-op so
// consecutive passes share one texture-mode block.
func (b *gpuBackend) Bind(t graph.Target) {
	if b.active && b.current == t {
		return
	}
	b.release()
	rt, ok := b.targets.RenderTexture(t)
	if !ok && t == graph.TargetScreen && b.screen != nil {
		rt, ok = *b.screen, true
	}
	if ok {
		rl.BeginTextureMode(rt)
		b.active = true
		b.current = t
	}
}

// Clear implements graph.Backend.
func (b *gpuBackend) Clear(t graph.Target, mask graph.ClearMask) {
	switch t {
	case graph.TargetHDR:
		bg := b.background()
		b.targets.ClearHDR([3]float32{bg[0], bg[1], bg[2]}, mask&graph.ClearDepth != 0)
	default:
		if mask&graph.ClearColor != 0 {
			rl.ClearBackground(rl.Black)
		}
	}
}

func (b *gpuBackend) release() {
	if b.active {
		rl.EndTextureMode()
		b.active = false
	}
}
