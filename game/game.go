// Package game runs the session: it samples input, advances the simulation
// through the transform and logic phases, and drives the render pipeline and
// overlay. Headless sessions skip everything that needs a window.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/assets"
	"github.com/pthm-cable/skyhunt/camera"
	"github.com/pthm-cable/skyhunt/clock"
	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/input"
	"github.com/pthm-cable/skyhunt/renderer"
	"github.com/pthm-cable/skyhunt/sim"
	"github.com/pthm-cable/skyhunt/systems"
	"github.com/pthm-cable/skyhunt/telemetry"
	"github.com/pthm-cable/skyhunt/ui"
)

// Game holds the complete session state.
type Game struct {
	cfg  *config.Config
	opts Options

	// Simulation
	state     *sim.State
	camera    *camera.Camera
	clock     *clock.Clock
	edges     input.Edges
	motion    *systems.MotionSystem
	predation *systems.PredationSystem
	autopilot *systems.Autopilot
	registry  *systems.SystemRegistry

	tick    clock.Tick
	outcome systems.Outcome

	// Live settings edited by keys and the developer panel
	settings ui.DevSettings
	toggles  *ui.ToggleRegistry

	// Rendering (nil when headless)
	lib       *assets.Library
	pipeline  *renderer.Pipeline
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel
	drawables []sim.Drawable

	cursorFree    bool
	width, height int32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	events        []telemetry.Event

	shouldClose bool
}

// NewGame creates an interactive game with default options.
func NewGame() *Game {
	return NewGameWithOptions(DefaultOptions())
}

// NewGameWithOptions creates a game. Unless opts.Headless is set the window
// must already be open and InitGL must have succeeded.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	cam := newCamera(cfg)
	layout := sim.Layout{
		PredatorAnchor: cfg.Scene.PredatorAnchor,
		BalloonAnchor:  cfg.Scene.BalloonAnchor,
		AvatarAnchor:   systems.AvatarAnchor(cam.Position, cfg.Scene.AvatarOffset),
		AvatarProbe:    cfg.Scene.AvatarProbe,
		AvatarScale:    cfg.Scene.AvatarScale,
		Targets:        cfg.Scene.Targets,
	}

	var src clock.TimeSource = clock.SourceFunc(rl.GetTime)
	if opts.Headless {
		src = clock.NewFixed(cfg.Headless.DT)
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		state:     sim.New(layout),
		camera:    cam,
		clock:     clock.New(src),
		motion:    systems.NewMotionSystem(),
		predation: systems.NewPredationSystem(),
		autopilot: systems.NewAutopilot(cfg.Scene.AvatarOffset, cfg.Scene.AvatarProbe),
		registry:  systems.NewSystemRegistry(),
		toggles:   ui.NewToggleRegistry(),
		settings: ui.DevSettings{
			Background:  cfg.Persist.Background,
			Constant:    cfg.Lighting.Point.Constant,
			Linear:      cfg.Lighting.Point.Linear,
			Quadratic:   cfg.Lighting.Point.Quadratic,
			Threshold:   cfg.Render.BrightThreshold,
			Exposure:    cfg.Render.Exposure,
			AvatarScale: cfg.Scene.AvatarScale,
		},
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		width:         int32(cfg.Screen.Width),
		height:        int32(cfg.Screen.Height),
	}
	g.outcome = g.idleOutcome()

	g.toggles.SetEnabled(ui.ToggleBloom, cfg.Render.Bloom)
	g.toggles.SetEnabled(ui.ToggleHDR, cfg.Render.HDR)
	g.toggles.SetEnabled(ui.ToggleAutopilot, opts.Headless && cfg.Headless.Autopilot)

	if opts.Persist {
		g.loadSession()
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.initGraphics()
	}
	return g
}

// newCamera builds the fly camera from its configured origin pose.
func newCamera(cfg *config.Config) *camera.Camera {
	c := cfg.Camera
	cam := camera.New(camera.Pose{Position: c.Position, Yaw: c.Yaw, Pitch: c.Pitch, Zoom: c.Zoom})
	cam.MinZoom, cam.MaxZoom = c.MinZoom, c.MaxZoom
	cam.Speed = c.Speed
	cam.Sensitivity = c.Sensitivity
	cam.Near, cam.Far = c.Near, c.Far
	cam.Reset()
	return cam
}

// initGraphics acquires GPU resources and the overlay widgets.
func (g *Game) initGraphics() {
	g.lib = assets.NewLibrary()
	g.pipeline = renderer.NewPipeline(g.cfg, g.lib)
	g.pipeline.OnPass(g.perfCollector.StartPhase)
	if failures := g.lib.Failures(); len(failures) > 0 {
		slog.Warn("scene incomplete", "missing_assets", len(failures))
	}

	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 140, 280)
	g.inspector = ui.NewInspector(g.width-340, 10, 330)
	g.perfPanel = ui.NewPerfPanel(g.width-340, 10)

	// Force the first sync
	g.cursorFree = !g.toggles.IsEnabled(ui.ToggleOverlay)
	g.syncCursor()
}

// Unload saves the session record and releases all resources.
func (g *Game) Unload() {
	if g.opts.Persist {
		g.saveSession()
	}
	if g.pipeline != nil {
		g.pipeline.Unload()
	}
	if g.lib != nil {
		g.lib.Unload()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output files", "error", err)
		}
	}
}

// Frame returns the current frame number.
func (g *Game) Frame() uint64 { return g.tick.Frame }

// Elapsed returns the seconds since the session started.
func (g *Game) Elapsed() float32 { return g.tick.Elapsed }

// Outcome returns the latest logic outcome.
func (g *Game) Outcome() systems.Outcome { return g.outcome }

// State returns the simulation state.
func (g *Game) State() *sim.State { return g.state }

// Camera returns the fly camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// ShouldClose reports whether the quit action was pressed.
func (g *Game) ShouldClose() bool { return g.shouldClose }
