package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/graph"
	"github.com/pthm-cable/skyhunt/renderer"
	"github.com/pthm-cable/skyhunt/systems"
	"github.com/pthm-cable/skyhunt/ui"
)

// Draw renders the frame computed by the last Update.
func (g *Game) Draw() {
	g.applySettings()
	g.drawables = g.state.Visible(g.drawables[:0])

	rl.BeginDrawing()
	g.pipeline.Render(renderer.Frame{
		Camera:     g.camera,
		Time:       g.tick.Elapsed,
		Drawables:  g.drawables,
		Background: g.settings.Background,
	}, g.features())

	g.perfCollector.StartPhase(systems.PhaseOverlay)
	g.drawUI()
	g.perfCollector.EndFrame()
	rl.EndDrawing()
	g.perfCollector.RecordPresent()
}

// features returns the post-processing switches for this frame.
func (g *Game) features() graph.Features {
	return graph.Features{
		Bloom:    g.toggles.IsEnabled(ui.ToggleBloom),
		HDR:      g.toggles.IsEnabled(ui.ToggleHDR),
		Exposure: g.settings.Exposure,
		Gamma:    g.cfg.Render.Gamma,
	}
}

// applySettings pushes the live settings into the pipeline.
func (g *Game) applySettings() {
	pl := &g.pipeline.Lights.Point
	pl.Constant = g.settings.Constant
	pl.Linear = g.settings.Linear
	pl.Quadratic = g.settings.Quadratic
	g.pipeline.SetThreshold(g.settings.Threshold)
}
