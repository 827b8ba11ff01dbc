package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/ui"
)

// drawUI renders the HUD and, when enabled, the developer overlay.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:    g.cfg.Screen.Title,
		Status:   ui.StatusLines(g.outcome),
		Frame:    g.tick.Frame,
		FPS:      rl.GetFPS(),
		Bloom:    g.toggles.IsEnabled(ui.ToggleBloom),
		HDR:      g.toggles.IsEnabled(ui.ToggleHDR),
		Exposure: g.settings.Exposure,
	})
	g.hud.DrawControls(g.height, controlsLegend)

	if g.toggles.IsEnabled(ui.ToggleOverlay) {
		g.controls.Draw(&g.settings, g.toggles)

		bottom := g.inspector.Draw(g.inspectorData())

		stats := g.perfCollector.Stats()
		g.perfPanel.SetPosition(g.width-340, bottom+10)
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseTimes: stats.PhaseAvg,
			Total:      stats.AvgFrameDuration,
			Registry:   g.registry,
		})
	}

	// Checkboxes can change the overlay too
	g.syncCursor()
}

// syncCursor frees the cursor while the overlay is open and captures it
// for mouse look otherwise.
func (g *Game) syncCursor() {
	free := g.toggles.IsEnabled(ui.ToggleOverlay)
	if free == g.cursorFree {
		return
	}
	g.cursorFree = free
	if free {
		rl.EnableCursor()
	} else {
		rl.DisableCursor()
	}
}
