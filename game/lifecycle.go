package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/skyhunt/persist"
	"github.com/pthm-cable/skyhunt/systems"
	"github.com/pthm-cable/skyhunt/telemetry"
	"github.com/pthm-cable/skyhunt/ui"
)

// Reset restores every consumable actor, the target count and the camera's
// origin pose, and re-enables mouse look.
func (g *Game) Reset() {
	g.predation.Reset(g.state)
	g.camera.Reset()
	g.toggles.SetEnabled(ui.ToggleCameraLock, false)
	g.outcome = g.idleOutcome()

	g.collector.RecordReset()
	g.emit(telemetry.ResetEvent(g.tick.Frame, g.tick.Elapsed, g.state.Total()))
}

// idleOutcome is the outcome reported before the first logic update after
// startup or a reset.
func (g *Game) idleOutcome() systems.Outcome {
	return systems.Outcome{
		Frame:            g.tick.Frame,
		PredatorDistance: float32(math.Inf(1)),
		ClosestIndex:     -1,
		ClosestDistance:  float32(math.Inf(1)),
		Remaining:        g.state.Remaining(),
		Total:            g.state.Total(),
	}
}

// sessionDefaults is the record used when no state file exists.
func (g *Game) sessionDefaults() persist.State {
	return persist.State{
		Background:     toArray(g.cfg.Persist.Background),
		CameraPosition: toArray(g.camera.Origin.Position),
		CameraFront:    toArray(g.camera.Front),
	}
}

// loadSession applies the persisted record over the configured defaults.
// A missing or damaged file is not an error for the session.
func (g *Game) loadSession() {
	path := g.cfg.Persist.Path
	s, err := persist.Load(path, g.sessionDefaults())
	if err != nil {
		slog.Debug("session state fallback", "path", path, "error", err)
	}

	g.settings.Background = fromArray(s.Background)
	g.toggles.SetEnabled(ui.ToggleOverlay, s.OverlayEnabled)
	g.camera.Position = fromArray(s.CameraPosition)
	g.camera.SetFront(fromArray(s.CameraFront))
}

// saveSession writes the current record.
func (g *Game) saveSession() {
	s := persist.State{
		Background:     toArray(g.settings.Background),
		OverlayEnabled: g.toggles.IsEnabled(ui.ToggleOverlay),
		CameraPosition: toArray(g.camera.Position),
		CameraFront:    toArray(g.camera.Front),
	}
	if err := persist.Save(g.cfg.Persist.Path, s); err != nil {
		slog.Warn("failed to save session state", "path", g.cfg.Persist.Path, "error", err)
		return
	}
	slog.Debug("session state saved", "path", g.cfg.Persist.Path)
}
