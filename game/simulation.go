package game

import (
	"log/slog"

	"github.com/pthm-cable/skyhunt/camera"
	"github.com/pthm-cable/skyhunt/input"
	"github.com/pthm-cable/skyhunt/motion"
	"github.com/pthm-cable/skyhunt/sim"
	"github.com/pthm-cable/skyhunt/systems"
	"github.com/pthm-cable/skyhunt/ui"
)

// movement maps held actions to camera axes.
var movement = []struct {
	action input.Action
	dir    camera.Direction
}{
	{input.MoveForward, camera.Forward},
	{input.MoveBackward, camera.Backward},
	{input.MoveLeft, camera.Left},
	{input.MoveRight, camera.Right},
	{input.MoveUp, camera.Up},
	{input.MoveDown, camera.Down},
}

// Update runs one interactive frame up to, but not including, rendering.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.tick = g.clock.Tick()

	g.perfCollector.StartPhase(systems.PhaseInput)
	g.handleResize()
	g.edges.Update(keyDown)
	g.handleActions(g.tick.Delta)
	g.handleMouse()

	g.simulate()
}

// UpdateHeadless runs one frame on the fixed-step clock with no key input.
// The autopilot, when enabled, does the flying.
func (g *Game) UpdateHeadless() {
	g.step(noKeys)
}

// step runs one complete non-rendering frame with the given key state.
func (g *Game) step(down func(input.Action) bool) {
	g.perfCollector.StartFrame()
	g.tick = g.clock.Tick()

	g.perfCollector.StartPhase(systems.PhaseInput)
	g.edges.Update(down)
	g.handleActions(g.tick.Delta)

	g.simulate()
	g.perfCollector.EndFrame()
}

func noKeys(input.Action) bool { return false }

// handleActions applies edge-triggered actions, exposure and camera movement.
func (g *Game) handleActions(dt float32) {
	if g.edges.JustPressed(input.Quit) {
		g.shouldClose = true
	}
	if g.edges.JustPressed(input.Reset) {
		slog.Info("reset requested", "frame", g.tick.Frame)
		g.Reset()
	}

	for _, id := range g.toggles.HandleEdges(g.edges.JustPressed) {
		slog.Info("toggle", "name", string(id), "enabled", g.toggles.IsEnabled(id))
	}

	rate := g.cfg.Render.ExposureRate * dt
	if g.edges.Down(input.ExposureUp) {
		g.settings.Exposure += rate
	}
	if g.edges.Down(input.ExposureDown) {
		g.settings.Exposure = max(0, g.settings.Exposure-rate)
	}

	for _, m := range movement {
		if g.edges.Down(m.action) {
			g.camera.Move(m.dir, dt)
		}
	}

	if g.toggles.IsEnabled(ui.ToggleAutopilot) {
		g.autopilot.Steer(g.camera, g.state, g.outcome, dt)
	}
}

// mouseLook reports whether pointer movement turns the camera.
func (g *Game) mouseLook() bool {
	return !g.outcome.AvatarConsumed &&
		!g.toggles.IsEnabled(ui.ToggleOverlay) &&
		!g.toggles.IsEnabled(ui.ToggleCameraLock)
}

// simulate runs the transform phase then the logic phase.
func (g *Game) simulate() {
	g.perfCollector.StartPhase(systems.PhaseTransform)
	g.state.SetCurve(g.state.Avatar(), motion.Bird{Scale: g.settings.AvatarScale})
	g.state.SetAnchor(g.state.Avatar(), systems.AvatarAnchor(g.camera.Position, g.cfg.Scene.AvatarOffset))
	g.motion.Update(g.state, sim.Frame{Number: g.tick.Frame, Time: g.tick.Elapsed})

	g.perfCollector.StartPhase(systems.PhaseLogic)
	g.outcome = g.predation.Update(g.state)
	g.recordOutcome()
}
