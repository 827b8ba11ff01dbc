package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/input"
	"github.com/pthm-cable/skyhunt/ui"
)

// bindings maps each action to the keys that trigger it.
var bindings = map[input.Action][]int32{
	input.MoveForward:      {rl.KeyW},
	input.MoveBackward:     {rl.KeyS},
	input.MoveLeft:         {rl.KeyA},
	input.MoveRight:        {rl.KeyD},
	input.MoveUp:           {rl.KeySpace},
	input.MoveDown:         {rl.KeyLeftShift},
	input.Reset:            {rl.KeyR},
	input.ToggleOverlay:    {rl.KeyF1},
	input.ToggleCameraLock: {rl.KeyC},
	input.ToggleBloom:      {rl.KeyB},
	input.ToggleHDR:        {rl.KeyH},
	input.ExposureUp:       {rl.KeyX},
	input.ExposureDown:     {rl.KeyZ},
	input.ToggleAutopilot:  {rl.KeyP},
	input.Quit:             {rl.KeyEscape},
}

// controlsLegend is shown at the bottom of the screen.
const controlsLegend = "WASD: Move | Space/Shift: Up/Down | Mouse: Look | Wheel: Zoom | Z/X: Exposure | B: Bloom | H: HDR | C: Lock | P: Autopilot | R: Reset | F1: Overlay | Esc: Quit"

// keyDown samples the current key state for an action.
func keyDown(a input.Action) bool {
	for _, key := range bindings[a] {
		if rl.IsKeyDown(key) {
			return true
		}
	}
	return false
}

// handleMouse applies pointer look and wheel zoom.
func (g *Game) handleMouse() {
	if g.mouseLook() {
		delta := rl.GetMouseDelta()
		// Screen y grows downward
		g.camera.Look(delta.X, -delta.Y, true)
	}

	// The overlay's widgets own the wheel while it is open
	if !g.toggles.IsEnabled(ui.ToggleOverlay) {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			g.camera.Scroll(wheel)
		}
	}
}

// handleResize warns when the window size changes. Render targets keep the
// size they were created with.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == g.width && h == g.height {
		return
	}
	slog.Warn("window resized; render targets are not resized",
		"width", w, "height", h,
		"target_width", g.width, "target_height", g.height,
	)
}
