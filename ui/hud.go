package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Status   []StatusLine
	Frame    uint64
	FPS      int32
	Bloom    bool
	HDR      bool
	Exposure float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d | Bloom: %s | HDR: %s | Exposure: %.2f",
			data.Frame, data.FPS, onOff(data.Bloom), onOff(data.HDR), data.Exposure),
		10, 35, 16, rl.LightGray,
	)

	y := int32(55)
	for _, line := range data.Status {
		color := rl.LightGray
		if line.Alert {
			color = h.renderer.Theme.AlertColor
		}
		rl.DrawText(line.Text, 10, y, 16, color)
		y += 20
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, phases in registry order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range phaseOrder(data) {
		avg := data.PhaseTimes[id]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		name := id
		if data.Registry != nil {
			name = data.Registry.GetName(id)
		}
		rl.DrawText(fmt.Sprintf("%-14s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}

// phaseOrder lists measured phases in frame order, unknown phases last by name.
func phaseOrder(data PerfPanelData) []string {
	var ids []string
	seen := make(map[string]bool)
	if data.Registry != nil {
		for _, id := range data.Registry.IDs() {
			if _, ok := data.PhaseTimes[id]; ok {
				ids = append(ids, id)
				seen[id] = true
			}
		}
	}
	var rest []string
	for id := range data.PhaseTimes {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}
