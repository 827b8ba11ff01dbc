package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// DevSettings are the values the developer panel edits in place.
type DevSettings struct {
	Background mgl32.Vec3 // Linear [0,1] clear color

	// Point light attenuation
	Constant  float32
	Linear    float32
	Quadratic float32

	Threshold   float32 // Bright-pass cut-off
	Exposure    float32
	AvatarScale float32
}

// Attenuation ranges for the sliders.
const (
	maxConstant  = 2
	maxLinear    = 1
	maxQuadratic = 1
	maxExposure  = 5
	maxThreshold = 4

	minAvatarScale = 0.1
	maxAvatarScale = 4
)

// ControlsPanel renders the developer panel: raygui editors for the live
// settings and the toggle legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel and applies edits to s and toggles. Returns the
// panel's bottom edge.
func (c *ControlsPanel) Draw(s *DevSettings, toggles *ToggleRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	line := r.Theme.LineHeight
	inner := float32(c.width - padding*2)

	toggleRows := int32(len(toggles.All()) + len(toggles.Categories()))
	height := padding*2 + line + // title
		line + 140 + 8 + // color picker
		6*(line+24) + // sliders
		toggleRows*line + 8
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + padding)
	y := c.y + padding
	rl.DrawText("Developer", c.x+padding, y, 16, rl.White)
	y += line + 4

	// Background color
	y = r.DrawSectionHeader(c.x+padding, y, "Background")
	current := toColor(s.Background)
	// Written back only on change; the picker is 8-bit
	if picked := gui.ColorPicker(rl.Rectangle{X: x, Y: float32(y), Width: inner - 30, Height: 140}, "", current); picked != current {
		s.Background = fromColor(picked)
	}
	y += 140 + 8

	slider := func(label string, value, lo, hi float32) float32 {
		rl.DrawText(fmt.Sprintf("%s: %.3f", label, value), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += line
		v := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: inner - 60, Height: 16},
			fmt.Sprint(lo), fmt.Sprint(hi), value, lo, hi)
		y += 24
		return v
	}
	s.Constant = slider("pointLight.constant", s.Constant, 0, maxConstant)
	s.Linear = slider("pointLight.linear", s.Linear, 0, maxLinear)
	s.Quadratic = slider("pointLight.quadratic", s.Quadratic, 0, maxQuadratic)
	s.Exposure = slider("Exposure", s.Exposure, 0, maxExposure)
	s.Threshold = slider("Bright threshold", s.Threshold, 0, maxThreshold)
	s.AvatarScale = slider("Model scale", s.AvatarScale, minAvatarScale, maxAvatarScale)

	// Toggles as checkboxes, grouped by category
	for _, cat := range toggles.Categories() {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(cat))
		for _, desc := range toggles.ByCategory(cat) {
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			on := gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}, label, toggles.IsEnabled(desc.ID))
			if on != toggles.IsEnabled(desc.ID) {
				toggles.SetEnabled(desc.ID, on)
			}
			y += line
		}
	}
	return c.y + height
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "view":
		return "View"
	case "render":
		return "Render"
	default:
		return cat
	}
}

// toColor converts a linear [0,1] color to 8-bit, clamping out-of-range channels.
func toColor(c mgl32.Vec3) rl.Color {
	to8 := func(v float32) uint8 { return uint8(max(0, min(1, v))*255 + 0.5) }
	return rl.Color{R: to8(c.X()), G: to8(c.Y()), B: to8(c.Z()), A: 255}
}

func fromColor(c rl.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
