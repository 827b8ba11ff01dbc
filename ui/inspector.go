package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraInfo is the camera state shown in the inspector.
type CameraInfo struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Zoom     float32
}

// ActorInfo is one actor's row in the inspector.
type ActorInfo struct {
	Name     string
	Position mgl32.Vec3
	Distance float32 // From the avatar; negative hides it
	Consumed bool
	Closest  bool
}

// InspectorData holds everything the inspector shows.
type InspectorData struct {
	Camera CameraInfo
	Actors []ActorInfo
}

// Inspector renders camera info and actor positions.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: []SectionDescriptor{cameraSection()},
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

func cameraSection() SectionDescriptor {
	cam := func(data any) CameraInfo { return data.(InspectorData).Camera }
	return SectionDescriptor{
		ID:    "camera",
		Title: "Camera",
		Fields: []FieldDescriptor{
			{ID: "position", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string { return FormatVec(cam(d).Position) }},
			{ID: "front", Label: "Front", Widget: WidgetText, TextGetter: func(d any) string { return FormatVec(cam(d).Front) }},
			{ID: "yaw_pitch", Label: "Yaw, Pitch", Widget: WidgetText, TextGetter: func(d any) string {
				c := cam(d)
				return fmt.Sprintf("(%.1f, %.1f)", c.Yaw, c.Pitch)
			}},
			{ID: "zoom", Label: "Zoom", Widget: WidgetBar, Range: FieldRange{Min: 1, Max: 45}, Getter: func(d any) float32 { return cam(d).Zoom }},
		},
	}
}

// Draw renders the inspector and returns its bottom edge.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	height := padding*2 + r.Theme.LineHeight*int32(len(data.Actors)+1) + 4
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, contentWidth)
	}

	y = r.DrawSectionHeader(ins.x+padding, y, "Actors")
	for _, a := range data.Actors {
		color := r.Theme.ValueColor
		switch {
		case a.Consumed:
			color = rl.Gray
		case a.Closest:
			color = rl.Yellow
		}
		text := fmt.Sprintf("%-10s %s", a.Name, FormatVec(a.Position))
		if a.Distance >= 0 {
			text += fmt.Sprintf("  d=%.2f", a.Distance)
		}
		if a.Consumed {
			text += "  eaten"
		}
		rl.DrawText(text, ins.x+padding, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
	return ins.y + height
}

// FormatVec formats a position for display.
func FormatVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
