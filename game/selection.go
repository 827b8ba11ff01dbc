package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skyhunt/ui"
)

// inspectorData collects the camera and per-actor rows for the inspector.
// Distances are measured from the avatar's probe; the closest Alive target
// is highlighted.
func (g *Game) inspectorData() ui.InspectorData {
	cam := g.camera
	data := ui.InspectorData{
		Camera: ui.CameraInfo{
			Position: cam.Position,
			Front:    cam.Front,
			Yaw:      cam.Yaw,
			Pitch:    cam.Pitch,
			Zoom:     cam.Zoom,
		},
	}

	st := g.state
	avatarPos := st.Position(st.Avatar())
	row := func(e ecs.Entity, withDistance bool) ui.ActorInfo {
		pos := st.Position(e)
		info := ui.ActorInfo{
			Name:     st.Actor(e).Name,
			Position: pos,
			Distance: -1,
			Consumed: st.Consumed(e),
		}
		if withDistance {
			info.Distance = pos.Sub(avatarPos).Len()
		}
		return info
	}

	data.Actors = append(data.Actors, row(st.Avatar(), false))
	data.Actors = append(data.Actors, row(st.Predator(), true))
	for i, e := range st.Targets() {
		info := row(e, true)
		info.Name = fmt.Sprintf("%s %d", info.Name, i+1)
		info.Closest = g.outcome.HasClosest && g.outcome.ClosestIndex == i
		data.Actors = append(data.Actors, info)
	}
	for _, e := range st.Decor() {
		data.Actors = append(data.Actors, row(e, true))
	}
	return data
}
