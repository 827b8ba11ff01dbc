// Package sim owns every actor in the scene and the consumption counters.
package sim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/skyhunt/components"
	"github.com/pthm-cable/skyhunt/motion"
)

// Layout is the authored placement of the scene's actors.
type Layout struct {
	PredatorAnchor mgl32.Vec3
	BalloonAnchor  mgl32.Vec3
	AvatarAnchor   mgl32.Vec3 // Initial anchor; follows the camera afterwards
	// AvatarProbe is added to the avatar's model origin for every distance
	// check. The origin carries the vertical bob, so the probe bobs with it.
	AvatarProbe mgl32.Vec3
	AvatarScale float32
	Targets     []mgl32.Vec3
}

// Frame identifies a committed set of transforms.
type Frame struct {
	Number uint64
	Time   float32 // Elapsed seconds the transforms were computed for
}

// Pose is one actor's output from the transform phase.
type Pose struct {
	Entity    ecs.Entity
	Transform mgl32.Mat4
	Position  mgl32.Vec3
}

// Drawable is a visible actor for the renderer.
type Drawable struct {
	Mesh      components.Mesh
	Transform mgl32.Mat4
}

// State holds the ECS world and the ordered actor handles.
type State struct {
	world *ecs.World

	plainMapper *ecs.Map4[
		components.Actor,
		components.Position,
		components.Transform,
		components.Motion,
	]
	consumableMapper *ecs.Map5[
		components.Actor,
		components.Position,
		components.Transform,
		components.Motion,
		components.Consumable,
	]
	actorFilter *ecs.Filter4[
		components.Actor,
		components.Position,
		components.Transform,
		components.Motion,
	]

	actorMap      *ecs.Map1[components.Actor]
	posMap        *ecs.Map1[components.Position]
	transformMap  *ecs.Map1[components.Transform]
	motionMap     *ecs.Map1[components.Motion]
	consumableMap *ecs.Map[components.Consumable]

	predator ecs.Entity
	avatar   ecs.Entity
	targets  []ecs.Entity // Authored order
	decor    []ecs.Entity

	remaining int
	committed Frame
	hasFrame  bool
}

// New creates the world and spawns every actor from the layout.
func New(layout Layout) *State {
	world := ecs.NewWorld()

	s := &State{
		world: world,
		plainMapper: ecs.NewMap4[
			components.Actor,
			components.Position,
			components.Transform,
			components.Motion,
		](world),
		consumableMapper: ecs.NewMap5[
			components.Actor,
			components.Position,
			components.Transform,
			components.Motion,
			components.Consumable,
		](world),
		actorFilter: ecs.NewFilter4[
			components.Actor,
			components.Position,
			components.Transform,
			components.Motion,
		](world),
		actorMap:      ecs.NewMap1[components.Actor](world),
		posMap:        ecs.NewMap1[components.Position](world),
		transformMap:  ecs.NewMap1[components.Transform](world),
		motionMap:     ecs.NewMap1[components.Motion](world),
		consumableMap: ecs.NewMap[components.Consumable](world),
	}

	s.decor = append(s.decor, s.spawn(
		components.Actor{Role: components.RoleDecorative, Name: "balloon", Mesh: components.MeshBalloon},
		components.Motion{Curve: motion.Balloon{}, Anchor: layout.BalloonAnchor},
	))
	s.predator = s.spawn(
		components.Actor{Role: components.RolePredator, Name: "falcon", Mesh: components.MeshFalcon},
		components.Motion{Curve: motion.Falcon{}, Anchor: layout.PredatorAnchor},
	)
	s.avatar = s.spawnConsumable(
		components.Actor{Role: components.RoleAvatar, Name: "bird", Mesh: components.MeshBird},
		components.Motion{Curve: motion.Bird{Scale: layout.AvatarScale}, Anchor: layout.AvatarAnchor, Probe: layout.AvatarProbe},
	)
	for i, anchor := range layout.Targets {
		s.targets = append(s.targets, s.spawnConsumable(
			components.Actor{Role: components.RoleTarget, Index: i, Name: "insect", Mesh: components.MeshInsect},
			components.Motion{Curve: motion.Insect{Index: i}, Anchor: anchor},
		))
	}
	s.remaining = len(s.targets)

	return s
}

// spawn creates an actor without consumption state.
func (s *State) spawn(actor components.Actor, m components.Motion) ecs.Entity {
	pos, xf := initialPose(m)
	return s.plainMapper.NewEntity(&actor, &pos, &xf, &m)
}

// spawnConsumable creates an actor that starts Alive.
func (s *State) spawnConsumable(actor components.Actor, m components.Motion) ecs.Entity {
	pos, xf := initialPose(m)
	c := components.Consumable{}
	return s.consumableMapper.NewEntity(&actor, &pos, &xf, &m, &c)
}

// initialPose evaluates the curve at t=0 so positions are meaningful before the first commit.
func initialPose(m components.Motion) (components.Position, components.Transform) {
	xf := motion.Transform(m.Curve, 0, m.Anchor)
	return components.Position{Vec3: motion.Translation(xf).Add(m.Probe)},
		components.Transform{Mat4: xf}
}

// Predator returns the predator entity.
func (s *State) Predator() ecs.Entity { return s.predator }

// Avatar returns the avatar entity.
func (s *State) Avatar() ecs.Entity { return s.avatar }

// Targets returns target entities in authored order. Callers must not modify the slice.
func (s *State) Targets() []ecs.Entity { return s.targets }

// Decor returns decorative entities.
func (s *State) Decor() []ecs.Entity { return s.decor }

// Total returns the number of targets.
func (s *State) Total() int { return len(s.targets) }

// Remaining returns the number of targets not yet consumed.
func (s *State) Remaining() int { return s.remaining }

// Actor returns an entity's identity.
func (s *State) Actor(e ecs.Entity) components.Actor {
	return *s.actorMap.Get(e)
}

// Position returns an entity's logic position from the last commit.
func (s *State) Position(e ecs.Entity) mgl32.Vec3 {
	return s.posMap.Get(e).Vec3
}

// Transform returns an entity's world transform from the last commit.
func (s *State) Transform(e ecs.Entity) mgl32.Mat4 {
	return s.transformMap.Get(e).Mat4
}

// SetAnchor moves an actor's motion anchor. Takes effect at the next transform phase.
func (s *State) SetAnchor(e ecs.Entity, anchor mgl32.Vec3) {
	s.motionMap.Get(e).Anchor = anchor
}

// SetCurve replaces an actor's motion curve. Takes effect at the next transform phase.
func (s *State) SetCurve(e ecs.Entity, c motion.Curve) {
	s.motionMap.Get(e).Curve = c
}

// Consumed reports whether e has been consumed. Actors without consumption state never are.
func (s *State) Consumed(e ecs.Entity) bool {
	if !s.consumableMap.Has(e) {
		return false
	}
	return s.consumableMap.Get(e).Consumed
}

// Consume moves e from Alive to Consumed. It reports whether the state changed;
// consuming an already consumed or non-consumable actor is a no-op.
func (s *State) Consume(e ecs.Entity) bool {
	if !s.consumableMap.Has(e) {
		return false
	}
	c := s.consumableMap.Get(e)
	if c.Consumed {
		return false
	}
	c.Consumed = true
	if s.actorMap.Get(e).Role == components.RoleTarget {
		s.remaining--
	}
	return true
}

// ResetConsumption returns the avatar and every target to Alive.
func (s *State) ResetConsumption() {
	s.consumableMap.Get(s.avatar).Consumed = false
	for _, e := range s.targets {
		s.consumableMap.Get(e).Consumed = false
	}
	s.remaining = len(s.targets)
}

// EachMotion calls fn for every actor with its current motion.
func (s *State) EachMotion(fn func(e ecs.Entity, m *components.Motion)) {
	query := s.actorFilter.Query()
	for query.Next() {
		_, _, _, m := query.Get()
		fn(query.Entity(), m)
	}
}

// Commit publishes a complete set of poses as the given frame. Logic only ever
// observes committed frames, never a partially written one.
func (s *State) Commit(frame Frame, poses []Pose) {
	for i := range poses {
		p := &poses[i]
		s.transformMap.Get(p.Entity).Mat4 = p.Transform
		s.posMap.Get(p.Entity).Vec3 = p.Position
	}
	s.committed = frame
	s.hasFrame = true
}

// Committed returns the last committed frame and whether any commit has happened.
func (s *State) Committed() (Frame, bool) {
	return s.committed, s.hasFrame
}

// Visible returns the drawables for every actor that has not been consumed,
// decor first, then predator, avatar and targets in order.
func (s *State) Visible(dst []Drawable) []Drawable {
	dst = dst[:0]
	add := func(e ecs.Entity) {
		if s.Consumed(e) {
			return
		}
		dst = append(dst, Drawable{Mesh: s.actorMap.Get(e).Mesh, Transform: s.Transform(e)})
	}
	for _, e := range s.decor {
		add(e)
	}
	add(s.predator)
	add(s.avatar)
	for _, e := range s.targets {
		add(e)
	}
	return dst
}
