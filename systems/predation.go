package systems

import (
	"math"

	"github.com/pthm-cable/skyhunt/sim"
)

// Distance thresholds in world units.
const (
	PredatorThreshold = 5 // Predator closer than this consumes the avatar
	TargetThreshold   = 4 // Avatar closer than this consumes a target
	AlertThreshold    = 8 // Closer than this raises a proximity alert
)

// Outcome is the result of one logic update.
type Outcome struct {
	Frame uint64

	AvatarConsumed     bool  // Avatar state after the update
	AvatarJustConsumed bool  // Avatar went from Alive to Consumed this update
	ConsumedTargets    []int // Target indices consumed this update, ascending

	PredatorDistance float32

	// Closest Alive target. ClosestIndex is -1 and ClosestDistance +Inf
	// when no target is Alive.
	ClosestIndex    int
	ClosestDistance float32
	HasClosest      bool

	TargetAlert   bool
	PredatorAlert bool

	Remaining int
	Total     int
}

// AllConsumed reports whether every target has been eaten.
func (o Outcome) AllConsumed() bool {
	return o.Total > 0 && o.Remaining == 0
}

// PredationSystem is the logic phase: proximity consumption and alerts.
// It only reads positions from the state's committed frame.
type PredationSystem struct {
	consumed []int // Reused between updates
}

// NewPredationSystem creates a predation system.
func NewPredationSystem() *PredationSystem {
	return &PredationSystem{}
}

// Update applies the consumption rules in order: predator vs avatar, avatar vs
// targets, then the closest-target query and alerts.
func (s *PredationSystem) Update(st *sim.State) Outcome {
	frame, _ := st.Committed()
	out := Outcome{Frame: frame.Number, Total: st.Total()}

	avatar := st.Avatar()
	avatarPos := st.Position(avatar)

	// 1. Predator vs avatar
	out.PredatorDistance = avatarPos.Sub(st.Position(st.Predator())).Len()
	if out.PredatorDistance < PredatorThreshold {
		out.AvatarJustConsumed = st.Consume(avatar)
	}
	out.AvatarConsumed = st.Consumed(avatar)

	// 2. Avatar vs targets. Avatar consumption does not gate this step.
	s.consumed = s.consumed[:0]
	for i, e := range st.Targets() {
		if st.Consumed(e) {
			continue
		}
		if avatarPos.Sub(st.Position(e)).Len() < TargetThreshold && st.Consume(e) {
			s.consumed = append(s.consumed, i)
		}
	}
	if len(s.consumed) > 0 {
		out.ConsumedTargets = append([]int(nil), s.consumed...)
	}

	// 3. Closest Alive target
	out.ClosestIndex, out.ClosestDistance, out.HasClosest = Closest(st)

	// 4. Alerts
	out.TargetAlert = out.HasClosest && out.ClosestDistance < AlertThreshold
	out.PredatorAlert = out.PredatorDistance < AlertThreshold

	out.Remaining = st.Remaining()
	return out
}

// Closest returns the index and distance of the Alive target nearest the avatar.
// With no Alive targets it returns (-1, +Inf, false).
func Closest(st *sim.State) (int, float32, bool) {
	avatarPos := st.Position(st.Avatar())
	best := -1
	bestDist := float32(math.Inf(1))
	for i, e := range st.Targets() {
		if st.Consumed(e) {
			continue
		}
		if d := avatarPos.Sub(st.Position(e)).Len(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist, best >= 0
}

// Reset returns every consumable actor to Alive and restores the target count.
func (s *PredationSystem) Reset(st *sim.State) {
	st.ResetConsumption()
	s.consumed = s.consumed[:0]
}
