// Package input turns sampled key state into logical actions and edge events.
package input

// Action is a logical input, independent of the key bound to it.
type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	Reset
	ToggleOverlay
	ToggleCameraLock
	ToggleBloom
	ToggleHDR
	ExposureUp
	ExposureDown
	ToggleAutopilot
	Quit

	actionCount
)

var actionNames = [actionCount]string{
	MoveForward:      "move_forward",
	MoveBackward:     "move_backward",
	MoveLeft:         "move_left",
	MoveRight:        "move_right",
	MoveUp:           "move_up",
	MoveDown:         "move_down",
	Reset:            "reset",
	ToggleOverlay:    "toggle_overlay",
	ToggleCameraLock: "toggle_camera_lock",
	ToggleBloom:      "toggle_bloom",
	ToggleHDR:        "toggle_hdr",
	ExposureUp:       "exposure_up",
	ExposureDown:     "exposure_down",
	ToggleAutopilot:  "toggle_autopilot",
	Quit:             "quit",
}

// String returns the action's name.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// Actions returns every action in declaration order.
func Actions() []Action {
	all := make([]Action, actionCount)
	for i := range all {
		all[i] = Action(i)
	}
	return all
}

// Edges tracks held state per action across frames. A toggle fires once on the
// released-to-pressed transition and never again while the key stays down.
type Edges struct {
	prev [actionCount]bool
	cur  [actionCount]bool
}

// Update records this frame's state. down is asked once per action.
func (e *Edges) Update(down func(Action) bool) {
	e.prev = e.cur
	for a := Action(0); a < actionCount; a++ {
		e.cur[a] = down(a)
	}
}

// Down reports whether the action is held this frame.
func (e *Edges) Down(a Action) bool {
	return a < actionCount && e.cur[a]
}

// JustPressed reports whether the action went down this frame.
func (e *Edges) JustPressed(a Action) bool {
	return a < actionCount && e.cur[a] && !e.prev[a]
}

// Clear forgets all held state, e.g. after the window loses focus.
func (e *Edges) Clear() {
	e.prev = [actionCount]bool{}
	e.cur = [actionCount]bool{}
}
