package ui

import (
	"github.com/pthm-cable/skyhunt/input"
)

// ToggleID uniquely identifies a switchable feature.
type ToggleID string

// Standard toggle IDs.
const (
	ToggleOverlay    ToggleID = "overlay"
	ToggleCameraLock ToggleID = "camera_lock"
	ToggleBloom      ToggleID = "bloom"
	ToggleHDR        ToggleID = "hdr"
	ToggleAutopilot  ToggleID = "autopilot"
)

// ToggleDescriptor defines a feature that can be switched on and off.
type ToggleDescriptor struct {
	ID          ToggleID
	Name        string
	Description string
	Action      input.Action // Edge-triggered action that flips it
	KeyLabel    string
	Category    string // Grouping (e.g., "view", "render")
	Exclusive   []ToggleID
}

// ToggleRegistry holds toggle state and metadata.
type ToggleRegistry struct {
	descriptors []ToggleDescriptor
	byID        map[ToggleID]ToggleDescriptor
	enabled     map[ToggleID]bool
}

// NewToggleRegistry creates a registry with the default toggles, all off.
func NewToggleRegistry() *ToggleRegistry {
	reg := &ToggleRegistry{
		byID:    make(map[ToggleID]ToggleDescriptor),
		enabled: make(map[ToggleID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *ToggleRegistry) registerDefaults() {
	r.Register(ToggleDescriptor{
		ID:          ToggleOverlay,
		Name:        "Developer Overlay",
		Description: "Panels for lights, camera and actors; frees the cursor",
		Action:      input.ToggleOverlay,
		KeyLabel:    "F1",
		Category:    "view",
	})
	r.Register(ToggleDescriptor{
		ID:          ToggleCameraLock,
		Name:        "Camera Lock",
		Description: "Ignore mouse look",
		Action:      input.ToggleCameraLock,
		KeyLabel:    "C",
		Category:    "view",
	})
	r.Register(ToggleDescriptor{
		ID:          ToggleAutopilot,
		Name:        "Autopilot",
		Description: "Steer toward the closest insect",
		Action:      input.ToggleAutopilot,
		KeyLabel:    "P",
		Category:    "view",
	})
	r.Register(ToggleDescriptor{
		ID:          ToggleBloom,
		Name:        "Bloom",
		Description: "Blur the bright-pass into the composite",
		Action:      input.ToggleBloom,
		KeyLabel:    "B",
		Category:    "render",
	})
	r.Register(ToggleDescriptor{
		ID:          ToggleHDR,
		Name:        "HDR",
		Description: "Exposure tone mapping instead of clamping",
		Action:      input.ToggleHDR,
		KeyLabel:    "H",
		Category:    "render",
	})
}

// Register adds a toggle to the registry.
func (r *ToggleRegistry) Register(desc ToggleDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle flips a toggle and returns its new state.
func (r *ToggleRegistry) Toggle(id ToggleID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled sets a toggle's state, turning off its exclusive partners when enabling.
func (r *ToggleRegistry) SetEnabled(id ToggleID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether a toggle is on.
func (r *ToggleRegistry) IsEnabled(id ToggleID) bool {
	return r.enabled[id]
}

// All returns all toggles in registration order.
func (r *ToggleRegistry) All() []ToggleDescriptor {
	return r.descriptors
}

// ByCategory returns toggles filtered by category.
func (r *ToggleRegistry) ByCategory(category string) []ToggleDescriptor {
	var result []ToggleDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *ToggleRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleEdges flips every toggle whose action was just pressed.
// Returns the toggles that changed.
func (r *ToggleRegistry) HandleEdges(justPressed func(input.Action) bool) []ToggleID {
	var changed []ToggleID
	for _, desc := range r.descriptors {
		if justPressed(desc.Action) {
			r.Toggle(desc.ID)
			changed = append(changed, desc.ID)
		}
	}
	return changed
}
