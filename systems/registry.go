package systems

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "sim", "render")
}

// Phase IDs, in frame order.
const (
	PhaseInput        = "input"
	PhaseTransform    = "transform"
	PhaseLogic        = "logic"
	PhaseGeometry     = "geometry"
	PhaseTransparency = "transparency"
	PhaseSkybox       = "skybox"
	PhaseBlur         = "blur"
	PhaseComposite    = "composite"
	PhaseOverlay      = "overlay"
)

// SystemRegistry holds metadata about all frame phases.
// This centralizes naming so the overlay and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases to the registry.
// Update this when adding new passes or systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseInput, Name: "Input", Description: "Samples keys and pointer, moves the camera", Category: "sim"})
	r.Register(SystemInfo{ID: PhaseTransform, Name: "Transform", Description: "Evaluates motion curves and commits poses", Category: "sim"})
	r.Register(SystemInfo{ID: PhaseLogic, Name: "Logic", Description: "Consumption rules and proximity alerts", Category: "sim"})

	r.Register(SystemInfo{ID: PhaseGeometry, Name: "Geometry", Description: "Lit models into the HDR target", Category: "render"})
	r.Register(SystemInfo{ID: PhaseTransparency, Name: "Transparency", Description: "Blended cloud billboards", Category: "render"})
	r.Register(SystemInfo{ID: PhaseSkybox, Name: "Skybox", Description: "Cubemap at the far plane", Category: "render"})

	r.Register(SystemInfo{ID: PhaseBlur, Name: "Blur", Description: "Ping-pong Gaussian bloom", Category: "post"})
	r.Register(SystemInfo{ID: PhaseComposite, Name: "Composite", Description: "Tone map and gamma to the screen", Category: "post"})

	r.Register(SystemInfo{ID: PhaseOverlay, Name: "Overlay", Description: "Developer panels and game status", Category: "ui"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns phases filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories in registration order.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
