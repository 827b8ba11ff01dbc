package game

import (
	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/telemetry"
)

// Options configures a game instance.
type Options struct {
	Headless  bool   // No window, fixed-step clock, no GPU resources
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	LogStats  bool   // Log window stats and perf via slog

	// Config overrides the global configuration when non-nil.
	Config *config.Config

	// Persist loads the session record at startup and saves it on Unload.
	Persist bool

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// DefaultOptions returns the options for an interactive session.
func DefaultOptions() Options {
	return Options{Persist: true}
}
