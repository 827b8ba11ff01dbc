package game

import (
	"log/slog"

	"github.com/pthm-cable/skyhunt/telemetry"
)

// recordOutcome turns the latest logic outcome into events and window stats.
func (g *Game) recordOutcome() {
	g.events = telemetry.EventsFrom(g.events[:0], g.outcome, g.tick.Elapsed)
	for _, ev := range g.events {
		g.logEvent(ev)
	}
	if len(g.events) > 0 && g.outputManager != nil {
		if err := g.outputManager.WriteEvents(g.events); err != nil {
			slog.Error("failed to write events", "error", err)
		}
	}

	g.collector.Record(g.outcome, float64(g.tick.Elapsed))
	g.flushTelemetry()
}

// emit logs and writes a single event outside the logic phase.
func (g *Game) emit(ev telemetry.Event) {
	g.logEvent(ev)
	if g.outputManager != nil {
		if err := g.outputManager.WriteEvents([]telemetry.Event{ev}); err != nil {
			slog.Error("failed to write events", "error", err)
		}
	}
}

// flushTelemetry writes the stats window once it has covered its duration.
func (g *Game) flushTelemetry() {
	t := float64(g.tick.Elapsed)
	if !g.collector.ShouldFlush(t) {
		return
	}

	stats := g.collector.Flush(t)
	perfStats := g.perfCollector.Stats()

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.LogStats {
		slog.Info("session", "stats", stats)
		slog.Info("perf", "stats", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteSession(stats); err != nil {
			slog.Error("failed to write session stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
