package game

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pthm-cable/skyhunt/telemetry"
)

// logWriter is the destination for Logf output.
var logWriter io.Writer

// SetLogWriter sets the Logf output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted, human-readable log line.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// eventMessages are the log messages for game events.
var eventMessages = map[telemetry.EventType]string{
	telemetry.EventTargetConsumed: "target consumed",
	telemetry.EventAvatarConsumed: "avatar consumed",
	telemetry.EventAllConsumed:    "all targets consumed",
	telemetry.EventReset:          "reset",
}

// logEvent reports a game event.
func (g *Game) logEvent(ev telemetry.Event) {
	msg, ok := eventMessages[ev.Type]
	if !ok {
		msg = ev.Type.String()
	}
	slog.Info(msg, "event", ev)
}

// LogPerfStats writes the per-phase breakdown of the perf window.
func (g *Game) LogPerfStats() {
	stats := g.perfCollector.Stats()
	Logf("=== Perf @ Frame %d | FPS: %.0f ===", g.tick.Frame, stats.FPS)
	Logf("Avg frame: %s (min %s, max %s)",
		stats.AvgFrameDuration.Round(time.Microsecond),
		stats.MinFrameDuration.Round(time.Microsecond),
		stats.MaxFrameDuration.Round(time.Microsecond),
	)

	for _, cat := range g.registry.Categories() {
		var lines []string
		var pct float64
		for _, info := range g.registry.ByCategory(cat) {
			avg, ok := stats.PhaseAvg[info.ID]
			if !ok {
				continue
			}
			pct += stats.PhasePct[info.ID]
			lines = append(lines, fmt.Sprintf("    %-14s %10s  %5.1f%%", info.Name, avg.Round(time.Microsecond), stats.PhasePct[info.ID]))
		}
		if len(lines) == 0 {
			continue
		}
		Logf("  %s (%.1f%%)", cat, pct)
		for _, line := range lines {
			Logf("%s", line)
		}
	}
	Logf("")
}
