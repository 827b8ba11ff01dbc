package telemetry

import (
	"github.com/pthm-cable/skyhunt/systems"
)

// Collector accumulates logic outcomes within windows of simulated time and
// produces WindowStats.
type Collector struct {
	windowDurationSec float64

	windowStartFrame uint64
	windowStartTime  float64
	started          bool

	frames          int
	targetsConsumed int
	resets          int
	targetAlerts    int
	predatorAlerts  int
	predatorDists   []float64
	closestDists    []float64

	last systems.Outcome
}

// NewCollector creates a collector flushing every windowDurationSec of simulated time.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record adds one logic update taken at simulated time t.
func (c *Collector) Record(out systems.Outcome, t float64) {
	if !c.started {
		c.windowStartFrame = out.Frame
		c.windowStartTime = t
		c.started = true
	}
	c.frames++
	c.targetsConsumed += len(out.ConsumedTargets)
	if out.TargetAlert {
		c.targetAlerts++
	}
	if out.PredatorAlert {
		c.predatorAlerts++
	}
	c.predatorDists = append(c.predatorDists, float64(out.PredatorDistance))
	if out.HasClosest {
		c.closestDists = append(c.closestDists, float64(out.ClosestDistance))
	}
	c.last = out
}

// RecordReset counts a session reset.
func (c *Collector) RecordReset() {
	c.resets++
}

// ShouldFlush reports whether the window starting at the first recorded
// update has covered its duration by time t.
func (c *Collector) ShouldFlush(t float64) bool {
	return c.started && t-c.windowStartTime >= c.windowDurationSec
}

// Flush produces the window's stats and starts a new window at time t.
func (c *Collector) Flush(t float64) WindowStats {
	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.last.Frame,
		SimTimeSec:       t,
		Remaining:        c.last.Remaining,
		AvatarConsumed:   c.last.AvatarConsumed,
		TargetsConsumed:  c.targetsConsumed,
		Resets:           c.resets,
	}
	if c.frames > 0 {
		stats.TargetAlertRate = float64(c.targetAlerts) / float64(c.frames)
		stats.PredatorAlertRate = float64(c.predatorAlerts) / float64(c.frames)
	}

	pred := Summarize(c.predatorDists)
	stats.PredatorDistMean = pred.Mean
	stats.PredatorDistStd = pred.Std
	stats.PredatorDistMin = pred.Min
	stats.PredatorDistP50 = pred.P50

	closest := Summarize(c.closestDists)
	stats.ClosestDistMean = closest.Mean
	stats.ClosestDistP10 = closest.P10
	stats.ClosestDistP50 = closest.P50
	stats.ClosestDistP90 = closest.P90

	// Reset for next window
	c.windowStartFrame = c.last.Frame + 1
	c.windowStartTime = t
	c.frames = 0
	c.targetsConsumed = 0
	c.resets = 0
	c.targetAlerts = 0
	c.predatorAlerts = 0
	c.predatorDists = c.predatorDists[:0]
	c.closestDists = c.closestDists[:0]

	return stats
}
