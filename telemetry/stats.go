package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated session statistics for a window of simulated time.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Game state at window end
	Remaining      int  `csv:"remaining"`
	AvatarConsumed bool `csv:"avatar_consumed"`

	// Events during window
	TargetsConsumed int `csv:"targets_consumed"`
	Resets          int `csv:"resets"`

	// Fraction of frames with each alert raised
	TargetAlertRate   float64 `csv:"target_alert_rate"`
	PredatorAlertRate float64 `csv:"predator_alert_rate"`

	// Predator distance distribution over the window's frames
	PredatorDistMean float64 `csv:"predator_dist_mean"`
	PredatorDistStd  float64 `csv:"predator_dist_std"`
	PredatorDistMin  float64 `csv:"predator_dist_min"`
	PredatorDistP50  float64 `csv:"predator_dist_p50"`

	// Closest-target distance distribution, frames with an Alive target only
	ClosestDistMean float64 `csv:"closest_dist_mean"`
	ClosestDistP10  float64 `csv:"closest_dist_p10"`
	ClosestDistP50  float64 `csv:"closest_dist_p50"`
	ClosestDistP90  float64 `csv:"closest_dist_p90"`
}

// Percentile returns the p-th empirical quantile of sorted values,
// p in [0, 1]. Returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// DistanceSummary is the mean, standard deviation and quantiles of a sample.
type DistanceSummary struct {
	Mean, Std          float64
	Min, P10, P50, P90 float64
}

// Summarize computes a DistanceSummary. values is left untouched.
func Summarize(values []float64) DistanceSummary {
	if len(values) == 0 {
		return DistanceSummary{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return DistanceSummary{
		Mean: mean,
		Std:  std,
		Min:  sorted[0],
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("remaining", s.Remaining),
		slog.Bool("avatar_consumed", s.AvatarConsumed),
		slog.Int("targets_consumed", s.TargetsConsumed),
		slog.Int("resets", s.Resets),
		slog.Float64("target_alert_rate", s.TargetAlertRate),
		slog.Float64("predator_alert_rate", s.PredatorAlertRate),
		slog.Float64("predator_dist_mean", s.PredatorDistMean),
		slog.Float64("predator_dist_min", s.PredatorDistMin),
		slog.Float64("closest_dist_p50", s.ClosestDistP50),
	)
}
