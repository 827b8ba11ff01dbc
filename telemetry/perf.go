package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/skyhunt/systems"
)

// Phases lists every phase ID in frame order.
var Phases = systems.NewSystemRegistry().IDs()

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks per-phase frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
	now           func() time.Time

	// Wall-clock time between presented frames
	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the running phase and records the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent records the interval since the previous presented frame.
func (p *PerfCollector) RecordPresent() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// SampleCount returns how many frames the window holds.
func (p *PerfCollector) SampleCount() int { return p.sampleCount }

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Average duration per phase and share of the average frame
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Work rate: frames per second if nothing but the measured work ran
	FramesPerSecond float64

	// Presentation rate, limited by vsync or the target FPS
	PresentInterval time.Duration
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentInterval > 0 {
		fps = float64(time.Second) / float64(p.presentInterval)
	}

	stats := PerfStats{
		PhaseAvg:        make(map[string]time.Duration),
		PhasePct:        make(map[string]float64),
		PresentInterval: p.presentInterval,
		FPS:             fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < stats.MinFrameDuration {
			stats.MinFrameDuration = s.FrameDuration
		}
		if s.FrameDuration > stats.MaxFrameDuration {
			stats.MaxFrameDuration = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	stats.AvgFrameDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgFrameDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgFrameDuration) * 100
		}
	}
	if stats.AvgFrameDuration > 0 {
		stats.FramesPerSecond = float64(time.Second) / float64(stats.AvgFrameDuration)
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd       uint64  `csv:"window_end"`
	AvgFrameUS      int64   `csv:"avg_frame_us"`
	MinFrameUS      int64   `csv:"min_frame_us"`
	MaxFrameUS      int64   `csv:"max_frame_us"`
	FramesPerSec    float64 `csv:"frames_per_sec"`
	FPS             float64 `csv:"fps"`
	InputPct        float64 `csv:"input_pct"`
	TransformPct    float64 `csv:"transform_pct"`
	LogicPct        float64 `csv:"logic_pct"`
	GeometryPct     float64 `csv:"geometry_pct"`
	TransparencyPct float64 `csv:"transparency_pct"`
	SkyboxPct       float64 `csv:"skybox_pct"`
	BlurPct         float64 `csv:"blur_pct"`
	CompositePct    float64 `csv:"composite_pct"`
	OverlayPct      float64 `csv:"overlay_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgFrameUS:      s.AvgFrameDuration.Microseconds(),
		MinFrameUS:      s.MinFrameDuration.Microseconds(),
		MaxFrameUS:      s.MaxFrameDuration.Microseconds(),
		FramesPerSec:    s.FramesPerSecond,
		FPS:             s.FPS,
		InputPct:        s.PhasePct[systems.PhaseInput],
		TransformPct:    s.PhasePct[systems.PhaseTransform],
		LogicPct:        s.PhasePct[systems.PhaseLogic],
		GeometryPct:     s.PhasePct[systems.PhaseGeometry],
		TransparencyPct: s.PhasePct[systems.PhaseTransparency],
		SkyboxPct:       s.PhasePct[systems.PhaseSkybox],
		BlurPct:         s.PhasePct[systems.PhaseBlur],
		CompositePct:    s.PhasePct[systems.PhaseComposite],
		OverlayPct:      s.PhasePct[systems.PhaseOverlay],
	}
}
