package main

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/game"
	"github.com/pthm-cable/skyhunt/telemetry"
)

// Goals describe the session a tuned config should produce.
type Goals struct {
	ClearTimeSec      float64 // Seconds for the autopilot to eat every insect
	PredatorAlertRate float64 // Fraction of frames the falcon is within the alert radius
}

// FitnessEvaluator runs headless autopilot sessions and scores them.
type FitnessEvaluator struct {
	params    *ParamVector
	maxFrames uint64
	starts    []mgl32.Vec3 // Camera start offsets, one session each
	goals     Goals
	baseCfg   *config.Config

	mu          sync.Mutex
	lastSummary runSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxFrames uint64, starts []mgl32.Vec3, goals Goals, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:    params,
		maxFrames: maxFrames,
		starts:    starts,
		goals:     goals,
		baseCfg:   baseCfg,
	}
}

// runResult holds the results from a single session.
type runResult struct {
	cleared        bool
	clearTimeSec   float64
	avatarConsumed bool
	alertFrames    int
	frames         int
	windowStats    []telemetry.WindowStats // collected via StatsCallback each window
}

// runSummary averages results over every start offset.
type runSummary struct {
	ClearTimeSec   float64
	AlertRate      float64
	ClearedShare   float64
	ConsumedShare  float64
	WindowsFlushed int
}

// LastSummary returns the summary from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.starts))
	var wg sync.WaitGroup
	for i, start := range fe.starts {
		wg.Add(1)
		go func(idx int, offset mgl32.Vec3) {
			defer wg.Done()
			results[idx] = fe.runSession(x, offset)
		}(i, start)
	}
	wg.Wait()

	var fitness float64
	var sum runSummary
	for _, r := range results {
		fitness += fe.computeFitness(r)
		sum.ClearTimeSec += r.clearTimeSec
		if r.frames > 0 {
			sum.AlertRate += float64(r.alertFrames) / float64(r.frames)
		}
		if r.cleared {
			sum.ClearedShare++
		}
		if r.avatarConsumed {
			sum.ConsumedShare++
		}
		sum.WindowsFlushed += len(r.windowStats)
	}

	n := float64(len(results))
	sum.ClearTimeSec /= n
	sum.AlertRate /= n
	sum.ClearedShare /= n
	sum.ConsumedShare /= n

	fe.mu.Lock()
	fe.lastSummary = sum
	fe.mu.Unlock()

	return fitness / n
}

// runSession plays one autopilot session from a shifted camera start.
func (fe *FitnessEvaluator) runSession(x []float64, offset mgl32.Vec3) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Camera.Position = cfg.Camera.Position.Add(offset)
	cfg.Headless.Autopilot = true

	result := &runResult{}
	g := game.NewGameWithOptions(game.Options{
		Headless: true,
		Config:   cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	defer g.Unload()

	for g.Frame() < fe.maxFrames {
		g.UpdateHeadless()

		out := g.Outcome()
		result.frames++
		if out.PredatorAlert {
			result.alertFrames++
		}
		if out.AvatarConsumed {
			result.avatarConsumed = true
		}
		if out.AllConsumed() {
			result.cleared = true
			result.clearTimeSec = float64(g.Elapsed())
			return result
		}
	}
	result.clearTimeSec = float64(g.Elapsed())
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseCfg
	cfg.Scene.Targets = append([]mgl32.Vec3(nil), fe.baseCfg.Scene.Targets...)
	cfg.Scene.Clouds = append([]mgl32.Vec3(nil), fe.baseCfg.Scene.Clouds...)
	cfg.Assets.Skybox = append([]string(nil), fe.baseCfg.Assets.Skybox...)
	cfg.Derived.SkyboxPaths = append([]string(nil), fe.baseCfg.Derived.SkyboxPaths...)
	return &cfg
}

// Fitness component weights.
const (
	weightClearTime  = 1.0
	weightAlertRate  = 2.0
	penaltyUncleared = 3.0
	penaltyConsumed  = 1.0
)

// computeFitness scores a session: relative error against the clear time
// goal, absolute error against the alert rate goal, plus penalties for an
// unfinished session or a lost avatar.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	f := weightClearTime * math.Abs(r.clearTimeSec-fe.goals.ClearTimeSec) / fe.goals.ClearTimeSec
	if r.frames > 0 {
		rate := float64(r.alertFrames) / float64(r.frames)
		f += weightAlertRate * math.Abs(rate-fe.goals.PredatorAlertRate)
	}
	if !r.cleared {
		f += penaltyUncleared
	}
	if r.avatarConsumed {
		f += penaltyConsumed
	}
	return f
}
