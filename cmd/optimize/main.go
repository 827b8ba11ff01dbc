// Package main provides CMA-ES tuning of the scene layout and camera speed so
// that autopilot sessions hit a target difficulty.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/skyhunt/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// startOffsets spreads n camera starts along the x axis, centred on the
// configured origin.
func startOffsets(n int, spacing float32) []mgl32.Vec3 {
	offsets := make([]mgl32.Vec3, n)
	for i := range offsets {
		offsets[i] = mgl32.Vec3{(float32(i) - float32(n-1)/2) * spacing, 0, 0}
	}
	return offsets
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxFrames := flag.Int("max-frames", 3600, "Frame cap per session")
	starts := flag.Int("starts", 3, "Camera start positions per evaluation")
	spacing := flag.Float64("spacing", 2.0, "Distance between camera starts")
	clearTime := flag.Float64("clear-time", 20.0, "Target seconds to clear every insect")
	alertRate := flag.Float64("alert-rate", 0.1, "Target fraction of frames with the falcon close")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *starts < 1 {
		log.Fatal("--starts must be at least 1")
	}
	if *clearTime <= 0 {
		log.Fatal("--clear-time must be positive")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	goals := Goals{ClearTimeSec: *clearTime, PredatorAlertRate: *alertRate}
	evaluator := NewFitnessEvaluator(params, uint64(*maxFrames), startOffsets(*starts, float32(*spacing)), goals, baseCfg)

	// Set up CMA-ES
	dim := params.Dim()
	// Start from the base config so a tuned file can be refined further
	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sessions already run in parallel per evaluation
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	// Open log file
	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "clear_time_s", "alert_rate", "cleared", "consumed"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	var bestSummary runSummary
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++
		summary := evaluator.LastSummary()

		// Clamped values are the ones the sessions actually used
		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
			bestSummary = summary
		}

		row := []string{
			strconv.Itoa(evalCount),
			fmt.Sprintf("%.6f", fitness),
			fmt.Sprintf("%.3f", summary.ClearTimeSec),
			fmt.Sprintf("%.4f", summary.AlertRate),
			fmt.Sprintf("%.2f", summary.ClearedShare),
			fmt.Sprintf("%.2f", summary.ConsumedShare),
		}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: fitness=%.4f clear=%.1fs alert=%.3f cleared=%.0f%% (best=%.4f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, fitness, summary.ClearTimeSec, summary.AlertRate, summary.ClearedShare*100,
			bestFitness, formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Starts per evaluation: %d, frames per session: %d\n", *starts, *maxFrames)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Best params may come from any evaluation, not just the final one
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, bestParams[i])
	}

	// Save best config
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	summaryPath := filepath.Join(*outputDir, "best_summary.json")
	data, err := json.MarshalIndent(bestSummary, "", "  ")
	if err != nil {
		log.Printf("failed to marshal summary: %v", err)
	} else if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		log.Printf("failed to write summary: %v", err)
	} else {
		fmt.Printf("Summary saved to: %s\n", summaryPath)
	}
}
