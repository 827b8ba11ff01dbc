package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/game"
	"github.com/pthm-cable/skyhunt/renderer"
)

func init() {
	// raylib and OpenGL must stay on the main OS thread
	runtime.LockOSThread()
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logText := flag.Bool("log-text", false, "Human-readable logs instead of JSON")
	perfEvery := flag.Int("perf-every", 0, "Print a perf breakdown every N frames (0 = never)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Headless:  *headless,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Persist:   !*headless,
	}

	if *headless {
		if err := runHeadless(opts, *maxFrames, *perfEvery); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	if !rl.IsWindowReady() {
		slog.Error("failed to create window")
		os.Exit(1)
	}
	if err := renderer.InitGL(); err != nil {
		rl.CloseWindow()
		slog.Error("failed to initialize OpenGL", "error", err)
		os.Exit(1)
	}
	slog.Info("window ready", "gl_version", renderer.GLVersion(),
		"width", cfg.Screen.Width, "height", cfg.Screen.Height)

	// Escape is an action handled by the game
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	runWindowed(opts, *maxFrames, *perfEvery)
	rl.CloseWindow()
}

// runWindowed runs the interactive loop. GPU resources are released before
// the window closes.
func runWindowed(opts game.Options, maxFrames, perfEvery int) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.ShouldClose() {
		g.Update()
		g.Draw()

		if perfEvery > 0 && g.Frame()%uint64(perfEvery) == 0 {
			g.LogPerfStats()
		}
		if maxFrames > 0 && g.Frame() >= uint64(maxFrames) {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}
}

// runHeadless drives the simulation on the fixed-step clock until every
// target is consumed or maxFrames is reached.
func runHeadless(opts game.Options, maxFrames, perfEvery int) error {
	cfg := config.Cfg()
	if maxFrames == 0 && !cfg.Headless.Autopilot {
		return errors.New("headless run without autopilot needs -max-frames")
	}

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless session",
		"dt", cfg.Headless.DT,
		"autopilot", cfg.Headless.Autopilot,
		"max_frames", maxFrames,
	)

	for {
		g.UpdateHeadless()

		if perfEvery > 0 && g.Frame()%uint64(perfEvery) == 0 {
			g.LogPerfStats()
		}
		if g.Outcome().AllConsumed() {
			slog.Info("session complete", "frame", g.Frame(), "time", g.Elapsed())
			return nil
		}
		if maxFrames > 0 && g.Frame() >= uint64(maxFrames) {
			slog.Info("max frames reached", "frame", g.Frame(), "remaining", g.Outcome().Remaining)
			return nil
		}
	}
}
