// Shader debug tool - runs the bloom and tone-map passes on a synthetic HDR
// pattern and writes the result to a PNG file for inspection.
//
// Usage:
//
//	go run ./cmd/shaderdebug -out debug.png             # GPU shaders
//	go run ./cmd/shaderdebug -cpu -out reference.png    # CPU reference
//	go run ./cmd/shaderdebug -compare                   # both, report the difference
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/skyhunt/config"
	"github.com/pthm-cable/skyhunt/graph"
	"github.com/pthm-cable/skyhunt/post"
	"github.com/pthm-cable/skyhunt/renderer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	cpu := flag.Bool("cpu", false, "Run the CPU reference instead of the shaders")
	compare := flag.Bool("compare", false, "Run both and report the largest channel difference")
	bloom := flag.Bool("bloom", true, "Enable the blur pass")
	hdr := flag.Bool("hdr", true, "Tone map instead of clamping")
	exposure := flag.Float64("exposure", 1.0, "Exposure")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	features := graph.Features{Bloom: *bloom, HDR: *hdr, Exposure: float32(*exposure), Gamma: cfg.Render.Gamma}
	params := post.ReferenceParams{
		Threshold:  cfg.Render.BrightThreshold,
		Iterations: cfg.Render.BlurIterations,
		Weights:    post.GaussianWeights(cfg.Render.BlurTaps, cfg.Render.BlurSigma),
	}
	pattern := post.Pattern(*width, *height)

	if *cpu && !*compare {
		img := runCPU(pattern, params, features)
		export(rl.NewImageFromImage(img.ToNRGBA()), *outPath)
		return
	}

	gpu, err := runGPU(pattern, params, features)
	if err != nil {
		fmt.Fprintf(os.Stderr, "GPU run failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.UnloadImage(gpu)

	if *compare {
		ref := runCPU(pattern, params, features).ToNRGBA()
		worst, at := 0, [2]int{}
		colors := rl.LoadImageColors(gpu)
		for y := 0; y < *height; y++ {
			for x := 0; x < *width; x++ {
				g := colors[y**width+x]
				r := ref.NRGBAAt(x, y)
				for _, d := range []int{absDiff(g.R, r.R), absDiff(g.G, r.G), absDiff(g.B, r.B)} {
					if d > worst {
						worst, at = d, [2]int{x, y}
					}
				}
			}
		}
		rl.UnloadImageColors(colors)
		fmt.Printf("Largest channel difference: %d/255 at (%d, %d)\n", worst, at[0], at[1])
	}
	export(gpu, *outPath)
}

// runCPU executes the reference graph on the software backend.
func runCPU(pattern *post.Image, params post.ReferenceParams, f graph.Features) *post.Image {
	sw := post.NewSoftware(pattern.W, pattern.H)
	g := post.ReferenceGraph(sw, pattern, params)
	graph.NewExecutor(g, sw).Run(f)
	return sw.Screen
}

// runGPU uploads the pattern and its bright-pass, then runs the shaders in a
// hidden window.
func runGPU(pattern *post.Image, params post.ReferenceParams, f graph.Features) (*rl.Image, error) {
	w, h := int32(pattern.W), int32(pattern.H)
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(w, h, "Shader Debug")
	defer rl.CloseWindow()
	if err := renderer.InitGL(); err != nil {
		return nil, err
	}

	chain, err := renderer.NewPostChain(w, h, params.Iterations, params.Weights)
	if err != nil {
		return nil, err
	}
	defer chain.Unload()

	bright := post.NewImage(pattern.W, pattern.H)
	post.BrightPass(bright, pattern, params.Threshold)
	if err := chain.Upload(pattern, bright); err != nil {
		return nil, err
	}

	rl.BeginDrawing()
	report := chain.Run(f)
	rl.EndDrawing()
	fmt.Printf("Passes: %v (blur steps: %d)\n", report.Executed, report.BlurSteps)

	return chain.Read(), nil
}

func export(img *rl.Image, path string) {
	if rl.ExportImage(*img, path) {
		fmt.Printf("Rendered to: %s (%dx%d)\n", path, img.Width, img.Height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
