package post

import (
	"github.com/pthm-cable/skyhunt/graph"
)

// Software is a graph.Backend over in-memory images.
type Software struct {
	Scene  *Image // HDR color attachment 0
	Bright *Image // HDR color attachment 1
	Ping   [2]*Image
	Screen *Image

	bound graph.Target
	binds int
}

// NewSoftware allocates every target at w x h.
func NewSoftware(w, h int) *Software {
	return &Software{
		Scene:  NewImage(w, h),
		Bright: NewImage(w, h),
		Ping:   [2]*Image{NewImage(w, h), NewImage(w, h)},
		Screen: NewImage(w, h),
	}
}

// Bind implements graph.Backend.
func (s *Software) Bind(t graph.Target) {
	s.bound = t
	s.binds++
}

// Bound returns the currently bound target.
func (s *Software) Bound() graph.Target { return s.bound }

// Clear implements graph.Backend. Depth is not modelled.
func (s *Software) Clear(t graph.Target, mask graph.ClearMask) {
	if mask&graph.ClearColor == 0 {
		return
	}
	for _, img := range s.targetImages(t) {
		img.Fill(RGB{})
	}
}

// Image returns the image behind an attachment.
func (s *Software) Image(a graph.Attachment) *Image {
	switch a {
	case graph.SceneColor:
		return s.Scene
	case graph.BrightColor:
		return s.Bright
	case graph.PingVertical:
		return s.Ping[0]
	case graph.PingHorizontal:
		return s.Ping[1]
	}
	return nil
}

// TargetImage returns the first color image of a target.
func (s *Software) TargetImage(t graph.Target) *Image {
	imgs := s.targetImages(t)
	if len(imgs) == 0 {
		return nil
	}
	return imgs[0]
}

func (s *Software) targetImages(t graph.Target) []*Image {
	switch t {
	case graph.TargetHDR:
		return []*Image{s.Scene, s.Bright}
	case graph.TargetPingVertical:
		return []*Image{s.Ping[0]}
	case graph.TargetPingHorizontal:
		return []*Image{s.Ping[1]}
	case graph.TargetScreen:
		return []*Image{s.Screen}
	}
	return nil
}

// ReferenceParams configure the CPU post-processing graph.
type ReferenceParams struct {
	Threshold  float32
	Iterations int
	Weights    []float32
}

// ReferenceGraph builds the post-processing passes over a Software backend.
// The geometry pass copies source into the scene attachment and extracts the
// bright-pass, the way the lit shader's second output does on the GPU.
func ReferenceGraph(sw *Software, source *Image, p ReferenceParams) *graph.Graph {
	return &graph.Graph{Passes: []graph.Pass{
		{
			Name:   "geometry",
			Writes: graph.TargetHDR,
			Clear:  graph.ClearAll,
			Draw: func(*graph.Context) {
				copy(sw.Scene.Pix, source.Pix)
				BrightPass(sw.Bright, sw.Scene, p.Threshold)
			},
		},
		{
			Name:    "blur",
			Reads:   []graph.Attachment{graph.BrightColor},
			Enabled: graph.BloomEnabled,
			Blur:    &graph.BlurSpec{Iterations: p.Iterations, StartHorizontal: true, Source: graph.BrightColor},
			Draw: func(ctx *graph.Context) {
				Blur(sw.TargetImage(ctx.Target), sw.Image(ctx.Step.Read), ctx.Step.Horizontal, p.Weights)
			},
		},
		{
			Name:   "composite",
			Reads:  []graph.Attachment{graph.SceneColor, graph.BlurResult},
			Writes: graph.TargetScreen,
			Clear:  graph.ClearColor,
			Draw: func(ctx *graph.Context) {
				var bloom *Image
				if len(ctx.Inputs) > 1 {
					bloom = sw.Image(ctx.Inputs[1])
				}
				Composite(sw.Screen, sw.Image(ctx.Inputs[0]), bloom, ToneParams{
					HDR:      ctx.Features.HDR,
					Exposure: ctx.Features.Exposure,
					Gamma:    ctx.Features.Gamma,
				})
			},
		},
	}}
}

// Pattern fills an image with a dim gradient and a few bright spots, for
// exercising the bloom path.
func Pattern(w, h int) *Image {
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx := float32(x) / float32(w)
			fy := float32(y) / float32(h)
			img.Set(x, y, RGB{0.2 * fx, 0.2 * fy, 0.1})
		}
	}
	spots := [][2]int{{w / 4, h / 4}, {w / 2, h / 2}, {3 * w / 4, h / 3}}
	for i, s := range spots {
		v := float32(2 + 3*i)
		img.Set(s[0], s[1], RGB{v, v * 0.8, v * 0.5})
	}
	return img
}
