package post

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/skyhunt/graph"
)

func TestGaussianWeights_Normalised(t *testing.T) {
	for _, taps := range []int{1, 3, 5, 9, 16} {
		w := GaussianWeights(taps, 1.75)
		if len(w) != taps {
			t.Fatalf("taps %d: got %d weights", taps, len(w))
		}
		sum := float64(w[0])
		for _, v := range w[1:] {
			sum += 2 * float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("taps %d: weights sum to %f", taps, sum)
		}
		for i := 1; i < len(w); i++ {
			if w[i] > w[i-1] {
				t.Errorf("taps %d: weight %d increases", taps, i)
			}
		}
	}
}

func TestBrightPass(t *testing.T) {
	src := NewImage(3, 1)
	src.Set(0, 0, RGB{0.5, 0.5, 0.5})
	src.Set(1, 0, RGB{2, 2, 2})
	src.Set(2, 0, RGB{0.99, 0.99, 0.99})
	dst := NewImage(3, 1)

	BrightPass(dst, src, 1)

	if dst.At(0, 0) != (RGB{}) {
		t.Errorf("dim pixel kept: %v", dst.At(0, 0))
	}
	if dst.At(1, 0) != (RGB{2, 2, 2}) {
		t.Errorf("bright pixel lost: %v", dst.At(1, 0))
	}
	if dst.At(2, 0) != (RGB{}) {
		t.Errorf("pixel just under threshold kept: %v", dst.At(2, 0))
	}
}

func TestBlur_PreservesEnergyAwayFromEdges(t *testing.T) {
	src := NewImage(21, 21)
	src.Set(10, 10, RGB{1, 1, 1})
	tmp := NewImage(21, 21)
	dst := NewImage(21, 21)
	w := GaussianWeights(5, 1.75)

	Blur(tmp, src, true, w)
	Blur(dst, tmp, false, w)

	var sum float64
	for _, c := range dst.Pix {
		sum += float64(c[0])
	}
	if math.Abs(sum-1) > 1e-4 {
		t.Errorf("expected total energy 1, got %f", sum)
	}
	if dst.At(10, 10)[0] >= 1 {
		t.Error("peak should spread out")
	}
	if dst.At(10, 12) != dst.At(12, 10) {
		t.Errorf("separable blur should be symmetric: %v vs %v", dst.At(10, 12), dst.At(12, 10))
	}
}

func TestToneMapPixel(t *testing.T) {
	testCases := []struct {
		name string
		in   RGB
		p    ToneParams
		want float32
	}{
		{"black", RGB{}, ToneParams{HDR: true, Exposure: 1, Gamma: 2.2}, 0},
		{"reinhard one", RGB{1, 1, 1}, ToneParams{HDR: true, Exposure: 1, Gamma: 1}, 0.5},
		{"exposure", RGB{1, 1, 1}, ToneParams{HDR: true, Exposure: 3, Gamma: 1}, 0.75},
		{"zero exposure", RGB{5, 5, 5}, ToneParams{HDR: true, Exposure: 0, Gamma: 2.2}, 0},
		{"ldr clamps", RGB{5, 5, 5}, ToneParams{HDR: false, Exposure: 1, Gamma: 2.2}, 1},
		{"gamma", RGB{0.25, 0.25, 0.25}, ToneParams{HDR: false, Gamma: 2}, 0.5},
	}

	for _, tc := range testCases {
		got := ToneMapPixel(tc.in, tc.p)
		for k := 0; k < 3; k++ {
			if math.Abs(float64(got[k]-tc.want)) > 1e-5 {
				t.Errorf("%s: channel %d expected %f, got %f", tc.name, k, tc.want, got[k])
			}
		}
	}
}

func TestToneMap_Monotonic(t *testing.T) {
	p := ToneParams{HDR: true, Exposure: 1, Gamma: 2.2}
	prev := float32(-1)
	for v := float32(0); v < 100; v += 0.5 {
		got := ToneMapPixel(RGB{v, v, v}, p)[0]
		if got <= prev && v > 0 {
			t.Fatalf("tone map not increasing at %f", v)
		}
		if got >= 1 {
			t.Fatalf("tone map reached %f at %f", got, v)
		}
		prev = got
	}
}

func scramble(img *Image, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Pix {
		img.Pix[i] = RGB{rng.Float32() * 50, rng.Float32() * 50, rng.Float32() * 50}
	}
}

func TestBloomOffBitIdentical(t *testing.T) {
	const w, h = 32, 24
	source := Pattern(w, h)
	params := ReferenceParams{Threshold: 1, Iterations: 10, Weights: GaussianWeights(5, 1.75)}
	features := graph.Features{Bloom: false, HDR: true, Exposure: 1.3, Gamma: 2.2}

	want := NewImage(w, h)
	Composite(want, source, nil, ToneParams{HDR: true, Exposure: 1.3, Gamma: 2.2})

	for seed := int64(1); seed <= 3; seed++ {
		sw := NewSoftware(w, h)
		scramble(sw.Ping[0], seed)
		scramble(sw.Ping[1], seed*7)

		ex := graph.NewExecutor(ReferenceGraph(sw, source, params), sw)
		report := ex.Run(features)

		if report.BlurRan {
			t.Fatal("blur ran with bloom off")
		}
		if !sw.Screen.Equal(want) {
			t.Errorf("seed %d: composite differs from tone-mapping the scene alone", seed)
		}
	}
}

func TestBloomOnAddsGlow(t *testing.T) {
	const w, h = 32, 24
	source := Pattern(w, h)
	params := ReferenceParams{Threshold: 1, Iterations: 10, Weights: GaussianWeights(5, 1.75)}

	sw := NewSoftware(w, h)
	ex := graph.NewExecutor(ReferenceGraph(sw, source, params), sw)
	report := ex.Run(graph.Features{Bloom: true, HDR: true, Exposure: 1, Gamma: 2.2})

	if report.BlurResult != graph.PingVertical {
		t.Errorf("expected the blur to end in the vertical buffer, got %s", report.BlurResult)
	}

	plain := NewImage(w, h)
	Composite(plain, source, nil, ToneParams{HDR: true, Exposure: 1, Gamma: 2.2})

	// Next to a bright spot the bloom must brighten the image
	x, y := w/2+1, h/2
	if sw.Screen.At(x, y)[0] <= plain.At(x, y)[0] {
		t.Errorf("expected glow near the bright spot: %f vs %f", sw.Screen.At(x, y)[0], plain.At(x, y)[0])
	}
	// Far from every spot it stays close to the plain image
	if d := math.Abs(float64(sw.Screen.At(0, h-1)[1] - plain.At(0, h-1)[1])); d > 1e-3 {
		t.Errorf("unexpected glow in a dark corner: %f", d)
	}
}

func TestBlurParityMatchesManualLoop(t *testing.T) {
	const w, h = 16, 16
	source := Pattern(w, h)
	weights := GaussianWeights(5, 1.75)

	sw := NewSoftware(w, h)
	ex := graph.NewExecutor(ReferenceGraph(sw, source, ReferenceParams{Threshold: 1, Iterations: 10, Weights: weights}), sw)
	ex.Run(graph.Features{Bloom: true, HDR: true, Exposure: 1, Gamma: 2.2})

	// Hand-written ping-pong: buffers[1] is horizontal, start horizontal
	bright := NewImage(w, h)
	BrightPass(bright, source, 1)
	buffers := [2]*Image{NewImage(w, h), NewImage(w, h)}
	horizontal := true
	for i := 0; i < 10; i++ {
		src := bright
		if i > 0 {
			src = buffers[boolIndex(!horizontal)]
		}
		Blur(buffers[boolIndex(horizontal)], src, horizontal, weights)
		horizontal = !horizontal
	}

	if !buffers[0].Equal(sw.Ping[0]) {
		t.Error("executor's vertical buffer differs from the manual loop")
	}
	if !buffers[0].Equal(sw.Image(graph.FinalBlur(10, true, graph.BrightColor))) {
		t.Error("final blur attachment is not the last written buffer")
	}
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
