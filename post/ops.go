package post

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultThreshold is the bright-pass luminance cut-off.
const DefaultThreshold = 1.0

// GaussianWeights returns a one-sided kernel of taps weights, centre first,
// normalised so that w[0] + 2*sum(w[1:]) == 1.
func GaussianWeights(taps int, sigma float64) []float32 {
	if taps < 1 {
		taps = 1
	}
	if sigma <= 0 {
		sigma = 1
	}
	w := make([]float64, taps)
	for i := range w {
		x := float64(i)
		w[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	total := w[0] + 2*floats.Sum(w[1:])
	floats.Scale(1/total, w)

	out := make([]float32, taps)
	for i, v := range w {
		out[i] = float32(v)
	}
	return out
}

// BrightPass keeps pixels whose luminance exceeds threshold and blacks out the rest.
func BrightPass(dst, src *Image, threshold float32) {
	for i, c := range src.Pix {
		if c.Luminance() > threshold {
			dst.Pix[i] = c
		} else {
			dst.Pix[i] = RGB{}
		}
	}
}

// Blur applies one axis of a separable Gaussian, clamping at the edges.
// dst and src must be different images of the same size.
func Blur(dst, src *Image, horizontal bool, weights []float32) {
	dx, dy := 0, 1
	if horizontal {
		dx, dy = 1, 0
	}
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			acc := src.At(x, y).Scale(weights[0])
			for i := 1; i < len(weights); i++ {
				acc = acc.Add(src.At(x+dx*i, y+dy*i).Scale(weights[i]))
				acc = acc.Add(src.At(x-dx*i, y-dy*i).Scale(weights[i]))
			}
			dst.Set(x, y, acc)
		}
	}
}

// ToneParams control the composite.
type ToneParams struct {
	HDR      bool
	Exposure float32
	Gamma    float32
}

// ToneMapPixel maps one HDR color to display range.
// With HDR on it applies exposure then Reinhard; off, it clamps.
func ToneMapPixel(c RGB, p ToneParams) RGB {
	var out RGB
	invGamma := 1 / float64(gammaOrDefault(p.Gamma))
	for k := 0; k < 3; k++ {
		v := c[k]
		if p.HDR {
			v *= p.Exposure
			v = v / (v + 1)
		} else {
			v = clamp01(v)
		}
		if v < 0 {
			v = 0
		}
		out[k] = float32(math.Pow(float64(v), invGamma))
	}
	return out
}

// Composite writes the display image. bloom may be nil, in which case the
// scene is tone-mapped alone.
func Composite(dst, scene, bloom *Image, p ToneParams) {
	for i, c := range scene.Pix {
		if bloom != nil {
			c = c.Add(bloom.Pix[i])
		}
		dst.Pix[i] = ToneMapPixel(c, p)
	}
}

func gammaOrDefault(g float32) float32 {
	if g <= 0 {
		return 2.2
	}
	return g
}
