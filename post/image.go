// Package post is the bloom and tone-mapping math, with a CPU implementation of
// the post-processing passes used as a reference for the GPU shaders.
package post

import (
	"image"
	"image/color"
	"math"
)

// RGB is a linear float color.
type RGB [3]float32

// Add returns c + o.
func (c RGB) Add(o RGB) RGB { return RGB{c[0] + o[0], c[1] + o[1], c[2] + o[2]} }

// Scale returns c * s.
func (c RGB) Scale(s float32) RGB { return RGB{c[0] * s, c[1] * s, c[2] * s} }

// Luminance returns Rec. 709 relative luminance.
func (c RGB) Luminance() float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// Image is a float RGB image, row-major.
type Image struct {
	W, H int
	Pix  []RGB
}

// NewImage allocates a black image.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]RGB, w*h)}
}

// At returns the pixel at (x, y), clamping coordinates to the edge.
func (m *Image) At(x, y int) RGB {
	x = clampInt(x, 0, m.W-1)
	y = clampInt(y, 0, m.H-1)
	return m.Pix[y*m.W+x]
}

// Set writes the pixel at (x, y).
func (m *Image) Set(x, y int, c RGB) {
	m.Pix[y*m.W+x] = c
}

// Fill sets every pixel to c.
func (m *Image) Fill(c RGB) {
	for i := range m.Pix {
		m.Pix[i] = c
	}
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	out := &Image{W: m.W, H: m.H, Pix: make([]RGB, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// Equal reports whether two images are bit-identical.
func (m *Image) Equal(o *Image) bool {
	if m.W != o.W || m.H != o.H {
		return false
	}
	for i := range m.Pix {
		for k := 0; k < 3; k++ {
			if math.Float32bits(m.Pix[i][k]) != math.Float32bits(o.Pix[i][k]) {
				return false
			}
		}
	}
	return true
}

// ToNRGBA converts an LDR image to 8-bit, clamping to [0, 1].
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			c := m.Pix[y*m.W+x]
			out.SetNRGBA(x, y, color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255})
		}
	}
	return out
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
