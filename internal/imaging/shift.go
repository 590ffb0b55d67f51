package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
)

// Delta is a per-channel integer correction applied uniformly to every
// pixel of an image.
type Delta struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// IsZero reports whether applying the delta would leave an image unchanged.
func (d Delta) IsZero() bool {
	return d.R == 0 && d.G == 0 && d.B == 0
}

// ComputeDelta derives the global shift that moves an image with mean
// color from toward mean color to.
//
// Each channel is round(to - from), rounding halves away from zero
// (math.Round semantics), so a +0.5 offset becomes +1 and a -0.5 offset
// becomes -1. The delta is computed once per image pair and reused for
// every pixel.
func ComputeDelta(from, to Color) Delta {
	return Delta{
		R: int(math.Round(to.R - from.R)),
		G: int(math.Round(to.G - from.G)),
		B: int(math.Round(to.B - from.B)),
	}
}

// Shift applies a global additive correction to every pixel of an image.
//
// Parameters:
//   - img: The source image. It is not modified.
//   - delta: Per-channel correction, typically from ComputeDelta.
//
// Returns a new opaque NRGBA image of identical dimensions where each
// channel is clamp(original + delta, 0, 255). This is a single uniform
// shift, not a per-pixel or gain-based transform.
func Shift(img image.Image, delta Delta) *image.NRGBA {
	src := clone.AsRGBA(img)
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srow := src.Pix[y*src.Stride:]
		drow := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			drow[x*4] = clampU8(int(srow[x*4]) + delta.R)
			drow[x*4+1] = clampU8(int(srow[x*4+1]) + delta.G)
			drow[x*4+2] = clampU8(int(srow[x*4+2]) + delta.B)
			drow[x*4+3] = 255
		}
	}
	return out
}

func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
