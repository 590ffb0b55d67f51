package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color in "#rrggbb" form.
func (c RGBColor) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// Color represents per-channel arithmetic means of an image.
//
// Components are float64 and may be non-integral: averaging never rounds.
// Rounding happens only when a shift delta is derived from two Colors.
type Color struct {
	R float64 `json:"r"` // Mean red intensity (0.0-255.0)
	G float64 `json:"g"` // Mean green intensity (0.0-255.0)
	B float64 `json:"b"` // Mean blue intensity (0.0-255.0)
}

// Hex returns the nearest 8-bit color in "#rrggbb" form.
// Intended for logs and reports, not for computation.
func (c Color) Hex() string {
	return colorful.Color{
		R: c.R / 255.0,
		G: c.G / 255.0,
		B: c.B / 255.0,
	}.Clamped().Hex()
}

// Mask defines which pixels to exclude from an average.
//
// A pixel is excluded only if all three of its channels are within
// Tolerance of the corresponding mask channel. The test is conjunctive:
// a pixel matching the mask on two channels but not the third is kept.
//
// Tolerance 0 excludes only exact matches of the mask color.
type Mask struct {
	Color     RGBColor `json:"color"`     // Color to treat as background
	Tolerance int      `json:"tolerance"` // Per-channel distance (>= 0)
}

// Excludes reports whether a pixel with the given channels is masked out.
func (m *Mask) Excludes(r, g, b uint8) bool {
	return absDiff(r, m.Color.R) <= m.Tolerance &&
		absDiff(g, m.Color.G) <= m.Tolerance &&
		absDiff(b, m.Color.B) <= m.Tolerance
}

// Average computes the per-channel arithmetic mean color of an image.
//
// Parameters:
//   - img: The image to measure. Alpha, if present, is ignored.
//   - mask: Optional background exclusion. Nil means average all pixels.
//
// Returns the mean as a float64 Color. The function is pure and never
// fails: if the mask excludes every pixel (for example a monochrome
// image equal to the mask color, or a tolerance of 255), the result
// falls back to the mean over all pixels so callers never see an
// undefined value.
func Average(img image.Image, mask *Mask) Color {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()

	var sumR, sumG, sumB float64
	var allR, allG, allB float64
	included := 0
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := rgba.Pix[(y-bounds.Min.Y)*rgba.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			r := row[x*4]
			g := row[x*4+1]
			b := row[x*4+2]

			allR += float64(r)
			allG += float64(g)
			allB += float64(b)
			total++

			if mask != nil && mask.Excludes(r, g, b) {
				continue
			}
			sumR += float64(r)
			sumG += float64(g)
			sumB += float64(b)
			included++
		}
	}

	if total == 0 {
		return Color{}
	}
	if included == 0 {
		// Every pixel masked: fall back to the full-image mean.
		return Color{
			R: allR / float64(total),
			G: allG / float64(total),
			B: allB / float64(total),
		}
	}
	return Color{
		R: sumR / float64(included),
		G: sumG / float64(included),
		B: sumB / float64(included),
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
