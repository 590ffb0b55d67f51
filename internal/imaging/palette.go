package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// maxPaletteSamples caps how many pixels feed the k-means clustering.
// Larger images are sampled on a uniform stride.
const maxPaletteSamples = 16384

// DominantColor returns the single most representative color of an
// image. It is the usual starting point when choosing a mask color for
// a synthetic background.
func DominantColor(img image.Image) RGBColor {
	c := dominantcolor.Find(img)
	return RGBColor{R: c.R, G: c.G, B: c.B}
}

// Palette clusters an image's pixels into k representative colors,
// ordered by cluster size (largest first).
//
// Parameters:
//   - img: The image to analyze.
//   - k: Number of colors to extract. Must be at least 1.
//
// Large images are subsampled before clustering, so the palette is an
// approximation; that is fine for its purpose of suggesting mask-color
// candidates.
func Palette(img image.Image, k int) ([]RGBColor, error) {
	if k < 1 {
		return nil, fmt.Errorf("palette size must be >= 1, got %d", k)
	}

	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return nil, fmt.Errorf("cannot extract a palette from an empty image")
	}

	stride := 1
	for total/(stride*stride) > maxPaletteSamples {
		stride++
	}

	var obs clusters.Observations
	for y := 0; y < bounds.Dy(); y += stride {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < bounds.Dx(); x += stride {
			obs = append(obs, clusters.Coordinates{
				float64(row[x*4]) / 255.0,
				float64(row[x*4+1]) / 255.0,
				float64(row[x*4+2]) / 255.0,
			})
		}
	}
	if len(obs) < k {
		return nil, fmt.Errorf("image has %d sampled pixels, fewer than %d palette entries", len(obs), k)
	}

	km := kmeans.New()
	cs, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("k-means clustering failed: %w", err)
	}

	// Largest clusters first: the most common color is the likeliest
	// background.
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			if len(cs[j].Observations) > len(cs[i].Observations) {
				cs[i], cs[j] = cs[j], cs[i]
			}
		}
	}

	palette := make([]RGBColor, 0, len(cs))
	for _, c := range cs {
		palette = append(palette, RGBColor{
			R: clampU8(int(c.Center[0]*255.0 + 0.5)),
			G: clampU8(int(c.Center[1]*255.0 + 0.5)),
			B: clampU8(int(c.Center[2]*255.0 + 0.5)),
		})
	}
	return palette, nil
}
