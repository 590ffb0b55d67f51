package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestComputeDelta_WorkedExample(t *testing.T) {
	target := Color{R: 100, G: 100, B: 100}
	reference := Color{R: 120, G: 130, B: 140}

	got := ComputeDelta(target, reference)
	want := Delta{R: 20, G: 30, B: 40}
	if got != want {
		t.Errorf("ComputeDelta: got %+v, want %+v", got, want)
	}
}

func TestComputeDelta_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		name string
		from float64
		to   float64
		want int
	}{
		{"positive half rounds up", 100, 100.5, 1},
		{"negative half rounds down", 100.5, 100, -1},
		{"positive above half", 0, 2.6, 3},
		{"positive below half", 0, 2.4, 2},
		{"negative above half", 2.6, 0, -3},
		{"two and a half", 0, 2.5, 3},
		{"minus two and a half", 2.5, 0, -3},
		{"zero", 42, 42, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDelta(Color{R: tt.from}, Color{R: tt.to})
			if d.R != tt.want {
				t.Errorf("ComputeDelta(%v -> %v): got %d, want %d", tt.from, tt.to, d.R, tt.want)
			}
		})
	}
}

func TestShift_WorkedExample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{90, 90, 90, 255})
	img.SetNRGBA(1, 0, color.NRGBA{245, 230, 220, 255})

	out := Shift(img, Delta{R: 20, G: 30, B: 40})

	if got, want := out.NRGBAAt(0, 0), (color.NRGBA{110, 120, 130, 255}); got != want {
		t.Errorf("pixel (0,0): got %+v, want %+v", got, want)
	}
	// 245+20=265, 230+30=260, 220+40=260: all clamp to 255.
	if got, want := out.NRGBAAt(1, 0), (color.NRGBA{255, 255, 255, 255}); got != want {
		t.Errorf("pixel (1,0): got %+v, want %+v", got, want)
	}
}

func TestShift_ClampsToFullRange(t *testing.T) {
	tests := []struct {
		name  string
		pixel color.NRGBA
		delta Delta
		want  color.NRGBA
	}{
		{
			name:  "white target, black reference",
			pixel: color.NRGBA{255, 255, 255, 255},
			delta: Delta{R: -255, G: -255, B: -255},
			want:  color.NRGBA{0, 0, 0, 255},
		},
		{
			name:  "black target, white reference",
			pixel: color.NRGBA{0, 0, 0, 255},
			delta: Delta{R: 255, G: 255, B: 255},
			want:  color.NRGBA{255, 255, 255, 255},
		},
		{
			name:  "mixed directions",
			pixel: color.NRGBA{10, 128, 250, 255},
			delta: Delta{R: -50, G: 0, B: 50},
			want:  color.NRGBA{0, 128, 255, 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(3, 3, tt.pixel)
			out := Shift(img, tt.delta)
			if got := out.NRGBAAt(1, 1); got != tt.want {
				t.Errorf("Shift: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShift_PreservesDimensionsAndSource(t *testing.T) {
	img := createInMemoryImage(7, 5, color.NRGBA{100, 100, 100, 255})

	out := Shift(img, Delta{R: 10, G: 10, B: 10})

	if out.Bounds().Dx() != 7 || out.Bounds().Dy() != 5 {
		t.Errorf("dimensions: got %dx%d, want 7x5", out.Bounds().Dx(), out.Bounds().Dy())
	}
	// The transform must produce a new image, not mutate its input.
	if got := img.NRGBAAt(3, 2); got != (color.NRGBA{100, 100, 100, 255}) {
		t.Errorf("source mutated: got %+v", got)
	}
	if got := out.NRGBAAt(3, 2); got != (color.NRGBA{110, 110, 110, 255}) {
		t.Errorf("output: got %+v, want (110,110,110,255)", got)
	}
}

func TestShift_ZeroDeltaIsIdentity(t *testing.T) {
	img := createSplitImage(6, 6, color.NRGBA{10, 20, 30, 255}, color.NRGBA{200, 150, 100, 255})

	d := Delta{}
	if !d.IsZero() {
		t.Fatal("zero delta should report IsZero")
	}

	out := Shift(img, d)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if got, want := out.NRGBAAt(x, y), img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %+v, want %+v", x, y, got, want)
			}
		}
	}
}
