package preprocess

import (
	"image"
	"image/color"
	"testing"
)

// bimodalImage builds an image with a dark left half and a bright right half.
func bimodalImage(dark, bright uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			v := dark
			if x >= 10 {
				v = bright
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestOtsuThresholdSeparatesModes(t *testing.T) {
	tests := []struct {
		name         string
		dark, bright uint8
	}{
		{"High contrast", 20, 230},
		{"Low contrast", 100, 140},
		{"Document-like", 40, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			threshold := OtsuThreshold(bimodalImage(tt.dark, tt.bright))
			if threshold < tt.dark || threshold >= tt.bright {
				t.Errorf("threshold %d does not separate modes %d and %d", threshold, tt.dark, tt.bright)
			}
		})
	}
}

func TestOtsuThresholdUniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}
	// No second mode to separate; any single threshold is acceptable, it
	// just must not panic.
	_ = OtsuThreshold(img)
}

func TestThresholdProducesOnlyBlackAndWhite(t *testing.T) {
	gray := bimodalImage(30, 220)
	binary := Threshold(gray, OtsuThreshold(gray))

	bounds := binary.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := binary.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}

	if binary.GrayAt(0, 0).Y != 0 {
		t.Error("dark half should threshold to black")
	}
	if binary.GrayAt(15, 0).Y != 255 {
		t.Error("bright half should threshold to white")
	}
}

func TestBinarizeRestoresChannelStructure(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
			if x >= 4 {
				c = color.RGBA{R: 240, G: 235, B: 245, A: 255}
			}
			src.Set(x, y, c)
		}
	}

	out := Binarize(src)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v -> %v", src.Bounds(), out.Bounds())
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, g, b, _ := out.At(x, y).RGBA()
			if r != g || g != b {
				t.Fatalf("pixel (%d,%d) not grayscale-derived: r=%d g=%d b=%d", x, y, r>>8, g>>8, b>>8)
			}
			v := uint8(r >> 8)
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
}
