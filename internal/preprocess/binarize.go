// Package preprocess holds the optional binarization step applied before
// recognition. It is a caller-controlled toggle, not an adaptive decision.
package preprocess

import (
	"image"
	"image/color"
	"image/draw"

	"gonum.org/v1/gonum/floats"
)

// Grayscale converts any image to 8-bit grayscale.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// OtsuThreshold selects the binarization threshold that maximizes the
// between-class variance of the grayscale histogram.
func OtsuThreshold(gray *image.Gray) uint8 {
	hist := make([]float64, 256)
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	levels := make([]float64, 256)
	for i := range levels {
		levels[i] = float64(i)
	}

	total := floats.Sum(hist)
	if total == 0 {
		return 0
	}
	sumAll := floats.Dot(hist, levels)

	var best float64
	var threshold uint8
	var wB, sumB float64
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * hist[t]

		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(t)
		}
	}
	return threshold
}

// Threshold maps every pixel to 0 or 255: values above the threshold become
// white, the rest black.
func Threshold(gray *image.Gray, threshold uint8) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// Binarize runs grayscale conversion, Otsu thresholding, and re-expands the
// result to an RGBA image so downstream consumers see the same channel
// structure whether or not preprocessing ran.
func Binarize(img image.Image) *image.RGBA {
	gray := Grayscale(img)
	binary := Threshold(gray, OtsuThreshold(gray))

	bounds := binary.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, binary, bounds.Min, draw.Src)
	return out
}
