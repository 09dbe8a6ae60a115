// Package overlay renders recognition geometry onto a copy of the source
// image for side-by-side visual comparison of engine runs.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"go-ocr-compare/internal/ocr"
)

// Options configures box rendering.
type Options struct {
	Color     color.RGBA
	Thickness int
	// Labels draws the node's ordinal next to its box so boxes can be
	// matched against the text listing.
	Labels bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		Color:     color.RGBA{R: 230, G: 57, B: 70, A: 255},
		Thickness: 2,
		Labels:    true,
	}
}

// Annotate draws every node's bounding shape onto a copy of img. The input
// image is never mutated; each engine run annotates its own copy. An empty
// node list yields a clean copy.
func Annotate(img image.Image, nodes []ocr.Node, opts Options) *image.RGBA {
	out := Clone(img)
	if opts.Thickness <= 0 {
		opts.Thickness = 1
	}

	for i, n := range nodes {
		q := n.Quad
		if quadEmpty(q) {
			q = ocr.QuadFromRect(n.Box)
		}
		drawQuad(out, q, opts.Color, opts.Thickness)

		if opts.Labels {
			anchor := q.Bounds()
			drawLabel(out, fmt.Sprintf("%d", i+1), anchor.X0+2, anchor.Y0-2, opts.Color)
		}
	}
	return out
}

// Clone copies any image into a freshly allocated RGBA raster.
func Clone(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}

func quadEmpty(q ocr.Quad) bool {
	for _, p := range q[1:] {
		if p != q[0] {
			return false
		}
	}
	return true
}

func drawQuad(img *image.RGBA, q ocr.Quad, c color.RGBA, thickness int) {
	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		for t := 0; t < thickness; t++ {
			drawLine(img, a.X, a.Y+t, b.X, b.Y+t, c)
			drawLine(img, a.X+t, a.Y, b.X+t, b.Y, c)
		}
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm, clipped to the
// image bounds by Set's own bounds check.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawLabel(img *image.RGBA, text string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
