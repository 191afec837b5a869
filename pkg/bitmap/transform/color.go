package transform

import (
	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/pixel"
)

// PosterLevels lists every channel value Posterize can produce.
var PosterLevels = [...]int{0, 64, 128, 192, 255}

// Grayscale sets every pixel to gray = (R+G+B)/3.
func Grayscale(g *bitmap.Grid) *bitmap.Grid {
	return mapPixels(g, func(c pixel.Color) pixel.Color {
		r, gr, b := c.RGB()
		return pixel.Gray((r + gr + b) / 3)
	})
}

// Posterize buckets each channel independently:
// [0,32)→0, [32,96)→64, [96,160)→128, [160,224)→192, [224,256)→255.
func Posterize(g *bitmap.Grid) *bitmap.Grid {
	return mapPixels(g, func(c pixel.Color) pixel.Color {
		r, gr, b := c.RGB()
		return pixel.Pack(posterLevel(r), posterLevel(gr), posterLevel(b))
	})
}

// PosterizeCompat is Posterize with the blue top tier only matching 255, so
// blue values 224-254 pass through unchanged.
func PosterizeCompat(g *bitmap.Grid) *bitmap.Grid {
	return mapPixels(g, func(c pixel.Color) pixel.Color {
		r, gr, b := c.RGB()
		if b < 224 {
			b = posterLevel(b)
		}
		return pixel.Pack(posterLevel(r), posterLevel(gr), b)
	})
}

func posterLevel(v int) int {
	switch {
	case v < 32:
		return 0
	case v < 96:
		return 64
	case v < 160:
		return 128
	case v < 224:
		return 192
	default:
		return 255
	}
}

// mapPixels returns a new grid of the same shape with f applied per pixel.
func mapPixels(g *bitmap.Grid, f func(pixel.Color) pixel.Color) *bitmap.Grid {
	out := bitmap.New(g.Width, g.Height)
	for i, c := range g.Pixels {
		out.Pixels[i] = f(c)
	}
	return out
}

// average returns the per-channel truncated mean of cs.
func average(cs ...pixel.Color) pixel.Color {
	var r, gr, b int
	for _, c := range cs {
		cr, cg, cb := c.RGB()
		r += cr
		gr += cg
		b += cb
	}
	n := len(cs)
	return pixel.Pack(r/n, gr/n, b/n)
}
