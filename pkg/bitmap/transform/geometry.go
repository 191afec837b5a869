package transform

import (
	"github.com/matzehuels/bmpedit/pkg/bitmap"
)

// Mirror returns a grid twice as wide: pixel (x, y) appears at (x, y) and at
// (2w-1-x, y).
func Mirror(g *bitmap.Grid) *bitmap.Grid {
	w := g.Width
	out := bitmap.New(2*w, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			out.Set(x, y, c)
			out.Set(2*w-1-x, y, c)
		}
	}
	return out
}

// Squash halves the width, averaging columns x and x+1 into column x/2.
// With an odd width the last column is dropped.
func Squash(g *bitmap.Grid) *bitmap.Grid {
	out := bitmap.New(g.Width/2, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x+1 < g.Width; x += 2 {
			out.Set(x/2, y, average(g.At(x, y), g.At(x+1, y)))
		}
	}
	return out
}

// Shrink halves both dimensions, averaging each 2×2 block into one pixel.
// With an odd width or height the last column or row is dropped.
func Shrink(g *bitmap.Grid) *bitmap.Grid {
	out := bitmap.New(g.Width/2, g.Height/2)
	for y := 0; y+1 < g.Height; y += 2 {
		for x := 0; x+1 < g.Width; x += 2 {
			out.Set(x/2, y/2, average(
				g.At(x, y), g.At(x+1, y),
				g.At(x, y+1), g.At(x+1, y+1),
			))
		}
	}
	return out
}

// Reflect flips every row horizontally: output (w-1-x, y) is input (x, y).
func Reflect(g *bitmap.Grid) *bitmap.Grid {
	w := g.Width
	out := bitmap.New(w, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, y, g.At(x, y))
		}
	}
	return out
}

// ReflectCompat reproduces the legacy reflect, which writes input (x, y) to
// flattened index y*w + (w-x+1). That shifts every row two columns right and
// wraps the first two input columns into the next row. Writes that fall
// past the last pixel are dropped and unwritten pixels stay black.
func ReflectCompat(g *bitmap.Grid) *bitmap.Grid {
	w := g.Width
	out := bitmap.New(w, g.Height)
	n := len(out.Pixels)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < w; x++ {
			if i := y*w + (w - x + 1); i < n {
				out.Pixels[i] = g.At(x, y)
			}
		}
	}
	return out
}

// Rotate transposes g: output (y, x) is input (x, y), so the result is
// Height wide and Width tall. Applying it twice restores the input.
func Rotate(g *bitmap.Grid) *bitmap.Grid {
	out := bitmap.New(g.Height, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out.Set(y, x, g.At(x, y))
		}
	}
	return out
}

// Skew shifts the flattened pixel buffer so that input index i lands at
// i - y, where y is the row of i. Rows are not reset independently: the
// first pixel of row y+1 overwrites the last pixel written for row y, and
// the final Height-1 pixels of the output are never written and stay black.
func Skew(g *bitmap.Grid) *bitmap.Grid {
	out := bitmap.New(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.Index(x, y)
			out.Pixels[i-y] = g.Pixels[i]
		}
	}
	return out
}
