package bitmap

import (
	"fmt"
	"slices"

	"github.com/matzehuels/bmpedit/pkg/pixel"
)

// Grid is a rectangular image of packed RGB pixels.
//
// The zero value is an empty 0×0 grid. Grids produced by New, the codec and
// the transforms always satisfy len(Pixels) == Width*Height.
type Grid struct {
	Width  int
	Height int
	Pixels []pixel.Color
}

// New allocates a black width×height grid.
// Non-positive dimensions produce an empty grid of that shape with no pixels.
func New(width, height int) *Grid {
	n := 0
	if width > 0 && height > 0 {
		n = width * height
	}
	return &Grid{Width: width, Height: height, Pixels: make([]pixel.Color, n)}
}

// Filled allocates a width×height grid with every pixel set to c.
func Filled(width, height int, c pixel.Color) *Grid {
	g := New(width, height)
	for i := range g.Pixels {
		g.Pixels[i] = c
	}
	return g
}

// Index returns the linear index of (x, y).
func (g *Grid) Index(x, y int) int { return y*g.Width + x }

// At returns the pixel at column x, row y. It panics if (x, y) is outside
// the grid.
func (g *Grid) At(x, y int) pixel.Color { return g.Pixels[g.Index(x, y)] }

// Set stores c at column x, row y.
func (g *Grid) Set(x, y int, c pixel.Color) { g.Pixels[g.Index(x, y)] = c }

// Len returns the number of pixels.
func (g *Grid) Len() int { return len(g.Pixels) }

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{Width: g.Width, Height: g.Height, Pixels: slices.Clone(g.Pixels)}
}

// Equal reports whether g and o have the same dimensions and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.Width == o.Width && g.Height == o.Height && slices.Equal(g.Pixels, o.Pixels)
}

// Validate checks that the dimensions are positive and match the pixel count.
func (g *Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Pixels) != g.Width*g.Height {
		return fmt.Errorf("grid %dx%d has %d pixels, want %d", g.Width, g.Height, len(g.Pixels), g.Width*g.Height)
	}
	return nil
}

// String returns a short description such as "640x480".
func (g *Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}
