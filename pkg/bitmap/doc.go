// Package bitmap defines the in-memory pixel grid shared by the BMP codec
// and the image transforms.
//
// # Layout
//
// A [Grid] stores packed [pixel.Color] values row-major with the top row
// first, so the pixel at column x, row y lives at Pixels[y*Width+x]. This is
// the opposite of the bottom-up order BMP files use on disk; the codec in
// [github.com/matzehuels/bmpedit/pkg/bmp] does the flip.
//
// # Ownership
//
// Grids are passed by pointer but treated as owned values: a transform reads
// its input and returns a freshly allocated grid. Callers replace their
// reference with the result and drop the old grid:
//
//	g = transform.Mirror(g)
//
// No transform keeps a reference to its input or returns a grid that shares
// the input's pixel slice.
package bitmap
