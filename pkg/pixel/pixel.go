// Package pixel packs and unpacks 24-bit RGB colors.
//
// A [Color] stores three 8-bit channels in the low 24 bits of a uint32 as
// (R<<16)|(G<<8)|B. This is the in-memory pixel representation used by
// [github.com/matzehuels/bmpedit/pkg/bitmap] and every transform.
package pixel

// Color is a packed 24-bit RGB value.
type Color uint32

// Common colors.
const (
	Black Color = 0x000000
	White Color = 0xffffff
)

// Pack combines r, g and b into a Color.
//
// Each input is masked to its low 8 bits before packing. Out-of-range values
// are truncated silently (300 becomes 44, -1 becomes 255); callers that need
// clamping must clamp before packing.
func Pack(r, g, b int) Color {
	return Color((r&0xff)<<16 | (g&0xff)<<8 | (b & 0xff))
}

// Unpack splits c into its red, green and blue channels.
// It is the inverse of Pack for values Pack produced.
func Unpack(c Color) (r, g, b int) {
	r = int(c>>16) & 0xff
	g = int(c>>8) & 0xff
	b = int(c) & 0xff
	return r, g, b
}

// RGB is a method form of Unpack.
func (c Color) RGB() (r, g, b int) {
	return Unpack(c)
}

// Gray returns the color with all three channels set to v (masked to 8 bits).
func Gray(v int) Color {
	return Pack(v, v, v)
}
