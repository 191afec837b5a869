// Package bmp reads and writes uncompressed 24-bit Windows bitmaps.
//
// # Accepted Subset
//
// Only one BMP variant is supported, on read and on write:
//
//   - 14-byte file header followed by a 40-byte BITMAPINFOHEADER
//   - 24 bits per pixel, compression method 0 (BI_RGB), no palette
//   - positive width and height (bottom-up row order)
//
// Anything else is rejected by [Decode] and [ReadHeader] with a coded error
// from [github.com/matzehuels/bmpedit/pkg/errors].
//
// # Row Layout
//
// Rows are stored bottom-to-top. Each row holds width B,G,R byte triples and
// is padded to a multiple of four bytes:
//
//	stride   = ((24*width + 31) / 32) * 4
//	fileSize = 54 + stride*height
//
// A 2-pixel-wide row uses 6 bytes of color and 2 bytes of padding.
//
// # Encoding
//
// [Encode] allocates a zeroed buffer of exactly [FileSize] bytes. [EncodeTo]
// writes into a caller-supplied buffer, typically a freshly truncated
// memory-mapped file. Padding bytes are never written; they keep whatever
// the buffer was initialized with, which is zero in both cases.
package bmp
