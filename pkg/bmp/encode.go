package bmp

import (
	"encoding/binary"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/errors"
)

// Encode serializes g into a new buffer of exactly FileSize(g) bytes.
// It fails with INVALID_DIMENSIONS if g is empty or inconsistent.
func Encode(g *bitmap.Grid) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDimensions, err, "cannot encode grid")
	}
	buf := make([]byte, FileSize(g))
	if err := EncodeTo(buf, g); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeTo writes the BMP representation of g into dst, which must be at
// least FileSize(g) bytes long.
//
// Only header fields and pixel bytes are written. Reserved header fields and
// the per-row padding keep their existing contents, so dst should be zeroed
// (a new slice, or a file that was just truncated and extended).
func EncodeTo(dst []byte, g *bitmap.Grid) error {
	if err := g.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDimensions, err, "cannot encode grid")
	}
	size := FileSize(g)
	if len(dst) < size {
		return errors.New(errors.ErrCodeTruncatedFile, "output buffer is %d bytes, %s bitmap needs %d", len(dst), g, size)
	}

	stride := Stride(g.Width)
	le := binary.LittleEndian

	dst[offMagic] = 'B'
	dst[offMagic+1] = 'M'
	le.PutUint32(dst[offFileSize:], uint32(size))
	le.PutUint32(dst[offDataOffset:], headerLen)
	le.PutUint32(dst[offDIBSize:], infoHeaderLen)
	le.PutUint32(dst[offWidth:], uint32(int32(g.Width)))
	le.PutUint32(dst[offHeight:], uint32(int32(g.Height)))
	le.PutUint16(dst[offPlanes:], 1)
	le.PutUint16(dst[offBitCount:], bitsPerPixel)
	le.PutUint32(dst[offCompression:], compressionRGB)
	le.PutUint32(dst[offImageSize:], uint32(stride*g.Height))
	le.PutUint32(dst[offColorsUsed:], 0)

	for y := 0; y < g.Height; y++ {
		row := dst[headerLen+(g.Height-1-y)*stride:]
		for x, c := range g.Pixels[y*g.Width : (y+1)*g.Width] {
			p := row[x*bytesPerPixel:]
			r, gr, b := c.RGB()
			p[0] = byte(b)
			p[1] = byte(gr)
			p[2] = byte(r)
		}
	}
	return nil
}
