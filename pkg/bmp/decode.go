package bmp

import (
	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/errors"
	"github.com/matzehuels/bmpedit/pkg/pixel"
)

// Decode parses a complete BMP file held in buf into a top-down pixel grid.
//
// Header validation follows ReadHeader. In addition buf must hold at least
// DataOffset + stride*height bytes, otherwise Decode fails with
// TRUNCATED_FILE. Bytes past the last row and the padding at the end of each
// row are ignored. On error no grid is returned.
func Decode(buf []byte) (*bitmap.Grid, error) {
	h, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}

	need := uint64(h.DataOffset) + h.PixelBytes()
	if uint64(len(buf)) < need {
		return nil, errors.New(errors.ErrCodeTruncatedFile,
			"file is %d bytes, %dx%d pixel data at offset %d needs %d", len(buf), h.Width, h.Height, h.DataOffset, need)
	}

	// The pixel data fits in buf, so every offset below fits in an int.
	width, height := int(h.Width), int(h.Height)
	stride := Stride(width)

	g := bitmap.New(width, height)
	base := int(h.DataOffset)
	for y := 0; y < height; y++ {
		// Rows are stored bottom-to-top.
		row := buf[base+(height-1-y)*stride:]
		out := g.Pixels[y*width : (y+1)*width]
		for x := range out {
			p := row[x*bytesPerPixel:]
			out[x] = pixel.Pack(int(p[2]), int(p[1]), int(p[0]))
		}
	}
	return g, nil
}
