package bmp

import (
	"encoding/binary"
	"fmt"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/errors"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40

	// headerLen is the offset of the pixel data in files this package writes.
	headerLen = fileHeaderLen + infoHeaderLen

	bitsPerPixel   = 24
	bytesPerPixel  = bitsPerPixel / 8
	compressionRGB = 0
)

// Field offsets within the combined file and info headers.
const (
	offMagic       = 0
	offFileSize    = 2
	offDataOffset  = 10
	offDIBSize     = 14
	offWidth       = 18
	offHeight      = 22
	offPlanes      = 26
	offBitCount    = 28
	offCompression = 30
	offImageSize   = 34
	offXPelsPerM   = 38
	offYPelsPerM   = 42
	offColorsUsed  = 46
	offColorsImp   = 50
)

// Header holds the file and DIB header fields of a bitmap.
type Header struct {
	Magic           [2]byte
	FileSize        uint32
	DataOffset      uint32
	DIBSize         uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Stride returns the padded row length in bytes for the header's width.
func (h Header) Stride() int { return Stride(int(h.Width)) }

// PixelBytes returns the number of pixel-data bytes the header describes,
// or 0 unless both dimensions are positive. The product of any int32 width
// and height fits in a uint64.
func (h Header) PixelBytes() uint64 {
	if h.Width <= 0 || h.Height <= 0 {
		return 0
	}
	stride := (bitsPerPixel*uint64(h.Width) + 31) / 32 * 4
	return stride * uint64(h.Height)
}

// Stride returns the length in bytes of one padded 24-bit row of the given
// width: the row is rounded up to a 4-byte boundary.
func Stride(width int) int {
	return (bitsPerPixel*width + 31) / 32 * 4
}

// FileSize returns the exact size of the BMP file Encode produces for g.
func FileSize(g *bitmap.Grid) int {
	return headerLen + Stride(g.Width)*g.Height
}

// ReadHeader parses and validates the headers at the start of buf without
// touching the pixel data.
//
// It fails with TRUNCATED_FILE if buf cannot hold both headers,
// INVALID_MAGIC if buf does not start with "BM", UNSUPPORTED_COLOR_DEPTH
// unless the depth is 24, UNSUPPORTED_COMPRESSION unless the compression
// method is 0, and INVALID_DIMENSIONS unless width and height are positive.
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < 2 {
		return Header{}, errors.New(errors.ErrCodeTruncatedFile, "file is %d bytes, too short for a bitmap header", len(buf))
	}
	if buf[0] != 'B' || buf[1] != 'M' {
		return Header{}, errors.New(errors.ErrCodeInvalidMagic, "not a bitmap: signature %q, want %q", buf[:2], "BM")
	}
	if len(buf) < headerLen {
		return Header{}, errors.New(errors.ErrCodeTruncatedFile, "file is %d bytes, headers need %d", len(buf), headerLen)
	}

	h := parseHeader(buf)
	if h.BitCount != bitsPerPixel {
		return h, errors.New(errors.ErrCodeUnsupportedColorDepth, "color depth is %d bits, only %d is supported", h.BitCount, bitsPerPixel)
	}
	if h.Compression != compressionRGB {
		return h, errors.New(errors.ErrCodeUnsupportedCompression, "compression method is %d, only %d (uncompressed) is supported", h.Compression, compressionRGB)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return h, errors.New(errors.ErrCodeInvalidDimensions, "dimensions %dx%d are not both positive", h.Width, h.Height)
	}
	return h, nil
}

// parseHeader reads every header field at its fixed little-endian offset.
// buf must be at least headerLen bytes.
func parseHeader(buf []byte) Header {
	le := binary.LittleEndian
	return Header{
		Magic:           [2]byte{buf[offMagic], buf[offMagic+1]},
		FileSize:        le.Uint32(buf[offFileSize:]),
		DataOffset:      le.Uint32(buf[offDataOffset:]),
		DIBSize:         le.Uint32(buf[offDIBSize:]),
		Width:           int32(le.Uint32(buf[offWidth:])),
		Height:          int32(le.Uint32(buf[offHeight:])),
		Planes:          le.Uint16(buf[offPlanes:]),
		BitCount:        le.Uint16(buf[offBitCount:]),
		Compression:     le.Uint32(buf[offCompression:]),
		ImageSize:       le.Uint32(buf[offImageSize:]),
		XPelsPerMeter:   int32(le.Uint32(buf[offXPelsPerM:])),
		YPelsPerMeter:   int32(le.Uint32(buf[offYPelsPerM:])),
		ColorsUsed:      le.Uint32(buf[offColorsUsed:]),
		ColorsImportant: le.Uint32(buf[offColorsImp:]),
	}
}

// String summarizes the header on one line.
func (h Header) String() string {
	return fmt.Sprintf("%dx%d %dbpp compression=%d offset=%d size=%d",
		h.Width, h.Height, h.BitCount, h.Compression, h.DataOffset, h.FileSize)
}
