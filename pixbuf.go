package mandel

import (
	"fmt"
	"image"
)

// PixelBuffer is a grayscale raster, one byte per pixel, row-major, top row first.
// Only the renderer writes into it; once returned it is read-only.
type PixelBuffer struct {
	bounds Bounds
	pix    []byte
}

// NewPixelBuffer allocates a zero-filled buffer for b.
// It panics if b is not positive.
func NewPixelBuffer(b Bounds) *PixelBuffer {
	if !b.Valid() {
		panic(fmt.Sprintf("pixel buffer bounds must be positive, got %s", b))
	}
	return &PixelBuffer{bounds: b, pix: make([]byte, b.Len())}
}

func (pb *PixelBuffer) Bounds() Bounds {
	return pb.bounds
}

// Pix exposes the raster. Callers must not modify it.
func (pb *PixelBuffer) Pix() []byte {
	return pb.pix
}

func (pb *PixelBuffer) At(x, y int) uint8 {
	return pb.pix[y*pb.bounds.Width+x]
}

// Gray wraps the raster as an image without copying
func (pb *PixelBuffer) Gray() *image.Gray {
	return &image.Gray{
		Pix:    pb.pix,
		Stride: pb.bounds.Width,
		Rect:   pb.bounds.Rect(),
	}
}

// band hands out the exclusive sub-slice a band renders into
func (pb *PixelBuffer) band(b Band) []byte {
	return pb.pix[b.Offset : b.Offset+b.Len : b.Offset+b.Len]
}
