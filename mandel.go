package mandel

import (
	"fmt"
	"image"
)

// Bounds is the size of an image in pixels
type Bounds struct {
	Width, Height int
}

// Len is the number of pixels covered by b
func (b Bounds) Len() int {
	return b.Width * b.Height
}

// Valid reports whether both dimensions are positive
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Rect returns the pixel rectangle (0,0)-(Width,Height)
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Viewport is the rectangle of the complex plane mapped onto an image.
// Imaginary part decreases downwards, so UpperLeft has the larger imaginary part.
type Viewport struct {
	UpperLeft  complex128
	LowerRight complex128
}

// Valid reports whether v spans a non-empty area with the image orientation
func (v Viewport) Valid() bool {
	return real(v.UpperLeft) < real(v.LowerRight) && imag(v.UpperLeft) > imag(v.LowerRight)
}

func (v Viewport) String() string {
	return fmt.Sprintf("%g,%g %g,%g", real(v.UpperLeft), imag(v.UpperLeft), real(v.LowerRight), imag(v.LowerRight))
}

// PixelToPoint maps the pixel px (X is the column, Y the row) of an image
// sized b onto the complex plane covered by v.
// Rows grow downwards while the imaginary axis grows upwards, hence the subtraction.
func PixelToPoint(b Bounds, px image.Point, v Viewport) complex128 {
	spanRe := real(v.LowerRight) - real(v.UpperLeft)
	spanIm := imag(v.UpperLeft) - imag(v.LowerRight)
	return complex(
		real(v.UpperLeft)+float64(px.X)*spanRe/float64(b.Width),
		imag(v.UpperLeft)-float64(px.Y)*spanIm/float64(b.Height),
	)
}

// RectToViewport maps the pixel rectangle r of an image sized b onto the
// sub-viewport of v it covers
func RectToViewport(b Bounds, r image.Rectangle, v Viewport) Viewport {
	return Viewport{
		UpperLeft:  PixelToPoint(b, r.Min, v),
		LowerRight: PixelToPoint(b, r.Max, v),
	}
}
