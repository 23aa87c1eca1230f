package mandel

import (
	"errors"
	"fmt"
	"image"
)

// ErrBadPartition means a set of bands leaves a gap or overlaps
var ErrBadPartition = errors.New("bands do not partition the image")

// Band is a horizontal slice of a PixelBuffer owned by a single render goroutine
type Band struct {
	Index  int
	Top    int // first row in the full image
	Height int // rows in the band

	// Offset and Len locate the band's pixels in the full raster
	Offset, Len int

	// Viewport is the part of the complex plane the band covers
	Viewport Viewport
}

// Bounds are the band's local bounds for an image width w
func (b Band) Bounds(w int) Bounds {
	return Bounds{Width: w, Height: b.Height}
}

// Rect is the band's rectangle in full image coordinates
func (b Band) Rect(w int) image.Rectangle {
	return image.Rect(0, b.Top, w, b.Top+b.Height)
}

func (b Band) String() string {
	return fmt.Sprintf("band %d rows [%d,%d)", b.Index, b.Top, b.Top+b.Height)
}

// RowsPerBand is the ceiling of height/workers
func RowsPerBand(height, workers int) int {
	if workers < 1 {
		workers = 1
	}
	return (height + workers - 1) / workers
}

// Partition splits an image sized b into at most workers consecutive row
// bands and computes the sub-viewport of v each band covers.
// The last band is shorter when height does not divide evenly.
func Partition(b Bounds, v Viewport, workers int) ([]Band, error) {
	if !b.Valid() {
		panic(fmt.Sprintf("partition bounds must be positive, got %s", b))
	}

	rows := RowsPerBand(b.Height, workers)

	var bands []Band
	for top := 0; top < b.Height; top += rows {
		h := rows
		if top+h > b.Height {
			h = b.Height - top
		}

		bands = append(bands, Band{
			Index:  len(bands),
			Top:    top,
			Height: h,
			Offset: top * b.Width,
			Len:    h * b.Width,
			Viewport: Viewport{
				UpperLeft:  PixelToPoint(b, image.Pt(0, top), v),
				LowerRight: PixelToPoint(b, image.Pt(b.Width, top+h), v),
			},
		})
	}

	if err := checkPartition(b, bands); err != nil {
		return nil, err
	}
	return bands, nil
}

// checkPartition verifies that bands cover every row of b exactly once
func checkPartition(b Bounds, bands []Band) error {
	next := 0
	for _, band := range bands {
		switch {
		case band.Height <= 0:
			return fmt.Errorf("%w: %s is empty", ErrBadPartition, band)
		case band.Top != next:
			return fmt.Errorf("%w: %s starts at row %d, want %d", ErrBadPartition, band, band.Top, next)
		case band.Offset != band.Top*b.Width || band.Len != band.Height*b.Width:
			return fmt.Errorf("%w: %s has raster range [%d,%d)", ErrBadPartition, band, band.Offset, band.Offset+band.Len)
		}
		next += band.Height
	}
	if next != b.Height {
		return fmt.Errorf("%w: covered %d of %d rows", ErrBadPartition, next, b.Height)
	}
	return nil
}
