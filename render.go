package mandel

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
)

// BandRenderer renders the set by splitting the image into horizontal bands
// and computing every band on its own goroutine
type BandRenderer struct {
	// Workers is the number of bands. Zero means runtime.NumCPU().
	Workers int

	// Limit is the iteration budget per pixel. Zero means DefaultIterationLimit.
	Limit uint32

	// OnBand, if set, is called after each band completes.
	// It is called concurrently from the render goroutines.
	OnBand func(Band)
}

var _ Renderer = BandRenderer{}

func (r BandRenderer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return max(runtime.NumCPU(), 1)
}

func (r BandRenderer) limit() uint32 {
	if r.Limit > 0 {
		return r.Limit
	}
	return DefaultIterationLimit
}

// Render renders v into a new buffer sized b and returns once every band is done
func (r BandRenderer) Render(b Bounds, v Viewport) *PixelBuffer {
	pb, err := r.RenderContext(context.Background(), b, v)
	if err != nil {
		panic(err)
	}
	return pb
}

// RenderContext is Render with cancellation. Bands check ctx between rows;
// if any band is cancelled no buffer is returned.
func (r BandRenderer) RenderContext(ctx context.Context, b Bounds, v Viewport) (*PixelBuffer, error) {
	pb := NewPixelBuffer(b)

	bands, err := Partition(b, v, r.workers())
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", b, err)
	}

	limit := r.limit()
	errs := make([]error, len(bands))

	var wg sync.WaitGroup
	for _, band := range bands {
		band := band
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[band.Index] = renderBand(ctx, pb.band(band), band.Bounds(b.Width), band.Viewport, limit)
			if errs[band.Index] == nil && r.OnBand != nil {
				r.OnBand(band)
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return pb, nil
}

// renderBand fills pixels, sized b, with the view of v
func renderBand(ctx context.Context, pixels []byte, b Bounds, v Viewport, limit uint32) error {
	if len(pixels) != b.Len() {
		panic(fmt.Sprintf("band raster holds %d pixels, bounds %s need %d", len(pixels), b, b.Len()))
	}

	for row := 0; row < b.Height; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := pixels[row*b.Width : (row+1)*b.Width]
		for col := range line {
			c := PixelToPoint(b, image.Pt(col, row), v)
			line[col] = Intensity(EscapeTime(c, limit))
		}
	}
	return nil
}
