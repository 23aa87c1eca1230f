package main

import (
	"context"
	"log"
	"sync"

	mandel "github.com/marben/mandelzoom"
)

// progress tracks the bands of one render
type progress struct {
	name string

	totalRows    int
	finishedRows int
	m            sync.Mutex
}

func newProgress(name string, b mandel.Bounds) *progress {
	return &progress{name: name, totalRows: b.Height}
}

func (p *progress) finished() float32 {
	p.m.Lock()
	defer p.m.Unlock()
	return float32(p.finishedRows) / float32(p.totalRows)
}

// bandFinished is the renderer's OnBand hook.
// It is called concurrently from the band goroutines.
func (p *progress) bandFinished(band mandel.Band) {
	p.m.Lock()
	p.finishedRows += band.Height
	p.m.Unlock()

	log.Printf("%s: %s finished: %f", p.name, band, p.finished())
}

// progressRenderer logs the progress of every render it performs
type progressRenderer struct {
	name string
	base mandel.BandRenderer
}

var _ mandel.Renderer = progressRenderer{}

func (r progressRenderer) RenderContext(ctx context.Context, b mandel.Bounds, v mandel.Viewport) (*mandel.PixelBuffer, error) {
	p := newProgress(r.name, b)
	br := r.base
	br.OnBand = p.bandFinished
	return br.RenderContext(ctx, b, v)
}
