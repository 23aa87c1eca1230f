package mandel

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Frame is a rendered buffer together with the view it shows
type Frame struct {
	*PixelBuffer
	Viewport   Viewport
	Generation uint64
	Elapsed    time.Duration
}

// View owns the controller and the frame on display.
// The displayed frame is swapped atomically, readers never see a partial render.
type View struct {
	ctrl     *Controller
	renderer Renderer

	frame   atomic.Pointer[Frame]
	updated chan struct{}

	m      sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ FrameProvider = (*View)(nil)

func NewView(ctrl *Controller, r Renderer) *View {
	return &View{
		ctrl:     ctrl,
		renderer: r,
		updated:  make(chan struct{}, 1),
	}
}

func (v *View) Controller() *Controller {
	return v.ctrl
}

// Frame returns the frame on display, nil before the first render
func (v *View) Frame() *Frame {
	return v.frame.Load()
}

// Updated receives a value whenever a new frame has been put on display.
// Notifications coalesce; read Frame for the latest one.
func (v *View) Updated() <-chan struct{} {
	return v.updated
}

// Init renders the controller's current viewport and blocks until it is on display
func (v *View) Init(ctx context.Context) error {
	return v.render(ctx, v.nextGen(), v.ctrl.Viewport())
}

// Process renders any pending zoom or reset on the calling goroutine.
// It reports whether a new frame was put on display.
func (v *View) Process(ctx context.Context) (bool, error) {
	vp, ok := v.ctrl.Take()
	if !ok {
		return false, nil
	}
	if err := v.render(ctx, v.nextGen(), vp); err != nil {
		return false, err
	}
	return true, nil
}

// Schedule starts rendering any pending zoom or reset in the background.
// A render still in flight is cancelled and its result dropped.
// It reports whether a render was started.
func (v *View) Schedule(ctx context.Context) bool {
	vp, ok := v.ctrl.Take()
	if !ok {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)

	v.m.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	v.cancel = cancel
	v.m.Unlock()

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer cancel()
		err := v.render(ctx, gen, vp)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("render of generation %d failed: %v", gen, err)
		}
	}()
	return true
}

// Close cancels the render in flight and waits for it to stop
func (v *View) Close() {
	v.m.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.m.Unlock()
	v.wg.Wait()
}

func (v *View) nextGen() uint64 {
	v.m.Lock()
	defer v.m.Unlock()
	v.gen++
	return v.gen
}

func (v *View) render(ctx context.Context, gen uint64, vp Viewport) error {
	start := time.Now()
	pb, err := v.renderer.RenderContext(ctx, v.ctrl.Bounds(), vp)
	if err != nil {
		return fmt.Errorf("render %s: %w", vp, err)
	}
	v.publish(&Frame{
		PixelBuffer: pb,
		Viewport:    vp,
		Generation:  gen,
		Elapsed:     time.Since(start),
	})
	return nil
}

// publish puts f on display unless a newer generation was requested meanwhile
func (v *View) publish(f *Frame) bool {
	v.m.Lock()
	defer v.m.Unlock()
	if f.Generation != v.gen {
		return false
	}
	v.frame.Store(f)

	select {
	case v.updated <- struct{}{}:
	default:
	}
	return true
}
