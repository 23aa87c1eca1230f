package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"log"

	"github.com/veandco/go-sdl2/sdl"

	mandel "github.com/marben/mandelzoom"
)

const (
	// milliseconds to wait for an event before checking for finished renders
	idleWait = 16

	selectionBorder = 2
)

// screen draws the view into the window surface and feeds it user input
type screen struct {
	window *sdl.Window
	view   *mandel.View

	// sync renders on the event loop instead of in the background
	sync bool

	// grays maps intensities to pixel values of the surface format.
	// built on first use because the format is only known once the surface exists.
	grays    [256]uint32
	green    uint32
	format   uint32
	paletted bool
}

// loop services events until the user quits
func (scr *screen) loop(ctx context.Context) error {
	ctrl := scr.view.Controller()
	dirty := true

	for {
		for ev := sdl.WaitEventTimeout(idleWait); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {

			// close window
			case *sdl.QuitEvent:
				return nil

			case *sdl.KeyboardEvent:
				if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
					continue
				}
				switch sdl.GetKeyName(ev.Keysym.Sym) {
				case "R":
					ctrl.Reset()
				case "Escape", "Q":
					return nil
				}

			case *sdl.MouseButtonEvent:
				if ev.Button != sdl.BUTTON_LEFT {
					continue
				}
				if ev.Type == sdl.MOUSEBUTTONDOWN {
					ctrl.PointerDown(image.Pt(int(ev.X), int(ev.Y)))
				} else {
					ctrl.PointerUp()
				}

			case *sdl.MouseMotionEvent:
				ctrl.PointerMove(image.Pt(int(ev.X), int(ev.Y)))
			}
			dirty = true
		}

		if err := scr.update(ctx); err != nil {
			return err
		}

		select {
		case <-scr.view.Updated():
			f := scr.view.Frame()
			log.Printf("frame %d rendered in %s", f.Generation, f.Elapsed)
			dirty = true
		default:
		}

		if dirty {
			if err := scr.present(); err != nil {
				return err
			}
			dirty = false
		}
	}
}

// update starts rendering a pending zoom or reset, or renders it right
// away in sync mode
func (scr *screen) update(ctx context.Context) error {
	ctrl := scr.view.Controller()
	if !scr.sync {
		if scr.view.Schedule(ctx) {
			log.Printf("zooming to %s", ctrl.Viewport())
		}
		return nil
	}

	ok, err := scr.view.Process(ctx)
	if err != nil {
		return err
	}
	if ok {
		log.Printf("zoomed to %s", ctrl.Viewport())
	}
	return nil
}

// present copies the current frame and the selection outline to the window
func (scr *screen) present() error {
	f := scr.view.Frame()
	if f == nil {
		return nil
	}

	surface, err := scr.window.GetSurface()
	if err != nil {
		return fmt.Errorf("window surface: %w", err)
	}
	scr.palette(surface)

	if err := surface.Lock(); err != nil {
		return fmt.Errorf("lock surface: %w", err)
	}
	scr.blit(surface, f.PixelBuffer)
	surface.Unlock()

	if r, ok := scr.view.Controller().Selection(); ok {
		if err := scr.outline(surface, r); err != nil {
			return err
		}
	}

	return scr.window.UpdateSurface()
}

func (scr *screen) palette(surface *sdl.Surface) {
	if scr.paletted && scr.format == surface.Format.Format {
		return
	}
	for i := range scr.grays {
		g := uint8(i)
		scr.grays[i] = sdl.MapRGB(surface.Format, g, g, g)
	}
	scr.green = sdl.MapRGB(surface.Format, 0, 255, 0)
	scr.format = surface.Format.Format
	scr.paletted = true
}

// blit writes pb into the surface pixels using the precomputed palette
func (scr *screen) blit(surface *sdl.Surface, pb *mandel.PixelBuffer) {
	pix := surface.Pixels()
	bpp := int(surface.Format.BytesPerPixel)
	pitch := int(surface.Pitch)
	b := pb.Bounds()
	w := min(b.Width, int(surface.W))
	h := min(b.Height, int(surface.H))

	for y := 0; y < h; y++ {
		row := pix[y*pitch:]
		for x := 0; x < w; x++ {
			c := scr.grays[pb.At(x, y)]
			o := x * bpp
			switch bpp {
			case 4:
				binary.NativeEndian.PutUint32(row[o:], c)
			case 3:
				row[o], row[o+1], row[o+2] = byte(c), byte(c>>8), byte(c>>16)
			case 2:
				binary.NativeEndian.PutUint16(row[o:], uint16(c))
			default:
				row[o] = byte(c)
			}
		}
	}
}

// outline draws the border of r in green
func (scr *screen) outline(surface *sdl.Surface, r image.Rectangle) error {
	x, y := int32(r.Min.X), int32(r.Min.Y)
	w, h := int32(r.Dx()), int32(r.Dy())
	edges := []sdl.Rect{
		{X: x, Y: y, W: w, H: selectionBorder},
		{X: x, Y: y + h - selectionBorder, W: w, H: selectionBorder},
		{X: x, Y: y, W: selectionBorder, H: h},
		{X: x + w - selectionBorder, Y: y, W: selectionBorder, H: h},
	}
	for i := range edges {
		if err := surface.FillRect(&edges[i], scr.green); err != nil {
			return fmt.Errorf("draw selection: %w", err)
		}
	}
	return nil
}
