// viewer is the native interactive Mandelbrot viewer.
// Drag with the left button to zoom, R resets the view, Escape or Q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/internal/config"
)

// SDL wants its events serviced from the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	configPath := flag.String("config", "mandelzoom.yaml", "YAML configuration file, defaults are used if it does not exist")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	initial, err := cfg.Viewport()
	if err != nil {
		return err
	}
	b := cfg.Bounds()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl.Init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("mandelzoom",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(b.Width), int32(b.Height),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return fmt.Errorf("sdl.CreateWindow: %w", err)
	}
	defer window.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	view := mandel.NewView(mandel.NewController(b, initial), cfg.Renderer())
	defer view.Close()

	log.Printf("rendering %s of %s", b, initial)
	if err := view.Init(ctx); err != nil {
		return err
	}

	scr := &screen{window: window, view: view, sync: cfg.Render.Sync}
	return scr.loop(ctx)
}
