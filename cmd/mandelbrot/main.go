// mandelbrot renders one view of the Mandelbrot set to a grayscale PNG file.
//
//	mandelbrot OUTPUT_FILE WIDTHxHEIGHT UPPER_RE,UPPER_IM LOWER_RE,LOWER_IM
package main

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	mandel "github.com/marben/mandelzoom"
)

func main() {
	if len(os.Args) != 5 {
		usage(os.Stderr, os.Args[0])
		os.Exit(1)
	}
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func usage(w io.Writer, prog string) {
	fmt.Fprintln(w, "Usage: mandelbrot FILE PIXELS UPPERLEFT LOWERRIGHT")
	fmt.Fprintf(w, "Example: %s mandel.png 1000x750 -1.20,0.35 -1,0.20\n", prog)
}

type job struct {
	filename string
	bounds   mandel.Bounds
	viewport mandel.Viewport
}

// parseArgs turns the four positional arguments into a job
func parseArgs(args []string) (job, error) {
	if len(args) != 4 {
		return job{}, fmt.Errorf("want 4 arguments, got %d", len(args))
	}

	bounds, err := mandel.ParseBounds(args[1])
	if err != nil {
		return job{}, fmt.Errorf("error parsing image dimensions: %w", err)
	}
	upperLeft, err := mandel.ParseComplex(args[2])
	if err != nil {
		return job{}, fmt.Errorf("error parsing upper left corner point: %w", err)
	}
	lowerRight, err := mandel.ParseComplex(args[3])
	if err != nil {
		return job{}, fmt.Errorf("error parsing lower right corner point: %w", err)
	}

	v := mandel.Viewport{UpperLeft: upperLeft, LowerRight: lowerRight}
	if !v.Valid() {
		return job{}, fmt.Errorf("upper left %s must be left of and above lower right", v)
	}

	return job{filename: args[0], bounds: bounds, viewport: v}, nil
}

// run renders the view described by args and saves it as a PNG file
func run(args []string) error {
	j, err := parseArgs(args)
	if err != nil {
		return err
	}

	log.Printf("Rendering %s of %s...", j.bounds, j.viewport)
	start := time.Now()
	pixels := mandel.BandRenderer{}.Render(j.bounds, j.viewport)
	log.Printf("Rendered in %s: %s", time.Since(start), mandel.Summarize(pixels))

	if err := writeImage(j.filename, pixels); err != nil {
		return fmt.Errorf("error writing PNG file: %w", err)
	}

	log.Printf("Saved to %q", j.filename)
	return nil
}

func writeImage(filename string, pixels *mandel.PixelBuffer) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := png.Encode(f, pixels.Gray()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
