package mandel

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Stats summarises the intensities of a rendered buffer
type Stats struct {
	Pixels int

	// Interior is the fraction of black pixels, points that never escaped
	Interior float64

	Mean, StdDev float64
}

func (s Stats) String() string {
	return fmt.Sprintf("%d pixels, %.1f%% interior, intensity mean %.1f stddev %.1f", s.Pixels, 100*s.Interior, s.Mean, s.StdDev)
}

// intensities are the 256 gray levels, the values Summarize weighs
var intensities = func() (v [256]float64) {
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// Summarize computes Stats over every pixel of pb from a histogram of its gray levels
func Summarize(pb *PixelBuffer) Stats {
	pix := pb.Pix()

	var hist [256]float64
	for _, p := range pix {
		hist[p]++
	}

	mean, std := stat.MeanStdDev(intensities[:], hist[:])
	return Stats{
		Pixels:   len(pix),
		Interior: hist[0] / float64(len(pix)),
		Mean:     mean,
		StdDev:   std,
	}
}
