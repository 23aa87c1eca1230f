// Package wire encodes rendered frames for the websocket viewer.
//
// A frame is a 20 byte big-endian header followed by the gzip compressed
// grayscale raster:
//
//	magic "MZF1" | generation uint64 | width uint32 | height uint32 | gzip(pixels)
//
// Browsers inflate the payload with DecompressionStream("gzip").
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	mandel "github.com/marben/mandelzoom"
)

const (
	Magic      = "MZF1"
	HeaderSize = 20

	// maxPixels bounds what DecodeFrame is willing to inflate
	maxPixels = 1 << 28
)

var ErrCorruptFrame = errors.New("corrupt frame")

type Header struct {
	Generation    uint64
	Width, Height uint32
}

func (h Header) Bounds() mandel.Bounds {
	return mandel.Bounds{Width: int(h.Width), Height: int(h.Height)}
}

var gzipPool = sync.Pool{
	New: func() any {
		zw, err := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		if err != nil {
			panic(err)
		}
		return zw
	},
}

// EncodeFrame writes f to w
func EncodeFrame(w io.Writer, f *mandel.Frame) error {
	b := f.Bounds()

	var hdr [HeaderSize]byte
	copy(hdr[:4], Magic)
	binary.BigEndian.PutUint64(hdr[4:12], f.Generation)
	binary.BigEndian.PutUint32(hdr[12:16], uint32(b.Width))
	binary.BigEndian.PutUint32(hdr[16:20], uint32(b.Height))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	zw := gzipPool.Get().(*gzip.Writer)
	defer gzipPool.Put(zw)
	zw.Reset(w)

	if _, err := zw.Write(f.Pix()); err != nil {
		return fmt.Errorf("compress pixels: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress pixels: %w", err)
	}
	return nil
}

// DecodeFrame reads one frame from r and returns its header and raster
func DecodeFrame(r io.Reader) (Header, []byte, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Header{}, nil, fmt.Errorf("%w: header: %v", ErrCorruptFrame, err)
	}
	if string(hdr[:4]) != Magic {
		return Header{}, nil, fmt.Errorf("%w: bad magic %q", ErrCorruptFrame, hdr[:4])
	}

	h := Header{
		Generation: binary.BigEndian.Uint64(hdr[4:12]),
		Width:      binary.BigEndian.Uint32(hdr[12:16]),
		Height:     binary.BigEndian.Uint32(hdr[16:20]),
	}
	n := uint64(h.Width) * uint64(h.Height)
	if n == 0 || n > maxPixels {
		return h, nil, fmt.Errorf("%w: size %dx%d", ErrCorruptFrame, h.Width, h.Height)
	}

	zr, err := gzip.NewReader(r)
	if err != nil {
		return h, nil, fmt.Errorf("%w: %v", ErrCorruptFrame, err)
	}
	defer zr.Close()

	pix, err := io.ReadAll(io.LimitReader(zr, int64(n)+1))
	if err != nil {
		return h, nil, fmt.Errorf("%w: %v", ErrCorruptFrame, err)
	}
	if uint64(len(pix)) != n {
		return h, nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrCorruptFrame, len(pix), h.Width, h.Height)
	}
	return h, pix, nil
}
