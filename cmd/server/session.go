package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/internal/config"
	"github.com/marben/mandelzoom/internal/wire"
)

// event is a message from the browser
type event struct {
	Type string `json:"type"` // down, move, up, reset or quit
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// status is sent to the browser as a text message after every change
type status struct {
	Type       string     `json:"type"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	State      string     `json:"state"`
	Viewport   [4]float64 `json:"viewport"`
	Selection  *[4]int    `json:"selection,omitempty"`
	Generation uint64     `json:"generation"`
	ElapsedMs  float64    `json:"elapsedMs"`
	Stats      *statsJSON `json:"stats,omitempty"`
}

type statsJSON struct {
	Interior float64 `json:"interior"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
}

// hub counts the connected sessions
type hub struct {
	cfg *config.Config

	sessions int
	m        sync.Mutex
}

func (h *hub) incSessions() int {
	h.m.Lock()
	defer h.m.Unlock()
	h.sessions++
	return h.sessions
}

func (h *hub) decSessions() int {
	h.m.Lock()
	defer h.m.Unlock()
	h.sessions--
	return h.sessions
}

// session is one browser tab zooming around the set
type session struct {
	name string
	conn *websocket.Conn
	view *mandel.View

	// stats of the frame with generation statsGen
	stats    *statsJSON
	statsGen uint64
}

func newSession(name string, conn *websocket.Conn, cfg *config.Config) (*session, error) {
	initial, err := cfg.Viewport()
	if err != nil {
		return nil, err
	}
	ctrl := mandel.NewController(cfg.Bounds(), initial)
	renderer := progressRenderer{name: name, base: cfg.Renderer()}
	return &session{
		name: name,
		conn: conn,
		view: mandel.NewView(ctrl, renderer),
	}, nil
}

// run serves the session until the browser leaves or ctx is done
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.view.Close()

	// Init leaves an update pending, the loop sends the first frame
	if err := s.view.Init(ctx); err != nil {
		return fmt.Errorf("initial render: %w", err)
	}

	events := make(chan event)
	readErr := make(chan error, 1)
	go func() {
		readErr <- s.readLoop(ctx, events)
	}()

	for {
		select {
		case ev := <-events:
			if ev.Type == "quit" {
				return s.conn.Close(websocket.StatusNormalClosure, "bye")
			}
			s.apply(ev)
			s.view.Schedule(ctx)
			if err := s.sendStatus(ctx); err != nil {
				return err
			}

		case <-s.view.Updated():
			if err := s.sendFrame(ctx); err != nil {
				return err
			}

		case err := <-readErr:
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			return err

		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}

// readLoop passes browser events to the control loop
func (s *session) readLoop(ctx context.Context, events chan<- event) error {
	for {
		var ev event
		if err := wsjson.Read(ctx, s.conn, &ev); err != nil {
			return err
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}

// apply feeds ev to the controller. Pointer positions are clamped to the image.
func (s *session) apply(ev event) {
	ctrl := s.view.Controller()
	p := clamp(image.Pt(ev.X, ev.Y), ctrl.Bounds())

	switch ev.Type {
	case "down":
		ctrl.PointerDown(p)
	case "move":
		ctrl.PointerMove(p)
	case "up":
		ctrl.PointerUp()
	case "reset":
		ctrl.Reset()
	default:
		log.Printf("%s: unknown event %q", s.name, ev.Type)
	}
}

func clamp(p image.Point, b mandel.Bounds) image.Point {
	return image.Pt(min(max(p.X, 0), b.Width), min(max(p.Y, 0), b.Height))
}

func (s *session) sendFrame(ctx context.Context) error {
	f := s.view.Frame()
	if f == nil {
		return errors.New("no frame on display")
	}

	var buf bytes.Buffer
	if err := wire.EncodeFrame(&buf, f); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := s.conn.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		return fmt.Errorf("send frame: %w", err)
	}
	log.Printf("%s: sent frame %d (%d bytes, rendered in %s)", s.name, f.Generation, buf.Len(), f.Elapsed)

	return s.sendStatus(ctx)
}

func (s *session) sendStatus(ctx context.Context) error {
	ctrl := s.view.Controller()
	b := ctrl.Bounds()
	v := ctrl.Viewport()

	st := status{
		Type:     "status",
		Width:    b.Width,
		Height:   b.Height,
		State:    ctrl.State().String(),
		Viewport: [4]float64{real(v.UpperLeft), imag(v.UpperLeft), real(v.LowerRight), imag(v.LowerRight)},
	}
	if r, ok := ctrl.Selection(); ok {
		st.Selection = &[4]int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
	}
	if f := s.view.Frame(); f != nil {
		if s.stats == nil || s.statsGen != f.Generation {
			sum := mandel.Summarize(f.PixelBuffer)
			s.stats = &statsJSON{Interior: sum.Interior, Mean: sum.Mean, StdDev: sum.StdDev}
			s.statsGen = f.Generation
		}
		st.Generation = f.Generation
		st.ElapsedMs = float64(f.Elapsed.Microseconds()) / 1000
		st.Stats = s.stats
	}

	if err := wsjson.Write(ctx, s.conn, st); err != nil {
		return fmt.Errorf("send status: %w", err)
	}
	return nil
}
