package mandel

import (
	"image"
	"math"
)

// State is a phase of the zoom controller. The concrete types are Idle,
// Selecting, ZoomPending and Resetting; each carries only the data valid
// in that phase.
type State interface {
	isState()
	String() string
}

// Idle waits for the pointer to go down
type Idle struct{}

// Selecting is an in-progress drag from Start to End
type Selecting struct {
	Start, End image.Point
}

// ZoomPending holds a finished, non-degenerate drag waiting to be rendered
type ZoomPending struct {
	Request image.Rectangle
}

// Resetting waits for the initial view to be restored
type Resetting struct{}

func (Idle) isState()        {}
func (Selecting) isState()   {}
func (ZoomPending) isState() {}
func (Resetting) isState()   {}

func (Idle) String() string        { return "idle" }
func (Selecting) String() string   { return "selecting" }
func (ZoomPending) String() string { return "zoom pending" }
func (Resetting) String() string   { return "resetting" }

// Controller turns pointer gestures into new viewports.
// It is not safe for concurrent use; one control goroutine drives it.
type Controller struct {
	bounds  Bounds
	initial Viewport
	current Viewport
	state   State
}

// NewController starts in Idle showing initial
func NewController(b Bounds, initial Viewport) *Controller {
	if !b.Valid() {
		panic("controller bounds must be positive, got " + b.String())
	}
	return &Controller{
		bounds:  b,
		initial: initial,
		current: initial,
		state:   Idle{},
	}
}

func (c *Controller) Bounds() Bounds     { return c.bounds }
func (c *Controller) Viewport() Viewport { return c.current }
func (c *Controller) Initial() Viewport  { return c.initial }
func (c *Controller) State() State       { return c.state }

// Selection returns the rectangle being dragged, if any
func (c *Controller) Selection() (image.Rectangle, bool) {
	s, ok := c.state.(Selecting)
	if !ok {
		return image.Rectangle{}, false
	}
	return image.Rectangle{Min: s.Start, Max: s.End}.Canon(), true
}

// PointerDown starts a selection. It is ignored unless the controller is idle.
func (c *Controller) PointerDown(p image.Point) {
	if _, ok := c.state.(Idle); ok {
		c.state = Selecting{Start: p, End: p}
	}
}

// PointerMove extends the selection to p, keeping the image's aspect ratio
func (c *Controller) PointerMove(p image.Point) {
	s, ok := c.state.(Selecting)
	if !ok {
		return
	}
	s.End = aspectLock(s.Start, p, float64(c.bounds.Width)/float64(c.bounds.Height))
	c.state = s
}

// PointerUp finishes the selection. A drag with no area is dropped.
func (c *Controller) PointerUp() {
	s, ok := c.state.(Selecting)
	if !ok {
		return
	}
	r := image.Rectangle{Min: s.Start, Max: s.End}.Canon()
	if r.Dx() == 0 || r.Dy() == 0 {
		c.state = Idle{}
		return
	}
	c.state = ZoomPending{Request: r}
}

// Reset discards any selection or pending zoom and asks for the initial view
func (c *Controller) Reset() {
	c.state = Resetting{}
}

// Take consumes a pending zoom or reset and returns the viewport to render.
// The returned viewport becomes the current one.
func (c *Controller) Take() (Viewport, bool) {
	switch s := c.state.(type) {
	case ZoomPending:
		c.state = Idle{}
		v := RectToViewport(c.bounds, s.Request, c.current)
		if !v.Valid() {
			// float64 resolution exhausted
			return Viewport{}, false
		}
		c.current = v
		return v, true

	case Resetting:
		c.state = Idle{}
		c.current = c.initial
		return c.initial, true
	}
	return Viewport{}, false
}

// aspectLock moves end so the rectangle from start has the given
// width/height ratio. The longer side of the drag wins and the other
// side follows its sign.
func aspectLock(start, end image.Point, ratio float64) image.Point {
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	if math.Abs(dx) > math.Abs(dy) {
		dy = dx / ratio
	} else {
		dx = dy * ratio
	}
	return image.Pt(start.X+int(math.Round(dx)), start.Y+int(math.Round(dy)))
}
