package mandel

import (
	"context"
)

// Renderer renders the view v into a new buffer sized b
type Renderer interface {
	RenderContext(ctx context.Context, b Bounds, v Viewport) (*PixelBuffer, error)
}

// FrameProvider gives access to the frame currently on display
type FrameProvider interface {
	Frame() *Frame
}
