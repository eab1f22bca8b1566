package mandelgen

import (
	"context"
	"io"
)

// Renderer computes one full frame from render parameters.
type Renderer interface {
	Render(ctx context.Context, p Params) (*Frame, *Stats, error)
}

// Encoder writes a finished frame to w in some image format. The engine
// guarantees the frame is fully populated before handoff; an encoder
// failure leaves the frame intact, so encoding can be retried without
// recomputation.
type Encoder interface {
	Encode(w io.Writer, f *Frame) error
}
