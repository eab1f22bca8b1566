package mandelgen

import "fmt"

// Default render parameters, matching the CLI defaults.
const (
	DefaultWidth         = 1920
	DefaultHeight        = 1080
	DefaultMaxIterations = 1000
	DefaultZoom          = 1.0
	DefaultCenterX       = -0.5
	DefaultCenterY       = 0.0

	// baseRange is the imaginary-axis extent of the coordinate window at zoom 1.
	baseRange = 3.0
)

// Params describes one frame render. It is immutable input: the engine
// never modifies or retains it.
type Params struct {
	Width, Height int // image dimensions in pixels
	MaxIterations int // iteration bound per pixel
	Workers       int // worker goroutines; 0 = one per CPU core

	Zoom             float64 // magnification; window height is 3.0/Zoom
	CenterX, CenterY float64 // center of the window in the complex plane

	Histogram    bool // histogram-equalized color mapping
	SeriesApprox bool // series approximation for boundary pixels
}

// DefaultParams returns parameters for the classic full-set view.
func DefaultParams() Params {
	return Params{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		MaxIterations: DefaultMaxIterations,
		Zoom:          DefaultZoom,
		CenterX:       DefaultCenterX,
		CenterY:       DefaultCenterY,
		Histogram:     true,
		SeriesApprox:  true,
	}
}

// Validate rejects parameters the engine cannot render. Invalid values
// are never clamped; the caller gets an error before any computation.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", p.MaxIterations)
	}
	if p.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %g", p.Zoom)
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", p.Workers)
	}
	return nil
}

// Bounds derives the coordinate window from center, zoom and the image
// aspect ratio. The window always matches Width/Height exactly.
func (p Params) Bounds() Region {
	aspect := float64(p.Width) / float64(p.Height)
	yRange := baseRange / p.Zoom
	xRange := yRange * aspect

	return Region{
		Xmin: p.CenterX - xRange/2,
		Xmax: p.CenterX + xRange/2,
		Ymin: p.CenterY - yRange/2,
		Ymax: p.CenterY + yRange/2,
	}
}

// WithRegion recenters the parameters on r, choosing the zoom that fits
// the region's imaginary-axis extent. Used by the landmark selection.
func (p Params) WithRegion(r Region) Params {
	p.CenterX = r.Xmin + r.Width()/2
	p.CenterY = r.Ymin + r.Height()/2
	p.Zoom = baseRange / r.Height()
	return p
}
