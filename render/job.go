package render

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marben/mandelgen"
)

// rowChunk is the scheduling granularity of the compute phase. Chunks
// are handed out dynamically because escape cost varies wildly between
// screen regions: fast-rejected interior rows finish orders of
// magnitude sooner than boundary rows that iterate to the bound.
const rowChunk = 16

// maxFrameBytes caps the combined iteration and pixel buffer size so an
// absurd resolution fails with an error instead of taking the process
// down mid-allocation.
const maxFrameBytes = 8 << 30

type rowSpan struct {
	y0, y1 int // [y0, y1)
}

// Job renders one frame. It owns the frame buffers for the duration of
// the render and exposes advisory progress and preview snapshots that
// outside observers may sample while workers run.
type Job struct {
	params  mandelgen.Params
	bounds  mandelgen.Region
	frame   *mandelgen.Frame
	workers int

	xScale, yScale float64

	donePixels      atomic.Int64
	fastRejected    atomic.Int64
	seriesEstimated atomic.Int64

	// Chunk bookkeeping. Workers pop spans under the mutex; finished
	// spans are recorded so previews only ever read fully written rows.
	mu        sync.Mutex
	unstarted []rowSpan
	finished  []rowSpan
}

// NewJob validates p and allocates the frame buffers. No computation
// happens until Run.
func NewJob(p mandelgen.Params) (*Job, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("render parameters: %w", err)
	}

	// 8 bytes of iteration data plus 3 bytes of RGB per pixel.
	need := int64(p.Width) * int64(p.Height) * 11
	if need > maxFrameBytes {
		return nil, fmt.Errorf("frame of %dx%d needs %d MB, over the %d MB limit",
			p.Width, p.Height, need>>20, int64(maxFrameBytes)>>20)
	}

	workers := p.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	bounds := p.Bounds()
	j := &Job{
		params:  p,
		bounds:  bounds,
		workers: workers,
		frame: &mandelgen.Frame{
			Width:      p.Width,
			Height:     p.Height,
			Iterations: make([]float64, p.Width*p.Height),
			Pixels:     make([]byte, p.Width*p.Height*3),
		},
	}
	if p.Width > 1 {
		j.xScale = bounds.Width() / float64(p.Width-1)
	}
	if p.Height > 1 {
		j.yScale = bounds.Height() / float64(p.Height-1)
	}
	return j, nil
}

// Run drives both render phases and returns the finished frame. The two
// phases are separated by a full barrier: histogram color mapping needs
// the complete iteration buffer before it can normalize any pixel. On
// error or cancellation no partial frame is returned.
func (j *Job) Run(ctx context.Context) (*mandelgen.Frame, *mandelgen.Stats, error) {
	start := time.Now()

	if err := j.runPhase(ctx, j.computeSpan); err != nil {
		return nil, nil, err
	}
	computeTime := time.Since(start)

	var hist *Histogram
	if j.params.Histogram {
		hist = BuildHistogram(j.frame.Iterations, j.params.MaxIterations)
	}

	if err := j.runPhase(ctx, func(s rowSpan) { j.colorSpan(s, hist) }); err != nil {
		return nil, nil, err
	}

	elapsed := time.Since(start)
	stats := &mandelgen.Stats{
		Elapsed:         elapsed,
		ComputeTime:     computeTime,
		PixelsPerSecond: float64(j.params.Width*j.params.Height) / elapsed.Seconds(),
		FastRejected:    j.fastRejected.Load(),
		SeriesEstimated: j.seriesEstimated.Load(),
	}
	return j.frame, stats, nil
}

// Progress returns the fraction of pixels computed so far, in [0, 1].
// Advisory only; sampling it never affects the render.
func (j *Job) Progress() float64 {
	total := int64(j.params.Width) * int64(j.params.Height)
	return float64(j.donePixels.Load()) / float64(total)
}

// runPhase hands row spans out to a fixed pool of workers and waits for
// every span to complete. Each span is processed exactly once and no
// two workers ever touch the same row, so the buffers need no locking.
func (j *Job) runPhase(ctx context.Context, process func(rowSpan)) error {
	j.mu.Lock()
	j.unstarted = splitRows(j.params.Height, rowChunk)
	j.finished = j.finished[:0]
	j.mu.Unlock()

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < j.workers; i++ {
		eg.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				s, ok := j.popSpan()
				if !ok {
					return nil
				}
				process(s)
				j.spanFinished(s)
			}
		})
	}
	return eg.Wait()
}

func (j *Job) popSpan() (rowSpan, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.unstarted) == 0 {
		return rowSpan{}, false
	}
	s := j.unstarted[len(j.unstarted)-1]
	j.unstarted = j.unstarted[:len(j.unstarted)-1]
	return s, true
}

func (j *Job) spanFinished(s rowSpan) {
	j.mu.Lock()
	j.finished = append(j.finished, s)
	j.mu.Unlock()
}

// computeSpan fills the iteration buffer for the rows of s.
func (j *Job) computeSpan(s rowSpan) {
	maxIter := j.params.MaxIterations
	for y := s.y0; y < s.y1; y++ {
		ci := j.bounds.Ymin + float64(y)*j.yScale
		row := j.frame.Iterations[y*j.params.Width : (y+1)*j.params.Width]
		for x := range row {
			cr := j.bounds.Xmin + float64(x)*j.xScale
			row[x] = j.sample(cr, ci, maxIter)
		}
		j.donePixels.Add(int64(j.params.Width))
	}
}

// sample resolves one point: cheap closed-form rejection first, then
// the optional series shortcut, then full iteration.
func (j *Job) sample(cr, ci float64, maxIter int) float64 {
	if InSetFast(cr, ci) {
		j.fastRejected.Add(1)
		return float64(maxIter)
	}
	if j.params.SeriesApprox {
		if est, ok := EstimateEscape(cr, ci, maxIter); ok {
			j.seriesEstimated.Add(1)
			return est
		}
	}
	return Evaluate(cr, ci, maxIter)
}

// colorSpan maps the iteration values of s into the pixel buffer. With
// hist == nil the standard mapping is used.
func (j *Job) colorSpan(s rowSpan, hist *Histogram) {
	maxIter := j.params.MaxIterations
	for y := s.y0; y < s.y1; y++ {
		iters := j.frame.Iterations[y*j.params.Width : (y+1)*j.params.Width]
		pixels := j.frame.Pixels[y*j.params.Width*3 : (y+1)*j.params.Width*3]
		for x, v := range iters {
			var c RGB
			if hist != nil {
				c = HistogramColor(v, maxIter, hist)
			} else {
				c = StandardColor(v, maxIter)
			}
			pixels[x*3+0] = c.R
			pixels[x*3+1] = c.G
			pixels[x*3+2] = c.B
		}
	}
}

// Preview renders the rows finished so far into an RGBA snapshot, using
// the standard mapping regardless of configuration since the histogram
// only exists after the compute phase. Unfinished rows stay black.
// Safe to call while workers run.
func (j *Job) Preview() *image.RGBA {
	j.mu.Lock()
	done := make([]rowSpan, len(j.finished))
	copy(done, j.finished)
	j.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, j.params.Width, j.params.Height))
	maxIter := j.params.MaxIterations
	for _, s := range done {
		for y := s.y0; y < s.y1; y++ {
			iters := j.frame.Iterations[y*j.params.Width : (y+1)*j.params.Width]
			dst := img.Pix[y*img.Stride:]
			for x, v := range iters {
				c := StandardColor(v, maxIter)
				dst[x*4+0] = c.R
				dst[x*4+1] = c.G
				dst[x*4+2] = c.B
				dst[x*4+3] = 0xff
			}
		}
	}
	return img
}

// splitRows splits height rows into spans of chunk rows each. The last
// span is smaller when height is not divisible.
func splitRows(height, chunk int) []rowSpan {
	if chunk <= 0 {
		panic("chunk size must be positive")
	}
	spans := make([]rowSpan, 0, (height+chunk-1)/chunk)
	for y := 0; y < height; y += chunk {
		y1 := min(y+chunk, height)
		spans = append(spans, rowSpan{y0: y, y1: y1})
	}
	return spans
}

// Engine implements mandelgen.Renderer with a fresh Job per call.
type Engine struct{}

func (Engine) Render(ctx context.Context, p mandelgen.Params) (*mandelgen.Frame, *mandelgen.Stats, error) {
	j, err := NewJob(p)
	if err != nil {
		return nil, nil, err
	}
	return j.Run(ctx)
}

var _ mandelgen.Renderer = Engine{}
