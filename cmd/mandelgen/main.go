// mandelgen renders escape-time fractal images into PNG or PPM files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/marben/mandelgen"
	"github.com/marben/mandelgen/encode"
	"github.com/marben/mandelgen/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	p := mandelgen.DefaultParams()

	flag.IntVar(&p.Width, "width", p.Width, "image width in pixels")
	flag.IntVar(&p.Height, "height", p.Height, "image height in pixels")
	flag.IntVar(&p.MaxIterations, "iter", p.MaxIterations, "maximum iterations per pixel")
	flag.Float64Var(&p.Zoom, "zoom", p.Zoom, "magnification factor")
	flag.Float64Var(&p.CenterX, "cx", p.CenterX, "real axis center coordinate")
	flag.Float64Var(&p.CenterY, "cy", p.CenterY, "imaginary axis center coordinate")
	flag.IntVar(&p.Workers, "workers", 0, "worker goroutines (0 = one per CPU core)")
	flag.BoolVar(&p.Histogram, "histogram", p.Histogram, "histogram-equalized color mapping")
	flag.BoolVar(&p.SeriesApprox, "series", p.SeriesApprox, "series approximation for boundary pixels")
	region := flag.String("region", "", "landmark region to render instead of -cx/-cy/-zoom (seahorse, elephant, minibrot, triplespiral, dragon, minispiral)")
	out := flag.String("o", "mandel.png", "output file; .ppm extension selects PPM, anything else PNG")
	flag.Parse()

	if *region != "" {
		r, ok := mandelgen.Landmarks[*region]
		if !ok {
			return fmt.Errorf("unknown region %q", *region)
		}
		p = p.WithRegion(r)
	}

	// Rough buffer footprint; warn before a big allocation, the way a
	// deep-zoom 8K render sneaks up on people.
	need := int64(p.Width) * int64(p.Height) * 11
	if need > 1<<30 {
		log.Printf("warning: frame buffers need about %d MB", need>>20)
	}

	job, err := render.NewJob(p)
	if err != nil {
		return err
	}

	b := p.Bounds()
	log.Printf("rendering %dx%d, max %d iterations, window [%.10f, %.10f] x [%.10f, %.10f]",
		p.Width, p.Height, p.MaxIterations, b.Xmin, b.Xmax, b.Ymin, b.Ymax)

	done := make(chan struct{})
	go reportProgress(job, done)

	frame, stats, err := job.Run(context.Background())
	close(done)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	log.Printf("computed in %s, total %s (%.0f pixels/s)",
		stats.ComputeTime.Round(time.Millisecond), stats.Elapsed.Round(time.Millisecond), stats.PixelsPerSecond)
	log.Printf("optimizations: %d pixels fast-rejected, %d series-estimated",
		stats.FastRejected, stats.SeriesEstimated)

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := encode.ForPath(*out).Encode(f, frame); err != nil {
		return fmt.Errorf("encode %q: %w", *out, err)
	}

	log.Printf("image saved to %q", *out)
	return nil
}

// reportProgress logs compute progress at every new 10% step. It only
// samples the job's atomic counter; it never synchronizes with workers.
func reportProgress(job *render.Job, done <-chan struct{}) {
	start := time.Now()
	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()

	last := -1
	for {
		select {
		case <-done:
			return
		case <-tick.C:
			step := int(job.Progress() * 10)
			if step > last {
				last = step
				log.Printf("progress: %d%% (%.1fs elapsed)", step*10, time.Since(start).Seconds())
			}
		}
	}
}
