package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	xdraw "golang.org/x/image/draw"

	"github.com/marben/mandelgen"
	"github.com/marben/mandelgen/render"
)

// previewWidth bounds the snapshots pushed over the websocket; the full
// resolution frame is only served once, at /image.png.
const previewWidth = 480

// renderState owns the running job and the finished frame. The frame
// and stats pointers are nil until the render completes.
type renderState struct {
	job   *render.Job
	start time.Time
	frame atomic.Pointer[mandelgen.Frame]
	stats atomic.Pointer[mandelgen.Stats]
}

func newRenderState(job *render.Job) *renderState {
	return &renderState{job: job, start: time.Now()}
}

func (rs *renderState) render(ctx context.Context) {
	frame, stats, err := rs.job.Run(ctx)
	if err != nil {
		log.Printf("render failed: %v", err)
		return
	}
	rs.frame.Store(frame)
	rs.stats.Store(stats)
	log.Printf("render finished in %s (%.0f pixels/s)",
		stats.Elapsed.Round(time.Millisecond), stats.PixelsPerSecond)
}

// progressMsg and doneMsg are the JSON frames on the websocket wire.
// Preview images travel as separate binary PNG messages.
type progressMsg struct {
	Type      string  `json:"type"`
	Fraction  float64 `json:"fraction"`
	ElapsedMs int64   `json:"elapsedMs"`
}

type doneMsg struct {
	Type            string  `json:"type"`
	ElapsedMs       int64   `json:"elapsedMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
	FastRejected    int64   `json:"fastRejected"`
	SeriesEstimated int64   `json:"seriesEstimated"`
}

func (rs *renderState) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: tighten in prod
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	log.Printf("viewer connected: %s", r.RemoteAddr)
	if err := rs.stream(r.Context(), c); err != nil {
		log.Printf("viewer %s: %v", r.RemoteAddr, err)
	}
}

// stream pushes progress twice a second and a preview snapshot every
// other second until the render finishes, then a final preview and the
// done message. Each viewer samples the job independently; nothing here
// synchronizes with the render workers.
func (rs *renderState) stream(ctx context.Context, c *websocket.Conn) error {
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}

		if stats := rs.stats.Load(); stats != nil {
			if err := rs.sendPreview(ctx, c); err != nil {
				return err
			}
			return rs.sendJSON(ctx, c, doneMsg{
				Type:            "done",
				ElapsedMs:       stats.Elapsed.Milliseconds(),
				PixelsPerSecond: stats.PixelsPerSecond,
				FastRejected:    stats.FastRejected,
				SeriesEstimated: stats.SeriesEstimated,
			})
		}

		msg := progressMsg{
			Type:      "progress",
			Fraction:  rs.job.Progress(),
			ElapsedMs: time.Since(rs.start).Milliseconds(),
		}
		if err := rs.sendJSON(ctx, c, msg); err != nil {
			return err
		}
		if i%4 == 0 {
			if err := rs.sendPreview(ctx, c); err != nil {
				return err
			}
		}
	}
}

func (rs *renderState) sendJSON(ctx context.Context, c *websocket.Conn, v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return c.Write(ctx, websocket.MessageText, data)
}

func (rs *renderState) sendPreview(ctx context.Context, c *websocket.Conn) error {
	data, err := encodePreview(rs.job.Preview())
	if err != nil {
		return err
	}
	return c.Write(ctx, websocket.MessageBinary, data)
}

// encodePreview downscales a snapshot to previewWidth and encodes it as
// PNG for the wire.
func encodePreview(img *image.RGBA) ([]byte, error) {
	if w := img.Bounds().Dx(); w > previewWidth {
		h := img.Bounds().Dy() * previewWidth / w
		small := image.NewRGBA(image.Rect(0, 0, previewWidth, h))
		xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = small
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (rs *renderState) imageHandler(w http.ResponseWriter, r *http.Request) {
	frame := rs.frame.Load()
	if frame == nil {
		http.Error(w, "render still in progress", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, frame.RGBA()); err != nil {
		log.Printf("write image: %v", err)
	}
}
