// server renders a frame in-process and streams live progress and
// preview snapshots to connected browsers over a websocket. The full
// image is served once the render finishes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/gops/agent"

	"github.com/marben/mandelgen"
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
	flag.IntVar(&p.Workers, "workers", 0, "worker goroutines (0 = one per CPU core)")
	region := flag.String("region", "seahorse", "landmark region to render (seahorse, elephant, minibrot, triplespiral, dragon, minispiral)")
	addr := flag.String("addr", ":8080", "http listen address")
	static := flag.String("static", "./static", "directory with the viewer page")
	flag.Parse()

	if *region != "" {
		r, ok := mandelgen.Landmarks[*region]
		if !ok {
			return fmt.Errorf("unknown region %q", *region)
		}
		p = p.WithRegion(r)
	}

	// gops diagnostics endpoint; handy on a render box you can't attach
	// a debugger to.
	if err := agent.Listen(agent.Options{}); err != nil {
		return fmt.Errorf("gops agent: %w", err)
	}

	job, err := render.NewJob(p)
	if err != nil {
		return err
	}

	rs := newRenderState(job)
	go rs.render(context.Background())

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(*static)))
	mux.HandleFunc("/ws", rs.websocketHandler)
	mux.HandleFunc("/image.png", rs.imageHandler)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost%s", *addr)
	return srv.ListenAndServe()
}
