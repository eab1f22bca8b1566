package mandelgen

import (
	"image"
	"time"
)

// Frame is the result of one render: the smoothed per-pixel iteration
// counts and the RGB pixel buffer derived from them. Both are row-major.
// A Frame is written once by the engine and read-only afterwards.
type Frame struct {
	Width, Height int

	// Iterations holds one smoothed escape count per pixel, in
	// [0, MaxIterations]. A value of exactly MaxIterations marks a
	// set member.
	Iterations []float64

	// Pixels holds 3 bytes per pixel, RGB order, no padding.
	Pixels []byte
}

// At returns the smoothed iteration count at pixel (x, y).
func (f *Frame) At(x, y int) float64 {
	return f.Iterations[y*f.Width+x]
}

// ColorAt returns the mapped RGB triple at pixel (x, y).
func (f *Frame) ColorAt(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2]
}

// RGBA copies the pixel buffer into an image.RGBA for encoders and
// preview scaling.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		src := f.Pixels[y*f.Width*3 : (y+1)*f.Width*3]
		dst := img.Pix[y*img.Stride : y*img.Stride+f.Width*4]
		for x := 0; x < f.Width; x++ {
			dst[x*4+0] = src[x*3+0]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

// Stats reports advisory performance numbers for one render. They never
// influence the rendered output.
type Stats struct {
	Elapsed     time.Duration // total render time
	ComputeTime time.Duration // escape-time phase only

	PixelsPerSecond float64

	FastRejected    int64 // pixels skipped by the cardioid/bulb test
	SeriesEstimated int64 // pixels resolved by series approximation
}
