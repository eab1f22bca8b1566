// Package encode provides the image encoders handed finished frames by
// the render engine. Encoding is strictly a post-render concern: an
// encoder never sees a partially written frame.
package encode

import (
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/marben/mandelgen"
)

// PNG encodes frames with the standard library PNG encoder.
type PNG struct{}

func (PNG) Encode(w io.Writer, f *mandelgen.Frame) error {
	if err := png.Encode(w, f.RGBA()); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// PPM encodes frames as binary P6. The format is a raw dump of the RGB
// pixel buffer behind a three-line header, which makes it handy for
// piping into other tools without a decoder.
type PPM struct{}

func (PPM) Encode(w io.Writer, f *mandelgen.Frame) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return fmt.Errorf("ppm header: %w", err)
	}
	if _, err := w.Write(f.Pixels); err != nil {
		return fmt.Errorf("ppm payload: %w", err)
	}
	return nil
}

// ForPath picks an encoder from a file extension. PNG is the default.
func ForPath(path string) mandelgen.Encoder {
	if strings.HasSuffix(path, ".ppm") {
		return PPM{}
	}
	return PNG{}
}

var (
	_ mandelgen.Encoder = PNG{}
	_ mandelgen.Encoder = PPM{}
)
