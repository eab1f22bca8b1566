package render

import "math"

// RGB is one 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

const (
	hueCycles     = 4.0 // complete color cycles across the iteration range
	falloffGamma  = 0.4 // brightness falloff exponent, standard mapping
	baseBright    = 0.3 // brightness floor, histogram mapping
	brightRange   = 0.7
	brightQuality = 0.8 // brightness curve exponent, histogram mapping
)

// StandardColor maps a smoothed count to RGB with three phase-shifted
// cosine waves and a brightness falloff toward the set. It depends only
// on its arguments; set members map to black.
func StandardColor(smooth float64, maxIter int) RGB {
	if smooth >= float64(maxIter) {
		return RGB{}
	}

	t := smooth / float64(maxIter)
	phase := t * hueCycles * 2 * math.Pi

	r := 0.5 * (1 + math.Cos(phase))
	g := 0.5 * (1 + math.Cos(phase+2*math.Pi/3))
	b := 0.5 * (1 + math.Cos(phase+4*math.Pi/3))

	brightness := math.Pow(1-t, falloffGamma)
	return RGB{
		R: channel(r * brightness),
		G: channel(g * brightness),
		B: channel(b * brightness),
	}
}

// HistogramColor maps a smoothed count through its histogram-equalized
// position, spending color range where pixels actually are rather than
// linearly by iteration depth. The blend mixes a primary cycle with
// secondary and tertiary detail frequencies. Set members map to black.
func HistogramColor(smooth float64, maxIter int, h *Histogram) RGB {
	if smooth >= float64(maxIter) || h == nil {
		return RGB{}
	}

	p := h.Position(smooth)
	phase1 := p * 8 * math.Pi
	phase2 := p * 16 * math.Pi
	phase3 := p * 32 * math.Pi

	r := 0.5 * (1 + 0.8*math.Cos(phase1) + 0.3*math.Cos(phase2))
	g := 0.5 * (1 + 0.8*math.Cos(phase1+2*math.Pi/3) + 0.3*math.Sin(phase2))
	b := 0.5 * (1 + 0.8*math.Cos(phase1+4*math.Pi/3) + 0.3*math.Cos(phase3))

	brightness := baseBright + brightRange*math.Pow(p, brightQuality)
	return RGB{
		R: channel(r * brightness),
		G: channel(g * brightness),
		B: channel(b * brightness),
	}
}

// channel converts a [0, 1] component to 8 bits, clamping overshoot
// from the multi-frequency blend.
func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255 * v)
}
