package render

import "math"

const (
	escapeRadius   = 2.0
	escapeRadiusSq = 4.0

	// bailout is deliberately far beyond the mathematical escape bound.
	// Letting |z| grow before stopping costs a few extra iterations but
	// makes the smoothed count much more precise.
	bailout = 256.0

	seriesSeedIterations = 8
	minSeriesIterations  = 10
)

// InSetFast reports whether c = (cr, ci) provably belongs to the
// Mandelbrot set without iterating. It covers the main cardioid and the
// period-2 bulb, which together hold most of the set interior. A false
// return carries no information: the point may still be a member.
func InSetFast(cr, ci float64) bool {
	// Main cardioid: with q = (cr-1/4)² + ci², membership iff
	// q·(q + (cr-1/4)) < ci²/4.
	x := cr - 0.25
	q := x*x + ci*ci
	if q*(q+x) < 0.25*ci*ci {
		return true
	}

	// Period-2 bulb: circle of radius 1/4 around -1.
	bx := cr + 1.0
	return bx*bx+ci*ci < 0.0625
}

// EstimateEscape predicts the smoothed escape count of c from a few
// seed iterations that also propagate the derivative dz/dc. It reports
// ok = false when the point escapes during seeding, when the derivative
// degenerates, or when the extrapolation lands outside (0, maxIter-8);
// the caller must then run Evaluate from scratch — seed iterations are
// never reused.
func EstimateEscape(cr, ci float64, maxIter int) (estimate float64, ok bool) {
	if maxIter < minSeriesIterations {
		return 0, false
	}

	var zr, zi float64
	dzr, dzi := 1.0, 0.0

	for i := 0; i < seriesSeedIterations && i < maxIter/4; i++ {
		// dz/dc = 2·z·dz + 1
		ndzr := 2*(zr*dzr-zi*dzi) + 1
		ndzi := 2 * (zr*dzi + zi*dzr)
		dzr, dzi = ndzr, ndzi

		zrSq := zr * zr
		ziSq := zi * zi
		zi = 2*zr*zi + ci
		zr = zrSq - ziSq + cr

		if zrSq+ziSq > escapeRadiusSq {
			return 0, false
		}
	}

	dzMag := math.Sqrt(dzr*dzr + dzi*dzi)
	if dzMag <= 1e-10 {
		return 0, false
	}

	zMag := math.Sqrt(zr*zr + zi*zi)
	remaining := math.Log(escapeRadius/zMag) / math.Log(dzMag)
	if remaining > 0 && remaining < float64(maxIter-seriesSeedIterations) {
		return float64(seriesSeedIterations) + remaining, true
	}
	return 0, false
}

// Evaluate iterates z ← z² + c from z = 0 and returns the smoothed
// escape count in [0, maxIter]. Exactly maxIter means the point never
// escaped and is treated as a set member; any smaller value carries the
// fractional sub-iteration escape position, which keeps color gradients
// free of banding.
//
// Evaluate is a pure function and safe to call concurrently.
func Evaluate(cr, ci float64, maxIter int) float64 {
	var zr, zi float64
	var zrSq, ziSq float64
	iter := 0

	for iter < maxIter {
		zrSq = zr * zr
		ziSq = zi * zi
		if zrSq+ziSq > bailout {
			break
		}

		zi = 2*zr*zi + ci
		zr = zrSq - ziSq + cr
		iter++
	}

	if iter == maxIter {
		return float64(maxIter)
	}

	magSq := zr*zr + zi*zi
	smooth := float64(iter) + 1 - math.Log2(0.5*math.Log(magSq))
	if smooth < 0 {
		return 0
	}
	return smooth
}
