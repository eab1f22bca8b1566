package render

// Histogram counts escaped pixels per integer iteration bucket. It is
// built once per frame after the compute phase and consumed read-only
// by the histogram color mapping; it never outlives its frame.
type Histogram struct {
	Counts      []int // bucket 0 … maxIter-1
	TotalPixels int   // escaped pixels only; set members are excluded
	MaxCount    int   // largest single bucket

	cumulative []int
}

// BuildHistogram aggregates a frame's iteration buffer in a single
// pass. Pixels at exactly maxIter (set members) stay out of the
// histogram entirely: they always render as the fixed background color.
func BuildHistogram(iterations []float64, maxIter int) *Histogram {
	h := &Histogram{Counts: make([]int, maxIter)}

	for _, v := range iterations {
		if v >= float64(maxIter) {
			continue
		}
		bucket := int(v)
		if bucket > maxIter-1 {
			bucket = maxIter - 1
		}
		h.Counts[bucket]++
		h.TotalPixels++
		if h.Counts[bucket] > h.MaxCount {
			h.MaxCount = h.Counts[bucket]
		}
	}

	h.cumulative = make([]int, maxIter)
	sum := 0
	for i, c := range h.Counts {
		sum += c
		h.cumulative[i] = sum
	}
	return h
}

// Position returns the histogram-equalized position of a smoothed count
// in [0, 1]: the fraction of escaped pixels at or below its bucket.
func (h *Histogram) Position(smooth float64) float64 {
	if h.TotalPixels == 0 {
		return 0
	}
	bucket := int(smooth)
	if bucket >= len(h.cumulative) {
		bucket = len(h.cumulative) - 1
	}
	return float64(h.cumulative[bucket]) / float64(h.TotalPixels)
}
