package render

import (
	"math"
	"testing"
)

func TestInSetFastNoFalsePositives(t *testing.T) {
	// Every point the fast check accepts must survive full iteration.
	points := []struct {
		name   string
		cr, ci float64
	}{
		{"origin", 0, 0},
		{"cardioid center", -0.1, 0},
		{"cardioid upper", 0.2, 0.2},
		{"cardioid left", -0.5, 0.3},
		{"bulb center", -1, 0},
		{"bulb edge", -1.2, 0.1},
	}

	const maxIter = 2000
	for _, tc := range points {
		t.Run(tc.name, func(t *testing.T) {
			if !InSetFast(tc.cr, tc.ci) {
				t.Fatalf("InSetFast(%g, %g) = false, want true", tc.cr, tc.ci)
			}
			if got := Evaluate(tc.cr, tc.ci, maxIter); got != maxIter {
				t.Errorf("fast-rejected point escaped: Evaluate = %g, want %d", got, maxIter)
			}
		})
	}
}

func TestInSetFastRejectsOutside(t *testing.T) {
	// Points clearly outside the set must not be claimed as members.
	points := [][2]float64{
		{2, 2},
		{1, 1},
		{-2.5, 0},
		{0.5, 0.5},
	}
	for _, p := range points {
		if InSetFast(p[0], p[1]) {
			t.Errorf("InSetFast(%g, %g) = true for an escaping point", p[0], p[1])
		}
	}
}

func TestEvaluateKnownEscape(t *testing.T) {
	// (2, 2) escapes almost immediately. The smoothed count must be
	// small and must not depend on the iteration bound.
	first := Evaluate(2, 2, 10)
	for _, maxIter := range []int{10, 100, 100000} {
		got := Evaluate(2, 2, maxIter)
		if got >= float64(maxIter) {
			t.Fatalf("Evaluate(2, 2, %d) = %g, point should escape", maxIter, got)
		}
		if got > 5 {
			t.Errorf("Evaluate(2, 2, %d) = %g, want a small escape count", maxIter, got)
		}
		if got != first {
			t.Errorf("escape count depends on bound: %g vs %g", got, first)
		}
	}
}

func TestEvaluateRange(t *testing.T) {
	// Smoothed results always land in [0, maxIter] over a coarse grid
	// spanning interior, boundary and far-exterior points.
	const maxIter = 300
	for cr := -2.5; cr <= 1.5; cr += 0.11 {
		for ci := -1.5; ci <= 1.5; ci += 0.13 {
			got := Evaluate(cr, ci, maxIter)
			if got < 0 || got > maxIter {
				t.Fatalf("Evaluate(%g, %g, %d) = %g out of range", cr, ci, maxIter, got)
			}
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	// Pure function: repeated calls are bit-identical.
	points := [][2]float64{{-0.7453, 0.1127}, {0.3, 0.5}, {-1.401155, 0}}
	for _, p := range points {
		a := Evaluate(p[0], p[1], 1000)
		b := Evaluate(p[0], p[1], 1000)
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Errorf("Evaluate(%g, %g) not deterministic: %g vs %g", p[0], p[1], a, b)
		}
	}
}

func TestEvaluateMember(t *testing.T) {
	// Set members return the bound exactly, never a near value.
	for _, maxIter := range []int{1, 50, 1000} {
		if got := Evaluate(0, 0, maxIter); got != float64(maxIter) {
			t.Errorf("Evaluate(0, 0, %d) = %g, want %d", maxIter, got, maxIter)
		}
	}
}

func TestEstimateEscape(t *testing.T) {
	t.Run("low bound disabled", func(t *testing.T) {
		if _, ok := EstimateEscape(0.3, 0.5, 9); ok {
			t.Error("estimate accepted below the minimum iteration bound")
		}
	})

	t.Run("escaping seed abandoned", func(t *testing.T) {
		if _, ok := EstimateEscape(2, 2, 1000); ok {
			t.Error("estimate accepted for a point escaping during seeding")
		}
	})

	t.Run("deep interior rejected", func(t *testing.T) {
		// c = 0 never escapes; the extrapolation must not produce a
		// finite positive estimate for it.
		if est, ok := EstimateEscape(0, 0, 1000); ok {
			t.Errorf("estimate %g accepted for a set member", est)
		}
	})

	t.Run("accepted estimates in range", func(t *testing.T) {
		// Whenever the estimator accepts, the value must lie strictly
		// between the seed count and the bound.
		const maxIter = 500
		for cr := -2.0; cr <= 1.0; cr += 0.07 {
			for ci := -1.2; ci <= 1.2; ci += 0.09 {
				est, ok := EstimateEscape(cr, ci, maxIter)
				if !ok {
					continue
				}
				if est <= seriesSeedIterations || est >= maxIter {
					t.Fatalf("EstimateEscape(%g, %g) = %g outside (%d, %d)",
						cr, ci, est, seriesSeedIterations, maxIter)
				}
			}
		}
	})
}
