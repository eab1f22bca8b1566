package mandelgen

import "testing"

func TestFrameRGBA(t *testing.T) {
	f := &Frame{
		Width:  2,
		Height: 2,
		Pixels: []byte{
			10, 20, 30, 40, 50, 60,
			70, 80, 90, 100, 110, 120,
		},
	}

	img := f.RGBA()
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", b)
	}

	tests := []struct {
		x, y    int
		r, g, b uint8
	}{
		{0, 0, 10, 20, 30},
		{1, 0, 40, 50, 60},
		{0, 1, 70, 80, 90},
		{1, 1, 100, 110, 120},
	}
	for _, tc := range tests {
		i := img.PixOffset(tc.x, tc.y)
		if img.Pix[i] != tc.r || img.Pix[i+1] != tc.g || img.Pix[i+2] != tc.b || img.Pix[i+3] != 0xff {
			t.Errorf("pixel (%d,%d) = %v", tc.x, tc.y, img.Pix[i:i+4])
		}
	}
}

func TestFrameAccessors(t *testing.T) {
	f := &Frame{
		Width:      2,
		Height:     1,
		Iterations: []float64{3.5, 7},
		Pixels:     []byte{1, 2, 3, 4, 5, 6},
	}
	if got := f.At(1, 0); got != 7 {
		t.Errorf("At(1,0) = %g, want 7", got)
	}
	if r, g, b := f.ColorAt(1, 0); r != 4 || g != 5 || b != 6 {
		t.Errorf("ColorAt(1,0) = (%d,%d,%d), want (4,5,6)", r, g, b)
	}
}
