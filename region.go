package mandelgen

// Region is a rectangular window in the complex parameter plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Width returns the extent of the region along the real axis.
func (r Region) Width() float64 { return r.Xmax - r.Xmin }

// Height returns the extent of the region along the imaginary axis.
func (r Region) Height() float64 { return r.Ymax - r.Ymin }

// Classic regions / landmarks in the Mandelbrot set, selectable by name
// on the command line.
var Landmarks = map[string]Region{
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	"seahorse": {
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	},

	// Elephant Valley – large bulb with trunk-like tendrils
	"elephant": {
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	},

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	"minibrot": {
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	},

	// Triple Spiral – threefold symmetric spiral structure
	"triplespiral": {
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	},

	// Valley of the Dragon – deep, highly detailed spiral filaments
	"dragon": {
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	},

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	"minispiral": {
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	},
}
