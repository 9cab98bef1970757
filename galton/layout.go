package galton

const (
	pinTopFraction    = 0.1
	pinBottomFraction = 0.5
)

// BuildLayout computes the static pins and bins of a board. It is a pure
// function of the board size, row count and pin radius.
func BuildLayout(cfg Config) ([]Circle, []Bin) {
	return BuildPins(cfg.Width, cfg.Height, cfg.Rows, cfg.PinRadius), BuildBins(cfg.Width, cfg.Height, cfg.Rows+1)
}

// BuildPins lays out rows*(rows+1)/2 pins in a triangle. Row i (1-based)
// holds i pins spread over a span of i/rows of the board width, centred,
// with pin j at j/(i+1) of the span. Rows run from 0.1h to 0.5h.
func BuildPins(w, h float64, rows int, radius float64) []Circle {
	if rows < 1 {
		return nil
	}

	top := pinTopFraction * h
	step := 0.0
	if rows > 1 {
		step = (pinBottomFraction - pinTopFraction) * h / float64(rows-1)
	}

	pins := make([]Circle, 0, rows*(rows+1)/2)
	for i := 1; i <= rows; i++ {
		span := float64(i) / float64(rows) * w
		left := w/2 - span/2
		y := top + float64(i-1)*step
		for j := 1; j <= i; j++ {
			pins = append(pins, Circle{
				Center: Vec2{X: left + float64(j)*(span/float64(i+1)), Y: y},
				Radius: radius,
			})
		}
	}
	return pins
}

// BuildBins splits the board width into n equal bins directly below the
// lowest pin row, reaching down to the floor.
func BuildBins(w, h float64, n int) []Bin {
	if n < 1 {
		return nil
	}

	y := pinTopFraction*h + pinBottomFraction*h
	width := w / float64(n)

	bins := make([]Bin, n)
	for k := range bins {
		bins[k] = Bin{
			Index: k,
			Rect:  Rect{X: float64(k) * width, Y: y, W: width, H: h - y},
			Color: binColors[k%2],
		}
	}
	return bins
}
