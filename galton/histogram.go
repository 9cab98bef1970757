package galton

import "math"

// Histogram summarises the settled particles.
type Histogram struct {
	Counts  []int
	Percent []float64
	Spawned int
	Settled int

	// Mean and StdDev are over bin indices of settled particles.
	Mean   float64
	StdDev float64
}

// Histogram snapshots the bin counters.
func (b *Board) Histogram() Histogram {
	tally := b.Tally()
	bins := b.Bins()

	h := Histogram{
		Counts:  make([]int, len(bins)),
		Percent: make([]float64, len(bins)),
		Spawned: tally.Spawned,
		Settled: tally.Settled,
	}
	for i, bin := range bins {
		h.Counts[i] = bin.Counter
		h.Percent[i] = bin.Probability
	}
	h.Mean, h.StdDev = moments(h.Counts)
	return h
}

func moments(counts []int) (mean, stddev float64) {
	var n, sum float64
	for k, c := range counts {
		n += float64(c)
		sum += float64(k * c)
	}
	if n == 0 {
		return 0, 0
	}
	mean = sum / n

	var sq float64
	for k, c := range counts {
		d := float64(k) - mean
		sq += d * d * float64(c)
	}
	return mean, math.Sqrt(sq / n)
}

// ExpectedPercent is the ideal share of each of the rows+1 bins for a fair
// board: C(rows, k) / 2^rows * 100.
func ExpectedPercent(rows int) []float64 {
	if rows < 0 {
		return nil
	}
	out := make([]float64, rows+1)
	c := 1.0
	for k := 0; k <= rows; k++ {
		out[k] = math.Ldexp(c, -rows) * 100
		c = c * float64(rows-k) / float64(k+1)
	}
	return out
}

// ExpectedMean and ExpectedStdDev are the binomial moments for p = 1/2.
func ExpectedMean(rows int) float64 {
	return float64(rows) / 2
}

func ExpectedStdDev(rows int) float64 {
	return math.Sqrt(float64(rows)) / 2
}
