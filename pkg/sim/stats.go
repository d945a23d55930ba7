package sim

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the spacing between recorded firings.
type Stats struct {
	// Count is the number of recorded firings.
	Count int

	// Mean is the average inter-fire spacing.
	Mean time.Duration

	// StdDev is the spacing's sample standard deviation.
	StdDev time.Duration

	// Min and Max bound the observed spacings.
	Min time.Duration
	Max time.Duration
}

// Stats reduces the recorded firings to spacing statistics. A harness
// with no firings yields the zero Stats.
func (h *Harness) Stats() Stats {
	spacings := h.Spacings()
	if len(spacings) == 0 {
		return Stats{}
	}

	xs := make([]float64, len(spacings))
	min, max := spacings[0], spacings[0]
	for i, s := range spacings {
		xs[i] = float64(s)
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	mean := stat.Mean(xs, nil)
	sd := 0.0
	if len(xs) > 1 {
		sd = stat.StdDev(xs, nil)
	}

	return Stats{
		Count:  len(spacings),
		Mean:   time.Duration(mean),
		StdDev: time.Duration(sd),
		Min:    min,
		Max:    max,
	}
}
