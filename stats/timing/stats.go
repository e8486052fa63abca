// Package timing summarizes repeated duration measurements.
//
// Samples are plain float64 seconds. The mean is the plain sum divided by the
// count; the spread uses Welford's update.
package timing

import "math"

// Stats summarizes one series of samples.
type Stats struct {
	Count    int
	Sum      float64
	Mean     float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Variance float64 // population variance
	StdDev   float64
}

// CV returns the coefficient of variation (StdDev / Mean), or 0 for a zero mean.
func (s Stats) CV() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.StdDev / s.Mean
}

// Calculate computes all statistics in a single pass. An empty input yields
// the zero Stats.
func Calculate(samples []float64) Stats {
	n := len(samples)
	if n == 0 {
		return Stats{}
	}

	var (
		sum    float64
		mean   float64
		m2     float64
		minVal = samples[0]
		maxVal = samples[0]
		minPos int
		maxPos int
	)

	for i, x := range samples {
		sum += x

		ni := float64(i + 1)
		delta := x - mean
		mean += delta / ni
		m2 += delta * (x - mean)

		if x < minVal {
			minVal = x
			minPos = i
		}
		if x > maxVal {
			maxVal = x
			maxPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	// Summation rounding can push sum/n a ulp outside [min, max] for
	// near-identical samples.
	avg := max(minVal, min(sum/nf, maxVal))

	return Stats{
		Count:    n,
		Sum:      sum,
		Mean:     avg,
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
}
