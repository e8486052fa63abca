package stream

import (
	"fmt"

	"github.com/cwbudde/algo-bandwidth/stats/timing"
)

// KernelStats is the summary of one kernel over the measured repetitions.
type KernelStats struct {
	Kind    Kind
	Label   string
	Bytes   int64   // traffic of one pass
	Avg     float64 // seconds
	Min     float64 // seconds
	Max     float64 // seconds
	StdDev  float64 // seconds
	CV      float64 // StdDev / Avg
	MinRep  int     // repetition that produced Min
	MaxRep  int     // repetition that produced Max
	Samples int
}

// Bandwidth returns the best-case rate in MB/s, derived from the minimum time.
func (s KernelStats) Bandwidth() float64 {
	return Bandwidth(s.Bytes, s.Min)
}

// Bandwidth converts bytes moved in seconds to MB/s (10^6 bytes per second).
func Bandwidth(bytes int64, seconds float64) float64 {
	return 1.0e-06 * float64(bytes) / seconds
}

// Aggregate summarizes r for arrays of n elements. Repetition 0 is a warm-up
// and is left out of every statistic. The result has one entry per kernel,
// in execution order.
func Aggregate(r *Record, n int) ([]KernelStats, error) {
	if r.NTimes() < 2 {
		return nil, &Error{
			Kind:    KindConfig,
			Op:      "Aggregate",
			Message: fmt.Sprintf("need at least 2 repetitions, have %d", r.NTimes()),
		}
	}

	out := make([]KernelStats, 0, NumKinds)
	for _, k := range Kinds() {
		// Positions are offset by one for the dropped warm-up.
		s := timing.Calculate(r.Times(k)[1:])
		out = append(out, KernelStats{
			Kind:    k,
			Label:   k.Label(),
			Bytes:   k.Bytes(n),
			Avg:     s.Mean,
			Min:     s.Min,
			Max:     s.Max,
			StdDev:  s.StdDev,
			CV:      s.CV(),
			MinRep:  s.MinPos + 1,
			MaxRep:  s.MaxPos + 1,
			Samples: s.Count,
		})
	}
	return out, nil
}
