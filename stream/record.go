package stream

import "time"

// Record holds the self-reported time of every kernel call, in seconds,
// indexed by kernel and repetition.
type Record struct {
	ntimes int
	times  [NumKinds][]float64
}

// NewRecord returns an empty record for ntimes repetitions.
func NewRecord(ntimes int) *Record {
	r := &Record{ntimes: ntimes}
	for k := range r.times {
		r.times[k] = make([]float64, ntimes)
	}
	return r
}

// NTimes returns the number of repetitions the record holds.
func (r *Record) NTimes() int {
	return r.ntimes
}

// Set stores the duration of kernel k in repetition rep.
func (r *Record) Set(k Kind, rep int, d time.Duration) {
	r.SetSeconds(k, rep, d.Seconds())
}

// SetSeconds stores a duration already expressed in seconds.
func (r *Record) SetSeconds(k Kind, rep int, seconds float64) {
	r.times[k][rep] = seconds
}

// Times returns the per-repetition durations of kernel k, warm-up first.
// The slice must not be modified.
func (r *Record) Times(k Kind) []float64 {
	return r.times[k]
}
