package stream

import (
	"fmt"
	"math"
)

// Validation is the outcome of comparing the final arrays with the analytic
// expectation.
type Validation struct {
	OK bool

	// Array, Expected and Observed describe the first array that failed,
	// checked in the order a, b, c, d. They are empty when OK.
	Array    string
	Expected float64
	Observed float64

	ExpectedSums Sums
	ObservedSums Sums
	Epsilon      float64
}

// Err returns nil for a passing validation and a KindValidation error
// otherwise.
func (v Validation) Err() error {
	if v.OK {
		return nil
	}
	return &Error{
		Kind:    KindValidation,
		Op:      "Check",
		Message: fmt.Sprintf("array %s[]: expected %f, observed %f", v.Array, v.Expected, v.Observed),
	}
}

// Recurrence replays the kernel sequence of cfg.NTimes repetitions on one
// scalar element per array, starting from cfg.Initial. Every kernel applies
// the same formula to every index, so this is the final value of every
// element.
func Recurrence(cfg Config) Sums {
	aj := cfg.Initial.A
	bj := cfg.Initial.B
	cj := cfg.Initial.C
	dj := cfg.Initial.D
	s := cfg.Scalar

	for range cfg.NTimes {
		bj = s          // Init
		cj = aj         // Copy
		aj = aj * s     // Update
		aj = bj + s*cj  // Triad
		aj = aj + s*bj  // Daxpy
		aj = bj + cj*dj // STriad
		aj = aj + bj*cj // SDaxpy
	}

	return Sums{A: aj, B: bj, C: cj, D: dj}
}

// Expected returns the sum each array should have after a run of cfg.
func Expected(cfg Config) Sums {
	r := Recurrence(cfg)
	n := float64(cfg.Size)
	return Sums{A: r.A * n, B: r.B * n, C: r.C * n, D: r.D * n}
}

// Check compares the sums of arrays with Expected(cfg). An array fails when
// |expected-observed| / |observed| exceeds cfg.Epsilon; only the first
// failing array is reported.
func Check(cfg Config, arrays *Arrays) Validation {
	return compare(Expected(cfg), arrays.Sums(), cfg.Epsilon)
}

func compare(expected, observed Sums, epsilon float64) Validation {
	v := Validation{
		OK:           true,
		ExpectedSums: expected,
		ObservedSums: observed,
		Epsilon:      epsilon,
	}

	exp := expected.values()
	obs := observed.values()
	for i, name := range arrayNames {
		if relErr(exp[i], obs[i]) > epsilon {
			v.OK = false
			v.Array = name
			v.Expected = exp[i]
			v.Observed = obs[i]
			break
		}
	}
	return v
}

// relErr is |expected-observed| relative to the observed value. A NaN or
// infinite value on either side always fails; two zero sums agree.
func relErr(expected, observed float64) float64 {
	if !isFinite(observed) || !isFinite(expected) {
		return math.Inf(1)
	}
	diff := math.Abs(expected - observed)
	if diff == 0 {
		return 0
	}
	return diff / math.Abs(observed)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
