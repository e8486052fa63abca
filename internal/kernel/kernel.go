// Package kernel runs the benchmark kernels over float64 buffers.
//
// Each kernel makes one pass over its operands, split into disjoint chunks
// that run on separate goroutines, and reports the wall-clock time of that
// pass as measured around the fan-out and join. Callers never time kernels
// themselves.
package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cwbudde/algo-bandwidth/internal/cpu"
	"github.com/cwbudde/algo-bandwidth/internal/kernel/registry"
	"github.com/cwbudde/algo-bandwidth/internal/parallel"

	// Variant registration.
	_ "github.com/cwbudde/algo-bandwidth/internal/kernel/arch/generic"
	_ "github.com/cwbudde/algo-bandwidth/internal/kernel/arch/simd"
)

// Auto selects the best variant for the detected CPU.
const Auto = "auto"

// ErrUnknownImplementation is returned by New for a variant name that is not
// registered or not supported on this CPU.
var ErrUnknownImplementation = errors.New("kernel: unknown or unsupported implementation")

// Set is a resolved kernel variant plus the worker count it fans out to.
type Set struct {
	entry    *registry.OpEntry
	workers  int
	features cpu.Features
}

// New resolves the named variant ("auto", "generic", "simd") against the
// detected CPU features. workers <= 0 means GOMAXPROCS.
func New(implementation string, workers int) (*Set, error) {
	features := cpu.DetectFeatures()
	name := strings.ToLower(strings.TrimSpace(implementation))

	var entry *registry.OpEntry
	if name == "" || name == Auto {
		entry = registry.Global.Lookup(features)
	} else {
		entry = registry.Global.ByName(name, features)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownImplementation,
			implementation, strings.Join(Available(), ", "))
	}
	if !entry.Complete() {
		return nil, fmt.Errorf("kernel: implementation %q is missing kernel bodies", entry.Name)
	}

	return &Set{entry: entry, workers: parallel.Workers(workers), features: features}, nil
}

// Available lists the variants usable on this CPU, best first.
func Available() []string {
	features := cpu.DetectFeatures()
	var names []string
	for _, e := range registry.Global.ListEntries() {
		if cpu.Supports(features, e.SIMDLevel) {
			names = append(names, e.Name)
		}
	}
	return names
}

// Name returns the registry name of the resolved variant.
func (s *Set) Name() string { return s.entry.Name }

// Features returns the CPU features the variant was resolved against.
func (s *Set) Features() cpu.Features { return s.features }

// Level returns the SIMD level the variant requires.
func (s *Set) Level() cpu.SIMDLevel { return s.entry.SIMDLevel }

// Workers returns the requested fan-out width.
func (s *Set) Workers() int { return s.workers }

// Width returns the number of workers that actually run a kernel over n
// elements. Short arrays get fewer than Workers.
func (s *Set) Width(n int) int { return parallel.Width(n, s.workers) }

// Fill sets every element of x to v using the same fan-out as the kernels.
// It is not timed.
func (s *Set) Fill(x []float64, v float64) {
	parallel.For(len(x), s.workers, func(lo, hi int) {
		s.entry.Init(x[lo:hi], v)
	})
}

// Init sets b[i] = scalar.
func (s *Set) Init(b []float64, scalar float64) time.Duration {
	start := time.Now()
	parallel.For(len(b), s.workers, func(lo, hi int) {
		s.entry.Init(b[lo:hi], scalar)
	})
	return time.Since(start)
}

// Sum returns the sum of a and the time the pass took.
func (s *Set) Sum(a []float64) (float64, time.Duration) {
	start := time.Now()
	sum := parallel.Reduce(len(a), s.workers, func(lo, hi int) float64 {
		return s.entry.Sum(a[lo:hi])
	})
	return sum, time.Since(start)
}

// Copy sets c[i] = a[i].
func (s *Set) Copy(c, a []float64) time.Duration {
	mustMatch(len(c), len(a))
	start := time.Now()
	parallel.For(len(c), s.workers, func(lo, hi int) {
		s.entry.Copy(c[lo:hi], a[lo:hi])
	})
	return time.Since(start)
}

// Update sets a[i] = a[i] * scalar.
func (s *Set) Update(a []float64, scalar float64) time.Duration {
	start := time.Now()
	parallel.For(len(a), s.workers, func(lo, hi int) {
		s.entry.Update(a[lo:hi], scalar)
	})
	return time.Since(start)
}

// Triad sets a[i] = b[i] + scalar*c[i].
func (s *Set) Triad(a, b, c []float64, scalar float64) time.Duration {
	mustMatch(len(a), len(b), len(c))
	start := time.Now()
	parallel.For(len(a), s.workers, func(lo, hi int) {
		s.entry.Triad(a[lo:hi], b[lo:hi], c[lo:hi], scalar)
	})
	return time.Since(start)
}

// Daxpy sets a[i] = a[i] + scalar*b[i].
func (s *Set) Daxpy(a, b []float64, scalar float64) time.Duration {
	mustMatch(len(a), len(b))
	start := time.Now()
	parallel.For(len(a), s.workers, func(lo, hi int) {
		s.entry.Daxpy(a[lo:hi], b[lo:hi], scalar)
	})
	return time.Since(start)
}

// STriad sets a[i] = b[i] + c[i]*d[i].
func (s *Set) STriad(a, b, c, d []float64) time.Duration {
	mustMatch(len(a), len(b), len(c), len(d))
	start := time.Now()
	parallel.For(len(a), s.workers, func(lo, hi int) {
		s.entry.STriad(a[lo:hi], b[lo:hi], c[lo:hi], d[lo:hi])
	})
	return time.Since(start)
}

// SDaxpy sets a[i] = a[i] + b[i]*c[i].
func (s *Set) SDaxpy(a, b, c []float64) time.Duration {
	mustMatch(len(a), len(b), len(c))
	start := time.Now()
	parallel.For(len(a), s.workers, func(lo, hi int) {
		s.entry.SDaxpy(a[lo:hi], b[lo:hi], c[lo:hi])
	})
	return time.Since(start)
}

func mustMatch(n int, others ...int) {
	for _, m := range others {
		if m != n {
			panic("kernel: slice length mismatch")
		}
	}
}
