// Package simd provides kernel bodies backed by the algo-vecmath block
// operations.
//
// algo-vecmath selects its own SSE2/AVX2/NEON path at run time. Kernels with
// no single matching block operation (Init, Copy, Triad, Daxpy) reuse the
// generic bodies so each kernel still makes exactly one pass over memory.
package simd

import (
	"github.com/cwbudde/algo-vecmath"
)

// Sum returns the sum of all elements in x.
func Sum(x []float64) float64 {
	return vecmath.Sum(x)
}

// Update scales a in place: a[i] = a[i] * s.
func Update(a []float64, s float64) {
	if len(a) == 0 {
		return
	}
	vecmath.ScaleBlockInPlace(a, s)
}

// STriad sets a[i] = c[i]*d[i] + b[i].
func STriad(a, b, c, d []float64) {
	if len(b) != len(a) || len(c) != len(a) || len(d) != len(a) {
		panic("kernel: slice length mismatch")
	}
	if len(a) == 0 {
		return
	}
	vecmath.MulAddBlock(a, c, d, b)
}

// SDaxpy sets a[i] = b[i]*c[i] + a[i].
func SDaxpy(a, b, c []float64) {
	if len(b) != len(a) || len(c) != len(a) {
		panic("kernel: slice length mismatch")
	}
	if len(a) == 0 {
		return
	}
	vecmath.MulAddBlock(a, b, c, a)
}
