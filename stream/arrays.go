package stream

import (
	"github.com/cwbudde/algo-bandwidth/internal/alloc"
)

// Arrays holds the four benchmark buffers. The harness owns them; kernels
// receive slices and never resize them.
type Arrays struct {
	A, B, C, D []float64
}

// NewArrays allocates four zeroed arrays of n elements, each starting on an
// alignment-byte boundary. Failure is a KindMemory error.
func NewArrays(n, alignment int) (*Arrays, error) {
	bufs := make([][]float64, 4)
	for i, name := range arrayNames {
		buf, err := alloc.Float64s(alignment, n)
		if err != nil {
			return nil, &Error{
				Kind:    KindMemory,
				Op:      "NewArrays",
				Message: "cannot allocate array " + name,
				Err:     err,
			}
		}
		bufs[i] = buf
	}
	return &Arrays{A: bufs[0], B: bufs[1], C: bufs[2], D: bufs[3]}, nil
}

// arrayNames is the order in which arrays are allocated, summed and checked.
var arrayNames = [4]string{"a", "b", "c", "d"}

// Len returns the element count of each array.
func (a *Arrays) Len() int {
	return len(a.A)
}

// Sums returns the plain index-order sum of each array.
func (a *Arrays) Sums() Sums {
	return Sums{
		A: sumOf(a.A),
		B: sumOf(a.B),
		C: sumOf(a.C),
		D: sumOf(a.D),
	}
}

func sumOf(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s
}

// Sums holds one value per array, in the order a, b, c, d.
type Sums struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
	D float64 `yaml:"d"`
}

func (s Sums) values() [4]float64 {
	return [4]float64{s.A, s.B, s.C, s.D}
}
