package generic

// Init sets every element of dst to s.
func Init(dst []float64, s float64) {
	for i := range dst {
		dst[i] = s
	}
}

// Sum returns the sum of all elements in x.
func Sum(x []float64) float64 {
	sum := 0.0
	for i := range x {
		sum += x[i]
	}
	return sum
}

// Copy sets dst[i] = src[i]. Slices must have equal length.
func Copy(dst, src []float64) {
	if len(dst) != len(src) {
		panic("kernel: slice length mismatch")
	}
	copy(dst, src)
}

// Update scales a in place: a[i] = a[i] * s.
func Update(a []float64, s float64) {
	for i := range a {
		a[i] = a[i] * s
	}
}

// Triad sets a[i] = b[i] + s*c[i].
func Triad(a, b, c []float64, s float64) {
	if len(b) != len(a) || len(c) != len(a) {
		panic("kernel: slice length mismatch")
	}
	for i := range a {
		a[i] = b[i] + s*c[i]
	}
}

// Daxpy sets a[i] = a[i] + s*b[i].
func Daxpy(a, b []float64, s float64) {
	if len(b) != len(a) {
		panic("kernel: slice length mismatch")
	}
	for i := range a {
		a[i] = a[i] + s*b[i]
	}
}

// STriad sets a[i] = b[i] + c[i]*d[i].
func STriad(a, b, c, d []float64) {
	if len(b) != len(a) || len(c) != len(a) || len(d) != len(a) {
		panic("kernel: slice length mismatch")
	}
	for i := range a {
		a[i] = b[i] + c[i]*d[i]
	}
}

// SDaxpy sets a[i] = a[i] + b[i]*c[i].
func SDaxpy(a, b, c []float64) {
	if len(b) != len(a) || len(c) != len(a) {
		panic("kernel: slice length mismatch")
	}
	for i := range a {
		a[i] = a[i] + b[i]*c[i]
	}
}
