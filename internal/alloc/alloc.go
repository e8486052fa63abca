// Package alloc hands out float64 buffers whose first element sits on a
// caller-chosen byte boundary.
package alloc

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// CacheLineSize is the default alignment, one cache line on current x86 and ARM cores.
const CacheLineSize = 64

const float64Size = int(unsafe.Sizeof(float64(0)))

var (
	// ErrAlignment reports an alignment that is not a power of two or is
	// smaller than the element size.
	ErrAlignment = errors.New("alloc: alignment must be a power of two >= 8")

	// ErrSize reports a negative or overflowing element count.
	ErrSize = errors.New("alloc: invalid buffer size")
)

// IsAligned reports whether p is a multiple of alignment.
func IsAligned(p unsafe.Pointer, alignment int) bool {
	return uintptr(p)%uintptr(alignment) == 0
}

// Float64s returns a zeroed slice of n float64 values whose backing array
// starts on an alignment-byte boundary. The slice capacity equals n.
//
// The buffer is a window into a slightly larger allocation, which stays alive
// as long as the returned slice is referenced.
func Float64s(alignment, n int) (buf []float64, err error) {
	if alignment < float64Size || alignment&(alignment-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrAlignment, alignment)
	}
	if n < 0 || n > (math.MaxInt-alignment)/float64Size {
		return nil, fmt.Errorf("%w: %d elements", ErrSize, n)
	}
	if n == 0 {
		return []float64{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("alloc: %d bytes at alignment %d: %v", n*float64Size, alignment, r)
		}
	}()

	// The backing array is allocated as []float64 so the garbage collector
	// scans it as pointer-free data of the right type. Go guarantees 8-byte
	// alignment for it, so the padding needed is at most alignment-8 bytes.
	pad := (alignment - float64Size) / float64Size
	raw := make([]float64, n+pad)

	base := uintptr(unsafe.Pointer(&raw[0]))
	offset := 0
	if mod := base % uintptr(alignment); mod != 0 {
		offset = int(uintptr(alignment)-mod) / float64Size
	}

	buf = raw[offset : offset+n : offset+n]
	if !IsAligned(unsafe.Pointer(&buf[0]), alignment) {
		return nil, fmt.Errorf("alloc: could not align %d elements to %d bytes", n, alignment)
	}
	return buf, nil
}
