package stream

import (
	"fmt"
	"unsafe"
)

// elementSize is the size in bytes of one array element.
const elementSize = int64(unsafe.Sizeof(float64(0)))

// Kind identifies one of the benchmark kernels. The values are in execution
// order.
type Kind int

const (
	Init Kind = iota
	Sum
	Copy
	Update
	Triad
	Daxpy
	STriad
	SDaxpy

	// NumKinds is the number of kernels.
	NumKinds
)

var kindInfo = [NumKinds]struct {
	name       string
	multiplier int64 // elements read plus written per index
}{
	Init:   {"Init", 1},
	Sum:    {"Sum", 1},
	Copy:   {"Copy", 2},
	Update: {"Update", 2},
	Triad:  {"Triad", 3},
	Daxpy:  {"Daxpy", 3},
	STriad: {"STriad", 4},
	SDaxpy: {"SDaxpy", 4},
}

// Kinds returns all kernels in execution order.
func Kinds() []Kind {
	kinds := make([]Kind, NumKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k names a kernel.
func (k Kind) Valid() bool {
	return k >= 0 && k < NumKinds
}

// String returns the kernel name, e.g. "Triad".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Label returns the name with a colon, right-padded to the report's first
// column, e.g. "Init:       ".
func (k Kind) Label() string {
	return fmt.Sprintf("%-12s", k.String()+":")
}

// Multiplier returns how many array elements the kernel moves per index.
func (k Kind) Multiplier() int64 {
	if !k.Valid() {
		return 0
	}
	return kindInfo[k].multiplier
}

// Bytes returns the memory traffic of one kernel pass over n elements.
func (k Kind) Bytes(n int) int64 {
	return int64(n) * elementSize * k.Multiplier()
}
