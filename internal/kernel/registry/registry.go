// Package registry holds the kernel implementation variants available to the
// benchmark.
//
// Variant packages register an OpEntry from init(). At run time Lookup picks
// the highest-priority entry the CPU supports, or ByName picks one explicitly.
// Entry functions work on one contiguous chunk; the kernel package fans them
// out over workers.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-bandwidth/internal/cpu"
)

// OpEntry is one registered set of kernel bodies.
//
// Every field must be populated: a variant that has no faster form of a
// kernel reuses the generic body for it.
type OpEntry struct {
	// Name identifies the variant, e.g. "generic" or "simd".
	Name string

	// SIMDLevel is the instruction set the variant requires.
	SIMDLevel cpu.SIMDLevel

	// Priority orders compatible variants; higher wins.
	//   - generic: 0
	//   - simd:    10
	Priority int

	// Init sets dst[i] = s.
	Init func(dst []float64, s float64)

	// Sum returns the sum of x[i].
	Sum func(x []float64) float64

	// Copy sets dst[i] = src[i].
	Copy func(dst, src []float64)

	// Update sets a[i] = a[i] * s.
	Update func(a []float64, s float64)

	// Triad sets a[i] = b[i] + s*c[i].
	Triad func(a, b, c []float64, s float64)

	// Daxpy sets a[i] = a[i] + s*b[i].
	Daxpy func(a, b []float64, s float64)

	// STriad sets a[i] = b[i] + c[i]*d[i].
	STriad func(a, b, c, d []float64)

	// SDaxpy sets a[i] = a[i] + b[i]*c[i].
	SDaxpy func(a, b, c []float64)
}

// Complete reports whether every kernel body is set.
func (e *OpEntry) Complete() bool {
	return e.Init != nil && e.Sum != nil && e.Copy != nil && e.Update != nil &&
		e.Triad != nil && e.Daxpy != nil && e.STriad != nil && e.SDaxpy != nil
}

// OpRegistry stores the registered variants.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the registry the variant packages register with.
var Global = &OpRegistry{}

// Register adds a variant. All registrations should happen before the first Lookup.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority variant supported by features, or nil.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// ByName returns the variant registered under name if features support it.
func (r *OpRegistry) ByName(name string, features cpu.Features) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if entry.Name == name && cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}
	return nil
}

// sortByPriority orders entries by descending priority. Caller holds r.mu.
func (r *OpRegistry) sortByPriority() {
	// insertion sort, the registry holds a handful of entries
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of the entries sorted by priority.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset removes all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
