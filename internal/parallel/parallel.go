// Package parallel splits an index range into disjoint chunks and runs them
// on separate goroutines.
//
// Chunk boundaries fall on multiples of Grain elements so that no two workers
// write into the same cache line of a float64 buffer.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Grain is the chunk granularity in elements: one 64-byte cache line of float64.
const Grain = 8

// Workers resolves a requested worker count. Values <= 0 mean GOMAXPROCS.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// chunkSize returns the Grain-rounded chunk length for n > 0 elements. The
// worker count is clamped to one per Grain elements.
func chunkSize(n, workers int) int {
	workers = min(Workers(workers), (n+Grain-1)/Grain)
	chunk := (n + workers - 1) / workers
	return (chunk + Grain - 1) / Grain * Grain
}

// Width returns the number of chunks, and so goroutines, For runs for n
// elements. It never exceeds the requested worker count.
func Width(n, workers int) int {
	if n <= 0 {
		return 0
	}
	chunk := chunkSize(n, workers)
	return (n + chunk - 1) / chunk
}

// Ranges returns the [lo, hi) bounds For would use for n elements and the
// given number of workers. Every chunk except the last is a multiple of Grain.
func Ranges(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	chunk := chunkSize(n, workers)

	ranges := make([][2]int, 0, (n+chunk-1)/chunk)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		ranges = append(ranges, [2]int{lo, hi})
	}
	return ranges
}

// For calls body once per chunk of [0, n) and returns when all chunks are done.
// A single chunk runs on the calling goroutine.
func For(n, workers int, body func(lo, hi int)) {
	ranges := Ranges(n, workers)
	if len(ranges) == 0 {
		return
	}
	if len(ranges) == 1 {
		body(ranges[0][0], ranges[0][1])
		return
	}

	var g errgroup.Group
	for _, r := range ranges {
		g.Go(func() error {
			body(r[0], r[1])
			return nil
		})
	}
	_ = g.Wait()
}

// Reduce runs body over the chunks of [0, n) like For and sums the per-chunk
// results in chunk order, so the total does not depend on scheduling.
func Reduce(n, workers int, body func(lo, hi int) float64) float64 {
	ranges := Ranges(n, workers)
	if len(ranges) == 0 {
		return 0
	}
	if len(ranges) == 1 {
		return body(ranges[0][0], ranges[0][1])
	}

	partial := make([]float64, len(ranges))
	var g errgroup.Group
	for i, r := range ranges {
		g.Go(func() error {
			partial[i] = body(r[0], r[1])
			return nil
		})
	}
	_ = g.Wait()

	total := 0.0
	for _, p := range partial {
		total += p
	}
	return total
}
