//go:build !purego && (amd64 || arm64)

package simd

import (
	"runtime"

	"github.com/cwbudde/algo-bandwidth/internal/cpu"
	"github.com/cwbudde/algo-bandwidth/internal/kernel/arch/generic"
	"github.com/cwbudde/algo-bandwidth/internal/kernel/registry"
)

// Name is the registry name of this variant.
const Name = "simd"

// init registers the vecmath-backed bodies. They need the architecture's
// baseline vector unit: SSE2 on amd64, NEON on arm64.
//
// Priority: 10 (preferred over generic)
func init() {
	level := cpu.SIMDSSE2
	if runtime.GOARCH == "arm64" {
		level = cpu.SIMDNEON
	}

	registry.Global.Register(registry.OpEntry{
		Name:      Name,
		SIMDLevel: level,
		Priority:  10,

		Init:   generic.Init,
		Sum:    Sum,
		Copy:   generic.Copy,
		Update: Update,
		Triad:  generic.Triad,
		Daxpy:  generic.Daxpy,
		STriad: STriad,
		SDaxpy: SDaxpy,
	})
}
