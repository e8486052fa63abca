// Package generic provides the pure Go kernel bodies.
//
// They are the fallback on every architecture and the reference the other
// variants are tested against.
package generic

import (
	"github.com/cwbudde/algo-bandwidth/internal/cpu"
	"github.com/cwbudde/algo-bandwidth/internal/kernel/registry"
)

// Name is the registry name of this variant.
const Name = "generic"

// init registers the generic bodies at priority 0.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      Name,
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,

		Init:   Init,
		Sum:    Sum,
		Copy:   Copy,
		Update: Update,
		Triad:  Triad,
		Daxpy:  Daxpy,
		STriad: STriad,
		SDaxpy: SDaxpy,
	})
}
