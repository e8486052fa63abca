package stream

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-bandwidth/internal/cpu"
	"github.com/cwbudde/algo-bandwidth/internal/kernel/arch/generic"
	"github.com/cwbudde/algo-bandwidth/internal/kernel/registry"
	"github.com/cwbudde/algo-bandwidth/internal/testutil"
)

// writingSumName is a variant whose Sum writes through its read operand.
const writingSumName = "writing-sum"

const clobbered = -1e6

func writingSum(x []float64) float64 {
	s := generic.Sum(x)
	if len(x) > sumGuardIndex {
		x[sumGuardIndex] = clobbered
	}
	return s
}

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      writingSumName,
		SIMDLevel: cpu.SIMDNone,
		Priority:  -1,

		Init:   generic.Init,
		Sum:    writingSum,
		Copy:   generic.Copy,
		Update: generic.Update,
		Triad:  generic.Triad,
		Daxpy:  generic.Daxpy,
		STriad: generic.STriad,
		SDaxpy: generic.SDaxpy,
	})
}

func TestWritingSumWrites(t *testing.T) {
	x := testutil.Constant(1, 16)
	writingSum(x)
	if x[sumGuardIndex] != clobbered {
		t.Fatalf("x[%d] = %v, want %v", sumGuardIndex, x[sumGuardIndex], clobbered)
	}
}

func TestRunRestoresGuardedElement(t *testing.T) {
	forceGeneric(t)

	for _, n := range []int{11, 64, 1000} {
		cfg := NewConfig(WithSize(n), WithNTimes(3), WithThreads(1), WithImplementation(writingSumName))
		res, err := Run(context.Background(), cfg)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if res.Implementation != writingSumName {
			t.Fatalf("n=%d: Implementation = %q", n, res.Implementation)
		}
		if want := Recurrence(cfg).A; res.Arrays.A[sumGuardIndex] != want {
			t.Fatalf("n=%d: a[%d] = %v, want %v", n, sumGuardIndex, res.Arrays.A[sumGuardIndex], want)
		}
		if !res.Validation.OK {
			t.Fatalf("n=%d: validation failed: %+v", n, res.Validation)
		}
	}
}

func TestRunShortArraysSkipGuard(t *testing.T) {
	forceGeneric(t)

	for _, n := range []int{1, 5, sumGuardIndex} {
		cfg := NewConfig(WithSize(n), WithNTimes(2), WithThreads(1), WithImplementation(writingSumName))
		res, err := Run(context.Background(), cfg)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !res.Validation.OK {
			t.Fatalf("n=%d: validation failed: %+v", n, res.Validation)
		}
	}
}
