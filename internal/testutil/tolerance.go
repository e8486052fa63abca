package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireSliceRelClose fails t if any element pair has a relative error above eps.
func RequireSliceRelClose(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if e := RelErr(got[i], want[i]); e > eps {
			t.Fatalf("index %d: got %v, want %v (rel err %v > eps %v)", i, got[i], want[i], e, eps)
		}
	}
}

// RequireRelClose fails t if got deviates from want by more than eps relative to want.
func RequireRelClose(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if e := RelErr(got, want); e > eps {
		t.Fatalf("%s: got %v, want %v (rel err %v > eps %v)", name, got, want, e, eps)
	}
}

// RelErr returns |got-want| / |want|, or |got| when want is zero.
func RelErr(got, want float64) float64 {
	diff := math.Abs(got - want)
	if want == 0 {
		return diff
	}
	return diff / math.Abs(want)
}
