package stream

import "testing"

func TestKindMultipliers(t *testing.T) {
	want := []int64{1, 1, 2, 2, 3, 3, 4, 4}
	kinds := Kinds()
	if len(kinds) != len(want) {
		t.Fatalf("Kinds() has %d entries, want %d", len(kinds), len(want))
	}
	for i, k := range kinds {
		if k != Kind(i) {
			t.Fatalf("Kinds()[%d] = %v", i, k)
		}
		if got := k.Multiplier(); got != want[i] {
			t.Errorf("%v.Multiplier() = %d, want %d", k, got, want[i])
		}
	}
}

func TestKindBytes(t *testing.T) {
	for _, n := range []int{0, 1, 4, 1000, DefaultSize} {
		for _, k := range Kinds() {
			want := int64(n) * 8 * k.Multiplier()
			if got := k.Bytes(n); got != want {
				t.Errorf("%v.Bytes(%d) = %d, want %d", k, n, got, want)
			}
		}
	}
	if got := SDaxpy.Bytes(DefaultSize); got != 640_000_000 {
		t.Fatalf("SDaxpy.Bytes(%d) = %d", DefaultSize, got)
	}
}

func TestKindLabels(t *testing.T) {
	want := []string{
		"Init:       ",
		"Sum:        ",
		"Copy:       ",
		"Update:     ",
		"Triad:      ",
		"Daxpy:      ",
		"STriad:     ",
		"SDaxpy:     ",
	}
	for i, k := range Kinds() {
		if got := k.Label(); got != want[i] {
			t.Errorf("%v.Label() = %q, want %q", k, got, want[i])
		}
	}
}

func TestKindInvalid(t *testing.T) {
	k := Kind(42)
	if k.Valid() {
		t.Fatal("Kind(42) reported valid")
	}
	if k.Multiplier() != 0 || k.Bytes(10) != 0 {
		t.Fatal("invalid kind must move no bytes")
	}
	if k.String() != "Kind(42)" {
		t.Fatalf("String() = %q", k.String())
	}
}
