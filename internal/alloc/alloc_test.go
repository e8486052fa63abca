package alloc

import (
	"errors"
	"testing"
	"unsafe"
)

func TestFloat64sAligned(t *testing.T) {
	alignments := []int{8, 16, 32, 64, 128, 4096}
	sizes := []int{1, 3, 8, 100, 1001, 1 << 16}

	for _, align := range alignments {
		for _, n := range sizes {
			buf, err := Float64s(align, n)
			if err != nil {
				t.Fatalf("Float64s(%d, %d): %v", align, n, err)
			}
			if len(buf) != n || cap(buf) != n {
				t.Fatalf("Float64s(%d, %d): len=%d cap=%d", align, n, len(buf), cap(buf))
			}
			if addr := uintptr(unsafe.Pointer(&buf[0])); addr%uintptr(align) != 0 {
				t.Fatalf("Float64s(%d, %d): address %#x not aligned", align, n, addr)
			}
		}
	}
}

func TestFloat64sWritable(t *testing.T) {
	buf, err := Float64s(CacheLineSize, 257)
	if err != nil {
		t.Fatal(err)
	}
	for i := range buf {
		buf[i] = float64(i)
	}
	for i, v := range buf {
		if v != float64(i) {
			t.Fatalf("index %d: got %v", i, v)
		}
	}
}

func TestFloat64sRejectsBadAlignment(t *testing.T) {
	for _, align := range []int{0, 1, 4, 7, 48, 100, -64} {
		if _, err := Float64s(align, 16); !errors.Is(err, ErrAlignment) {
			t.Fatalf("alignment %d: err = %v, want ErrAlignment", align, err)
		}
	}
}

func TestFloat64sRejectsBadSize(t *testing.T) {
	if _, err := Float64s(64, -1); !errors.Is(err, ErrSize) {
		t.Fatalf("err = %v, want ErrSize", err)
	}
}

func TestFloat64sEmpty(t *testing.T) {
	buf, err := Float64s(64, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 0 {
		t.Fatalf("len = %d, want 0", len(buf))
	}
}
