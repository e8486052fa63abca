package cpu

import (
	"runtime"
	"testing"
)

func TestDetectFeaturesArchitecture(t *testing.T) {
	ResetDetection()
	defer ResetDetection()

	f := DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Fatalf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}
	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Fatal("amd64 must report SSE2")
	}
}

func TestForcedFeatures(t *testing.T) {
	defer ResetDetection()

	SetForcedFeatures(Features{HasAVX2: true, Architecture: "test"})
	f := DetectFeatures()
	if !f.HasAVX2 || f.Architecture != "test" {
		t.Fatalf("forced features not returned: %+v", f)
	}

	ResetDetection()
	if DetectFeatures().Architecture != runtime.GOARCH {
		t.Fatal("ResetDetection did not restore hardware detection")
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		level    SIMDLevel
		want     bool
	}{
		{"none always", Features{}, SIMDNone, true},
		{"sse2 present", Features{HasSSE2: true}, SIMDSSE2, true},
		{"sse2 missing", Features{}, SIMDSSE2, false},
		{"neon present", Features{HasNEON: true}, SIMDNEON, true},
		{"neon missing", Features{HasSSE2: true}, SIMDNEON, false},
		{"forced generic hides sse2", Features{HasSSE2: true, ForceGeneric: true}, SIMDSSE2, false},
		{"forced generic keeps none", Features{ForceGeneric: true}, SIMDNone, true},
		{"unknown level", Features{HasAVX2: true}, SIMDLevel(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supports(tt.features, tt.level); got != tt.want {
				t.Fatalf("Supports(%+v, %v) = %v, want %v", tt.features, tt.level, got, tt.want)
			}
		})
	}
}

func TestFeaturesString(t *testing.T) {
	f := Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"}
	if got, want := f.String(), "amd64 [SSE2 AVX2]"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	f = Features{HasSSE2: true, HasFMA: true, HasAVX512: true, ForceGeneric: true, Architecture: "amd64"}
	if got, want := f.String(), "amd64 [SSE2 FMA AVX-512 forced-generic]"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := SIMDNEON.String(); got != "NEON" {
		t.Fatalf("SIMDNEON.String() = %q", got)
	}
}
