// Package cpu detects the SIMD extensions used to pick a kernel implementation.
//
// Detection runs once, lazily, and the result is cached. Tests can pin a
// feature set with SetForcedFeatures and undo it with ResetDetection.
package cpu

import (
	"strings"
	"sync"
)

// SIMDLevel is the instruction set a kernel implementation requires.
type SIMDLevel int

const (
	// SIMDNone is plain Go, available everywhere.
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 is the x86-64 baseline.
	SIMDSSE2

	// SIMDNEON is ARMv8 Advanced SIMD.
	SIMDNEON
)

// String returns the conventional name of the level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes what the current processor offers. The wider x86
// extensions are not a kernel requirement; they are reported in the run log
// because algo-vecmath dispatches to them on its own.
type Features struct {
	HasSSE2   bool
	HasAVX2   bool
	HasFMA    bool
	HasAVX512 bool
	HasNEON   bool

	// ForceGeneric restricts kernel selection to SIMDNone.
	ForceGeneric bool

	Architecture string // runtime.GOARCH
}

// String lists the detected extensions, e.g. "amd64 [SSE2 AVX2 FMA]".
func (f Features) String() string {
	var ext []string
	if f.HasSSE2 {
		ext = append(ext, "SSE2")
	}
	if f.HasAVX2 {
		ext = append(ext, "AVX2")
	}
	if f.HasFMA {
		ext = append(ext, "FMA")
	}
	if f.HasAVX512 {
		ext = append(ext, "AVX-512")
	}
	if f.HasNEON {
		ext = append(ext, "NEON")
	}
	if f.ForceGeneric {
		ext = append(ext, "forced-generic")
	}
	return f.Architecture + " [" + strings.Join(ext, " ") + "]"
}

var (
	detected    Features
	detectOnce  sync.Once
	detectMutex sync.Mutex

	forced      *Features
	forcedMutex sync.RWMutex
)

// DetectFeatures returns the cached feature set of this machine, or the forced
// set if one is installed.
func DetectFeatures() Features {
	forcedMutex.RLock()
	f := forced
	forcedMutex.RUnlock()

	if f != nil {
		return *f
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})
	features := detected
	detectMutex.Unlock()

	return features
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	pinned := f
	forced = &pinned
}

// ResetDetection drops any forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forced = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detected = Features{}
	detectMutex.Unlock()
}

// Supports reports whether an implementation at level can run on features.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
