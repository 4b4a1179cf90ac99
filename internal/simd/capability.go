package simd

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// ISA represents a SIMD instruction set architecture.
type ISA uint8

const (
	// Generic represents pure Go implementation (no SIMD).
	Generic ISA = iota
	// NEON represents ARM64 NEON (128-bit SIMD, ASIMD).
	NEON
	// AVX2 represents x86-64 AVX2 (256-bit SIMD) with POPCNT.
	AVX2
	// AVX512 represents x86-64 AVX-512 (512-bit SIMD).
	AVX512
)

// EnvOverride is the environment variable consulted at startup.
const EnvOverride = "GOLAYOUT_SIMD"

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case NEON:
		return "neon"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "neon":
		return NEON, true
	case "avx2":
		return AVX2, true
	case "avx512":
		return AVX512, true
	default:
		return Generic, false
	}
}

var (
	detectOnce sync.Once

	// activeISA is the selected SIMD implementation.
	activeISA ISA

	// hasOverride is true if GOLAYOUT_SIMD was set to a known ISA.
	hasOverride bool

	// CPU feature flags (set by platform-specific detectFeatures)
	hasASIMD   bool // ARM64 NEON
	hasAVX2    bool // x86-64 AVX2 + POPCNT
	hasAVX512F bool // x86-64 AVX-512 Foundation
)

// ensureDetected runs feature detection exactly once. Kernel init functions
// call it so they do not depend on file init order.
func ensureDetected() {
	detectOnce.Do(func() {
		detectFeatures()
		initCapabilities()
	})
}

func initCapabilities() {
	if override := os.Getenv(EnvOverride); override != "" {
		if isa, ok := ParseISA(override); ok {
			hasOverride = true
			if isISAAvailable(isa) {
				activeISA = isa
				return
			}
			// Invalid override - fall through to auto-detection
		}
	}

	activeISA = selectBestISA()
}

// isISAAvailable checks if an ISA is supported on this CPU.
func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case NEON:
		return hasASIMD
	case AVX2:
		return hasAVX2
	case AVX512:
		return hasAVX512F && hasAVX2
	default:
		return false
	}
}

// selectBestISA chooses the optimal ISA for the current platform.
func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "arm64":
		if hasASIMD {
			return NEON
		}
		return Generic
	case "amd64":
		if hasAVX512F && hasAVX2 {
			return AVX512
		}
		if hasAVX2 {
			return AVX2
		}
		return Generic
	default:
		return Generic
	}
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	ensureDetected()
	return activeISA
}

// IsOverridden returns true if GOLAYOUT_SIMD was set.
func IsOverridden() bool {
	ensureDetected()
	return hasOverride
}

// HasAVX2 returns true if x86-64 AVX2+POPCNT is available.
func HasAVX2() bool {
	ensureDetected()
	return hasAVX2
}

// HasASIMD returns true if ARM64 NEON is available.
func HasASIMD() bool {
	ensureDetected()
	return hasASIMD
}

// Accelerated reports whether the 32/64-bit block kernels run on vector
// instructions rather than the generic loop.
func Accelerated() bool {
	ensureDetected()
	return accelerated
}
