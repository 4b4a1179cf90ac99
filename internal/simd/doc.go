// Package simd provides block-compare kernels for implicit search trees.
//
// # Supported Platforms
//
//   - x86-64: AVX2 (64-bit and 32-bit lanes)
//   - Any: SWAR in-register compare for 8-bit and 16-bit lanes
//
// Runtime CPU feature detection selects the optimal implementation.
// Build with -tags noasm to force the generic Go fallback, or set
// GOLAYOUT_SIMD=generic.
//
// # Operations
//
// Every kernel counts the lanes of a fixed-width block that compare below
// (CountLess*) or above (CountGreater*) a broadcast key. For a sorted block
// that count is the in-block lower/upper bound offset.
//
// Unsigned lanes are mapped onto signed compares by flipping the sign bit of
// both operands.
package simd
