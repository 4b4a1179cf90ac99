// Package prefetch issues hardware prefetch hints.
//
// # Platforms
//
//   - AMD64: PREFETCHT0
//   - ARM64: PRFM PLDL1KEEP
//   - Other (or -tags noasm): portable fallback via a plain read
//
// A hint never faults and never changes program semantics. Callers pass the
// address of the element they will touch in the near future.
package prefetch
