// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned allocation so key arrays start on a cache line
// and every B-tree block of 64 bytes stays inside one line.
package mem
