// Package testutil provides testing utilities for golayout.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random key sets and query streams,
// and a reference sorted-vector oracle every layout is checked against.
//
// # Random Keys
//
//	rng := testutil.NewRNG(seed)
//	keys := testutil.UniqueKeys[int64](rng, 1000, 1<<20)
//	queries := testutil.Queries(rng, keys, 500, 0.5)
//
// # Reference Oracle
//
//	sorted := testutil.SortedUnique(keys)
//	rank := testutil.LowerBound(sorted, q, cmp.Less[int64])
package testutil
