// Package golayout provides immutable sorted maps with cache-conscious
// physical layouts.
//
// A Map is built once from key/value pairs and then only read. Its keys
// are stored in the order of a layout policy (see package layout) chosen at
// compile time as a type parameter:
//
//   - layout.Eytzinger: binary search tree in level order with lookahead
//     prefetching.
//   - layout.BTree: implicit B-tree of fixed-size blocks searched with
//     vector compares for integer keys.
//   - layout.Sorted: the plain sorted array.
//
// Whatever the layout, iteration runs in sorted order and the map answers
// ordered queries (LowerBound, UpperBound, Find, EqualRange, Nth).
//
// # Quick Start
//
//	order := layout.Ascending[int64]()
//	m, err := golayout.New[int64, string, layout.Eytzinger[int64]](order, []golayout.Pair[int64, string]{
//	    {Key: 5, Value: "five"},
//	    {Key: 1, Value: "one"},
//	})
//	if err != nil { ... }
//
//	for k, v := range m.All() {
//	    fmt.Println(k, v) // 1 one, 5 five
//	}
//
// # Batch Lookups
//
// FindBatch interleaves many independent lookups with software prefetching
// (package amac) so their cache misses overlap. FindBatchParallel shards a
// large batch across goroutines; ContainsBatch returns a roaring bitmap of
// the needles that hit.
//
// # Storage
//
// Key and value arrays come from an allocator (package alloc): the Go heap
// by default, 64-byte aligned memory, or huge-page backed mappings with a
// memory budget. Close returns the storage.
package golayout
