// Package alloc provides the storage allocators a layout map draws its key
// and value arrays from.
//
//   - Heap: ordinary Go slices (the default).
//   - Aligned: slices starting on a 64-byte cache line boundary.
//   - HugePage: anonymous mappings advised for transparent huge pages, with
//     an optional memory budget.
//
// Aligned and HugePage carve typed slices out of raw memory, so they only
// accept pointer-free element types (see Plain).
package alloc
