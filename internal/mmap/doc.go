// Package mmap provides anonymous memory mappings for off-heap storage.
//
// # Usage
//
//	r, err := mmap.Anonymous(4 << 20)
//	if err != nil { ... }
//	defer r.Close()
//
//	// Ask the kernel to back the region with transparent huge pages
//	_ = r.Advise(mmap.AccessHugePage)
//
//	data := r.Bytes()
//
// # Platform Support
//
//   - Linux: mmap(2) with madvise(2), including MADV_HUGEPAGE
//   - Other Unix: mmap(2) with madvise(2); huge page advice is a no-op
//   - Everything else: heap-backed regions, advice is a no-op
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must
// ensure nothing touches Bytes() after Close() returns.
package mmap
