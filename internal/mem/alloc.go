package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of a cache line (64 bytes).
const Alignment = 64

// Plain is the set of element types without pointers. Only these may live
// in memory carved out of a byte buffer.
type Plain interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	offset := (Alignment - (uintptr(ptr) & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// Aligned allocates a slice of n elements starting on a 64-byte boundary.
func Aligned[T Plain](n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	buf := AllocAligned(n * int(unsafe.Sizeof(zero)))
	return Cast[T](buf, n)
}

// Cast reinterprets the first n elements of buf as []T. buf must be at
// least n*sizeof(T) bytes and suitably aligned for T.
func Cast[T Plain](buf []byte, n int) []T {
	if n <= 0 || len(buf) == 0 {
		return nil
	}
	ptr := unsafe.Pointer(&buf[0])   //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*T)(ptr), n) //nolint:gosec // unsafe is required for memory alignment
}

// IsAligned reports whether the first element of s starts on a 64-byte
// boundary. Empty slices are aligned.
func IsAligned[T any](s []T) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))%Alignment == 0 //nolint:gosec // address inspection only
}
