package alloc

import (
	"errors"

	"github.com/hupe1980/golayout/internal/mem"
)

var (
	// ErrUnknownSlice is returned when releasing a slice the allocator did
	// not hand out (or already released).
	ErrUnknownSlice = errors.New("alloc: slice not owned by allocator")
	// ErrInvalidLength is returned for negative lengths.
	ErrInvalidLength = errors.New("alloc: invalid length")
)

// Plain is the set of pointer-free element types raw-memory allocators
// accept.
type Plain interface {
	mem.Plain
}

// Allocator hands out slices of exactly n elements and takes them back.
// Release must be called at most once per allocated slice.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Release(s []T) error
}

// Heap allocates ordinary Go slices; Release is a no-op.
type Heap[T any] struct{}

// Allocate implements Allocator.
func (Heap[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	return make([]T, n), nil
}

// Release implements Allocator.
func (Heap[T]) Release([]T) error { return nil }

// Aligned allocates slices whose first element sits on a 64-byte boundary.
// The memory is GC-managed; Release is a no-op.
type Aligned[T Plain] struct{}

// Allocate implements Allocator.
func (Aligned[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	return mem.Aligned[T](n), nil
}

// Release implements Allocator.
func (Aligned[T]) Release([]T) error { return nil }
