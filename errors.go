package golayout

import (
	"errors"
	"fmt"

	"github.com/hupe1980/golayout/layout"
)

var (
	// ErrOutOfRange is returned when a sorted rank does not exist.
	ErrOutOfRange = layout.ErrOutOfRange
	// ErrNotFound is returned when a key is not present.
	ErrNotFound = errors.New("golayout: key not found")
	// ErrNotSortedUnique is returned by NewSortedUnique for input that is not
	// strictly increasing under the order.
	ErrNotSortedUnique = errors.New("golayout: input not sorted and unique")
	// ErrInvalidOrder is returned when a zero Order is used.
	ErrInvalidOrder = layout.ErrInvalidOrder
	// ErrInvalidAllocator is returned when a configured allocator does not
	// match the key or value type.
	ErrInvalidAllocator = errors.New("golayout: allocator type mismatch")
	// ErrLengthMismatch is returned when parallel slices differ in length.
	ErrLengthMismatch = errors.New("golayout: length mismatch")
)

// KeyNotFoundError reports a missing key.
//
// errors.Is(err, ErrNotFound) holds for it.
type KeyNotFoundError[K any] struct {
	Key K
}

func (e *KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("golayout: key not found: %v", e.Key)
}

func (e *KeyNotFoundError[K]) Unwrap() error { return ErrNotFound }

// RankError reports a sorted rank outside [0, Size).
//
// errors.Is(err, ErrOutOfRange) holds for it.
type RankError struct {
	Rank int
	Size int
}

func (e *RankError) Error() string {
	return fmt.Sprintf("golayout: rank %d out of range [0, %d)", e.Rank, e.Size)
}

func (e *RankError) Unwrap() error { return ErrOutOfRange }

// UnsortedInputError reports the first position where NewSortedUnique input
// is not strictly increasing.
//
// errors.Is(err, ErrNotSortedUnique) holds for it.
type UnsortedInputError struct {
	Index int
}

func (e *UnsortedInputError) Error() string {
	return fmt.Sprintf("golayout: input not sorted and unique at index %d", e.Index)
}

func (e *UnsortedInputError) Unwrap() error { return ErrNotSortedUnique }
