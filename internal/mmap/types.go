package mmap

import "errors"

// AccessPattern provides hints to the kernel about how the data will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessHugePage asks for transparent huge pages (Linux only).
	AccessHugePage
)

// HugePageSize is the transparent huge page size assumed when rounding
// region sizes.
const HugePageSize = 2 << 20

var (
	// ErrClosed is returned when attempting to access a closed region.
	ErrClosed = errors.New("mmap: region is closed")
	// ErrInvalidSize is returned when the requested size is not positive.
	ErrInvalidSize = errors.New("mmap: invalid size")
)
