package mmap

import (
	"sync/atomic"
)

// Region is an anonymous read-write mapping. It owns its memory and is
// responsible for unmapping it.
type Region struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Anonymous maps size bytes of zeroed, private memory.
func Anonymous(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	data, unmap, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, unmap: unmap}, nil
}

// Close unmaps the memory. It is idempotent.
func (r *Region) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	data := r.data
	r.data = nil
	if r.unmap != nil && data != nil {
		return r.unmap(data)
	}
	return nil
}

// Bytes returns the mapped memory, or nil after Close.
func (r *Region) Bytes() []byte {
	if r.closed.Load() {
		return nil
	}
	return r.data
}

// Size returns the size of the region in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return osAdvise(r.data, pattern)
}

// RoundUp rounds size up to a multiple of align (a power of two).
func RoundUp(size, align int) int {
	return (size + align - 1) &^ (align - 1)
}
