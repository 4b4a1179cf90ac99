package alloc

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/hupe1980/golayout/internal/conv"
	"github.com/hupe1980/golayout/internal/mem"
	"github.com/hupe1980/golayout/internal/mmap"
	"github.com/hupe1980/golayout/internal/resource"
)

// ErrMemoryLimitExceeded is returned when an allocation would exceed the
// allocator's budget.
var ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

// HugePage allocates every slice from its own anonymous mapping rounded up
// to the huge page size and advised for transparent huge pages. Slices must
// be returned with Release; their memory is not managed by the GC.
//
// HugePage is safe for concurrent use.
type HugePage[T Plain] struct {
	budget *resource.Budget

	mu   sync.Mutex
	live map[unsafe.Pointer]*mmap.Region
}

// NewHugePage creates a huge page allocator. A limit > 0 caps the mapped
// bytes outstanding at any time.
func NewHugePage[T Plain](limit int64) *HugePage[T] {
	return &HugePage[T]{
		budget: resource.NewBudget(limit),
		live:   make(map[unsafe.Pointer]*mmap.Region),
	}
}

// Allocate implements Allocator.
func (h *HugePage[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	if n == 0 {
		return nil, nil
	}

	var zero T
	size, err := conv.ByteSize(n, int(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, err
	}
	size = mmap.RoundUp(size, mmap.HugePageSize)

	if err := h.budget.Acquire(int64(size)); err != nil {
		return nil, err
	}

	r, err := mmap.Anonymous(size)
	if err != nil {
		h.budget.Release(int64(size))
		return nil, err
	}
	if err := r.Advise(mmap.AccessHugePage); err != nil {
		_ = r.Close()
		h.budget.Release(int64(size))
		return nil, err
	}

	s := mem.Cast[T](r.Bytes(), n)

	h.mu.Lock()
	h.live[unsafe.Pointer(unsafe.SliceData(s))] = r
	h.mu.Unlock()

	return s, nil
}

// Release implements Allocator.
func (h *HugePage[T]) Release(s []T) error {
	if len(s) == 0 {
		return nil
	}

	key := unsafe.Pointer(unsafe.SliceData(s))
	h.mu.Lock()
	r, ok := h.live[key]
	delete(h.live, key)
	h.mu.Unlock()

	if !ok {
		return ErrUnknownSlice
	}

	size := r.Size()
	err := r.Close()
	h.budget.Release(int64(size))
	return err
}

// InUse returns the mapped bytes outstanding.
func (h *HugePage[T]) InUse() int64 {
	return h.budget.Usage()
}

// Live returns the number of slices not yet released.
func (h *HugePage[T]) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Close releases every outstanding slice.
func (h *HugePage[T]) Close() error {
	h.mu.Lock()
	live := h.live
	h.live = make(map[unsafe.Pointer]*mmap.Region)
	h.mu.Unlock()

	var errs []error
	for _, r := range live {
		size := r.Size()
		errs = append(errs, r.Close())
		h.budget.Release(int64(size))
	}
	return errors.Join(errs...)
}
