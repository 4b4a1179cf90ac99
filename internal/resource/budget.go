package resource

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Budget tracks and optionally limits reserved memory.
type Budget struct {
	limit int64
	sem   *semaphore.Weighted // nil if unlimited
	used  atomic.Int64
	peak  atomic.Int64
}

// NewBudget creates a budget. A limit <= 0 only tracks usage.
func NewBudget(limit int64) *Budget {
	b := &Budget{limit: max(limit, 0)}
	if limit > 0 {
		b.sem = semaphore.NewWeighted(limit)
	}
	return b
}

// Acquire reserves bytes. It never blocks.
func (b *Budget) Acquire(bytes int64) error {
	if b == nil || bytes <= 0 {
		return nil
	}

	if b.sem != nil && !b.sem.TryAcquire(bytes) {
		return fmt.Errorf("%w: requested %d, in use %d, limit %d", ErrMemoryLimitExceeded, bytes, b.used.Load(), b.limit)
	}

	used := b.used.Add(bytes)
	for {
		peak := b.peak.Load()
		if used <= peak || b.peak.CompareAndSwap(peak, used) {
			break
		}
	}
	return nil
}

// Release returns reserved bytes.
func (b *Budget) Release(bytes int64) {
	if b == nil || bytes <= 0 {
		return
	}

	if b.sem != nil {
		b.sem.Release(bytes)
	}
	b.used.Add(-bytes)
}

// Usage returns the bytes currently reserved.
func (b *Budget) Usage() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

// Peak returns the highest reservation seen.
func (b *Budget) Peak() int64 {
	if b == nil {
		return 0
	}
	return b.peak.Load()
}

// Limit returns the configured limit in bytes (0 if unlimited).
func (b *Budget) Limit() int64 {
	if b == nil {
		return 0
	}
	return b.limit
}
