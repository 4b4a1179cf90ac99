// Package resource implements memory budgets for off-heap allocators.
//
// A Budget tracks the bytes handed out by an allocator and, when created
// with a limit, refuses reservations that would exceed it. Reservation is
// non-blocking and fails fast:
//
//	b := resource.NewBudget(1 << 30) // 1GB limit
//
//	if err := b.Acquire(size); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides what to do
//	}
//	defer b.Release(size)
//
// A nil *Budget is valid and tracks nothing.
package resource
