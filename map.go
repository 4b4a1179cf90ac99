package golayout

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hupe1980/golayout/alloc"
	"github.com/hupe1980/golayout/layout"
)

// Pair is one key/value input element.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Map is an immutable associative array over unique keys whose physical
// storage follows the layout policy P. Keys and values live in two parallel
// arrays permuted together at construction.
//
// A Map is safe for concurrent readers. Close must not race with readers.
type Map[K, V any, P layout.Policy[K]] struct {
	keys   []K
	values []V
	order  layout.Order[K]
	opts   options

	keyAlloc alloc.Allocator[K]
	valAlloc alloc.Allocator[V]
	closed   atomic.Bool
}

// Convenience aliases for the built-in policies.
type (
	// EytzingerMap stores keys in Eytzinger (level) order.
	EytzingerMap[K, V any] = Map[K, V, layout.Eytzinger[K]]
	// BTreeMap stores keys in an implicit B-tree of B-key blocks.
	BTreeMap[K, V any, B layout.BlockSize] = Map[K, V, layout.BTree[K, B]]
	// SortedMap stores keys as a plain sorted array.
	SortedMap[K, V any] = Map[K, V, layout.Sorted[K]]
)

// New builds a map from pairs. The input is stable-sorted by order and
// pairs with equivalent keys collapse to the one given last. pairs is not
// modified.
func New[K, V any, P layout.Policy[K]](order layout.Order[K], pairs []Pair[K, V], opts ...Option) (*Map[K, V, P], error) {
	return build[K, V, P](order, slices.Clone(pairs), false, applyOptions(opts))
}

// NewSortedUnique builds a map from pairs that are already strictly
// increasing under order, skipping the sort and de-duplication. It returns
// an *UnsortedInputError (ErrNotSortedUnique) otherwise.
func NewSortedUnique[K, V any, P layout.Policy[K]](order layout.Order[K], pairs []Pair[K, V], opts ...Option) (*Map[K, V, P], error) {
	return build[K, V, P](order, slices.Clone(pairs), true, applyOptions(opts))
}

// Collect builds a map from a key/value sequence with the semantics of New.
func Collect[K, V any, P layout.Policy[K]](order layout.Order[K], seq iter.Seq2[K, V], opts ...Option) (*Map[K, V, P], error) {
	var pairs []Pair[K, V]
	for k, v := range seq {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}
	return build[K, V, P](order, pairs, false, applyOptions(opts))
}

// FromSlices builds a map from parallel key and value slices with the
// semantics of New.
func FromSlices[K, V any, P layout.Policy[K]](order layout.Order[K], keys []K, values []V, opts ...Option) (*Map[K, V, P], error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}
	pairs := make([]Pair[K, V], len(keys))
	for i := range keys {
		pairs[i] = Pair[K, V]{Key: keys[i], Value: values[i]}
	}
	return build[K, V, P](order, pairs, false, applyOptions(opts))
}

func build[K, V any, P layout.Policy[K]](order layout.Order[K], items []Pair[K, V], presorted bool, o options) (*Map[K, V, P], error) {
	var p P
	start := time.Now()
	input := len(items)

	m, err := newMap[K, V, P](order, o)
	if err == nil {
		if presorted {
			err = checkSortedUnique(items, order)
		} else {
			items = sortUnique(items, order)
		}
	}
	if err == nil {
		err = m.fill(items)
	}

	elapsed := time.Since(start)
	o.logger.LogBuild(context.Background(), p.Name(), len(items), input-len(items), elapsed, err)
	o.metricsCollector.RecordBuild(p.Name(), len(items), input-len(items), elapsed, err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newMap[K, V any, P layout.Policy[K]](order layout.Order[K], o options) (*Map[K, V, P], error) {
	if !order.Valid() {
		return nil, ErrInvalidOrder
	}
	ka, err := resolveAllocator[K](o.keyAllocator)
	if err != nil {
		return nil, fmt.Errorf("key allocator: %w", err)
	}
	va, err := resolveAllocator[V](o.valueAllocator)
	if err != nil {
		return nil, fmt.Errorf("value allocator: %w", err)
	}
	return &Map[K, V, P]{
		order:    order,
		opts:     o,
		keyAlloc: ka,
		valAlloc: va,
	}, nil
}

func resolveAllocator[T any](a any) (alloc.Allocator[T], error) {
	if a == nil {
		return alloc.Heap[T]{}, nil
	}
	t, ok := a.(alloc.Allocator[T])
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrInvalidAllocator, a)
	}
	return t, nil
}

// sortUnique stable-sorts items and keeps the last pair of every run of
// equivalent keys.
func sortUnique[K, V any](items []Pair[K, V], order layout.Order[K]) []Pair[K, V] {
	slices.SortStableFunc(items, func(a, b Pair[K, V]) int {
		switch {
		case order.Less(a.Key, b.Key):
			return -1
		case order.Less(b.Key, a.Key):
			return 1
		}
		return 0
	})

	out := items[:0]
	for _, it := range items {
		if n := len(out); n > 0 && order.Equivalent(out[n-1].Key, it.Key) {
			out[n-1] = it
			continue
		}
		out = append(out, it)
	}
	clear(items[len(out):])
	return out
}

func checkSortedUnique[K, V any](items []Pair[K, V], order layout.Order[K]) error {
	for i := 1; i < len(items); i++ {
		if !order.Less(items[i-1].Key, items[i].Key) {
			return &UnsortedInputError{Index: i}
		}
	}
	return nil
}

// fill copies the sorted items into allocator-owned arrays and permutes
// them into the policy's layout.
func (m *Map[K, V, P]) fill(items []Pair[K, V]) error {
	n := len(items)
	keys, err := m.keyAlloc.Allocate(n)
	if err != nil {
		return fmt.Errorf("allocate keys: %w", err)
	}
	values, err := m.valAlloc.Allocate(n)
	if err != nil {
		return errors.Join(fmt.Errorf("allocate values: %w", err), m.keyAlloc.Release(keys))
	}

	for i, it := range items {
		keys[i] = it.Key
		values[i] = it.Value
	}

	var p P
	p.Permute(pairSwapper[K, V]{keys: keys, values: values})

	m.keys, m.values = keys, values
	return nil
}

// pairSwapper permutes the key and value arrays together.
type pairSwapper[K, V any] struct {
	keys   []K
	values []V
}

func (s pairSwapper[K, V]) Len() int { return len(s.keys) }

func (s pairSwapper[K, V]) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Len returns the number of elements.
func (m *Map[K, V, P]) Len() int {
	return len(m.keys)
}

// Policy returns the layout policy name.
func (m *Map[K, V, P]) Policy() string {
	var p P
	return p.Name()
}

// Order returns the key order.
func (m *Map[K, V, P]) Order() layout.Order[K] {
	return m.order
}

// Slot returns the element stored at physical index i. It panics if i is
// out of range, like a slice index.
func (m *Map[K, V, P]) Slot(i layout.UnorderedIndex) (K, V) {
	return m.keys[i], m.values[i]
}

// Close releases allocator-owned storage. The map is empty afterwards.
// It is idempotent.
func (m *Map[K, V, P]) Close() error {
	if m == nil || m.closed.Swap(true) {
		return nil
	}
	n := len(m.keys)
	keys, values := m.keys, m.values
	m.keys, m.values = nil, nil

	err := errors.Join(m.keyAlloc.Release(keys), m.valAlloc.Release(values))
	m.opts.logger.LogRelease(context.Background(), m.Policy(), n, err)
	return err
}
