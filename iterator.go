package golayout

import (
	"iter"
	"unsafe"

	"github.com/hupe1980/golayout/layout"
)

// Iterator is a bidirectional position in a Map's sorted order. It steps
// through physical slots with the policy's in-order successor and
// predecessor, so a full walk is O(n) amortized.
//
// The End iterator sits past the last element. Prev from End moves to the
// last element; Prev from the first element yields End. Next on End is a
// no-op. Key and Value panic on End.
type Iterator[K, V any, P layout.Policy[K]] struct {
	keys   []K
	values []V
	i      int
}

// Valid reports whether the iterator points at an element.
func (it Iterator[K, V, P]) Valid() bool {
	return it.i >= 0 && it.i < len(it.keys)
}

// Key returns the current key.
func (it Iterator[K, V, P]) Key() K {
	return it.keys[it.i]
}

// Value returns the current value.
func (it Iterator[K, V, P]) Value() V {
	return it.values[it.i]
}

// Index returns the physical index, or -1 at End.
func (it Iterator[K, V, P]) Index() layout.UnorderedIndex {
	return layout.UnorderedIndex(it.i)
}

// Rank returns the sorted rank, or -1 at End.
func (it Iterator[K, V, P]) Rank() layout.OrderedIndex {
	var p P
	return layout.OrderedIndex(p.IndexToSortedRank(it.i, len(it.keys)))
}

// Next advances to the next element in sorted order.
func (it *Iterator[K, V, P]) Next() {
	if it.i < 0 {
		return
	}
	var p P
	it.i = p.NextIndex(it.i, len(it.keys))
}

// Prev moves to the previous element in sorted order.
func (it *Iterator[K, V, P]) Prev() {
	var p P
	it.i = p.PrevIndex(it.i, len(it.keys))
}

// Equal reports whether both iterators point at the same position of the
// same map.
func (it Iterator[K, V, P]) Equal(other Iterator[K, V, P]) bool {
	return it.i == other.i && unsafe.SliceData(it.keys) == unsafe.SliceData(other.keys)
}

// Begin returns an iterator at the smallest element, or End if empty.
func (m *Map[K, V, P]) Begin() Iterator[K, V, P] {
	var p P
	return m.iterAt(p.NextIndex(-1, len(m.keys)))
}

// End returns the past-the-end iterator.
func (m *Map[K, V, P]) End() Iterator[K, V, P] {
	return m.iterAt(-1)
}

// Last returns an iterator at the largest element, or End if empty.
func (m *Map[K, V, P]) Last() Iterator[K, V, P] {
	var p P
	return m.iterAt(p.PrevIndex(-1, len(m.keys)))
}

// All yields the elements in ascending order.
func (m *Map[K, V, P]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Backward yields the elements in descending order.
func (m *Map[K, V, P]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Last(); it.Valid(); it.Prev() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys yields the keys in ascending order.
func (m *Map[K, V, P]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields the values in ascending key order.
func (m *Map[K, V, P]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Range yields the elements with keys in [lo, hi).
func (m *Map[K, V, P]) Range(lo, hi K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if !m.order.Less(lo, hi) {
			return
		}
		end := m.LowerBound(hi)
		for it := m.LowerBound(lo); it.Valid() && !it.Equal(end); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}
