package golayout

import (
	"github.com/hupe1980/golayout/layout"
)

// LowerBound returns an iterator at the first element not less than k, or
// End.
func (m *Map[K, V, P]) LowerBound(k K) Iterator[K, V, P] {
	var p P
	return m.iterAt(p.LowerBound(m.keys, k, m.order))
}

// UpperBound returns an iterator at the first element greater than k, or
// End.
func (m *Map[K, V, P]) UpperBound(k K) Iterator[K, V, P] {
	var p P
	return m.iterAt(p.UpperBound(m.keys, k, m.order))
}

// Find returns an iterator at the element equivalent to k, or End.
func (m *Map[K, V, P]) Find(k K) Iterator[K, V, P] {
	return m.iterAt(m.find(k))
}

// EqualRange returns the half-open range of elements equivalent to k. Both
// iterators are equal when k is absent.
func (m *Map[K, V, P]) EqualRange(k K) (Iterator[K, V, P], Iterator[K, V, P]) {
	return m.LowerBound(k), m.UpperBound(k)
}

// Contains reports whether an element equivalent to k exists.
func (m *Map[K, V, P]) Contains(k K) bool {
	return m.find(k) >= 0
}

// Count returns the number of elements equivalent to k (0 or 1).
func (m *Map[K, V, P]) Count(k K) int {
	if m.Contains(k) {
		return 1
	}
	return 0
}

// At returns the value for k or a *KeyNotFoundError.
func (m *Map[K, V, P]) At(k K) (V, error) {
	i := m.find(k)
	if i < 0 {
		var zero V
		return zero, &KeyNotFoundError[K]{Key: k}
	}
	return m.values[i], nil
}

// Get returns the value for k and whether it was found.
func (m *Map[K, V, P]) Get(k K) (V, bool) {
	i := m.find(k)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// Nth returns an iterator at the element of sorted rank r or a *RankError.
func (m *Map[K, V, P]) Nth(r layout.OrderedIndex) (Iterator[K, V, P], error) {
	n := len(m.keys)
	if r < 0 || int(r) >= n {
		return m.End(), &RankError{Rank: int(r), Size: n}
	}
	var p P
	return m.iterAt(p.SortedRankToIndex(int(r), n)), nil
}

// find returns the physical index of k, or -1.
func (m *Map[K, V, P]) find(k K) int {
	var p P
	i := p.LowerBound(m.keys, k, m.order)
	if i < len(m.keys) && !m.order.Less(k, m.keys[i]) {
		return i
	}
	return -1
}

// iterAt returns an iterator at physical index i; i >= Len is End.
func (m *Map[K, V, P]) iterAt(i int) Iterator[K, V, P] {
	if i < 0 || i >= len(m.keys) {
		i = -1
	}
	return Iterator[K, V, P]{keys: m.keys, values: m.values, i: i}
}
