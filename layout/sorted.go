package layout

import "sort"

// DefaultArity is the branching factor of the batched k-ary search.
const DefaultArity = 4

// Sorted is the identity layout: physical order equals sorted order.
type Sorted[K any] struct{}

// Name implements Policy.
func (Sorted[K]) Name() string { return "sorted" }

// SortedRankToIndex implements Policy.
func (Sorted[K]) SortedRankToIndex(rank, n int) int {
	if rank < 0 || rank >= n {
		return -1
	}
	return rank
}

// IndexToSortedRank implements Policy.
func (Sorted[K]) IndexToSortedRank(index, n int) int {
	if index < 0 || index >= n {
		return -1
	}
	return index
}

// NextIndex implements Policy.
func (Sorted[K]) NextIndex(i, n int) int {
	if i+1 >= n || i < -1 {
		return -1
	}
	return i + 1
}

// PrevIndex implements Policy.
func (Sorted[K]) PrevIndex(i, n int) int {
	switch {
	case n <= 0 || i >= n || i < -1:
		return -1
	case i == -1:
		return n - 1
	default:
		return i - 1
	}
}

// Permute implements Policy. The sorted order is already the layout.
func (Sorted[K]) Permute(Swapper) {}

// LowerBound implements Policy.
func (Sorted[K]) LowerBound(keys []K, v K, o Order[K]) int {
	less := o.less
	return sort.Search(len(keys), func(i int) bool { return !less(keys[i], v) })
}

// UpperBound implements Policy.
func (Sorted[K]) UpperBound(keys []K, v K, o Order[K]) int {
	less := o.less
	return sort.Search(len(keys), func(i int) bool { return less(v, keys[i]) })
}

// LowerBoundBatch implements BatchSearcher with a k-ary search of
// DefaultArity driven by the amac coordinator.
func (Sorted[K]) LowerBoundBatch(keys, needles []K, o Order[K], width int, out []int) error {
	return KaryLowerBoundBatch(keys, needles, o, DefaultArity, width, out)
}
