package layout

import (
	"math/bits"
	"unsafe"

	"github.com/hupe1980/golayout/internal/prefetch"
)

// cacheLine is the prefetch granularity assumed by the lookahead heuristics.
const cacheLine = 64

// Eytzinger stores an implicit binary search tree in level order: the root
// at slot 0 and the children of slot i at 2i+1 and 2i+2.
//
// Because a node's descendants L levels down occupy 2^L consecutive slots,
// search can prefetch them in closed form before it needs them.
type Eytzinger[K any] struct{}

// Name implements Policy.
func (Eytzinger[K]) Name() string { return "eytzinger" }

// countNodes returns the size of the subtree rooted at slot i.
func countNodes(i, n int) int {
	size := 0
	for lo, hi := i, i; lo < n; lo, hi = 2*lo+1, 2*hi+2 {
		size += min(hi, n-1) - lo + 1
	}
	return size
}

// SortedRankToIndex implements Policy.
func (Eytzinger[K]) SortedRankToIndex(rank, n int) int {
	if rank < 0 || rank >= n {
		return -1
	}
	i := 0
	for {
		left := countNodes(2*i+1, n)
		switch {
		case rank < left:
			i = 2*i + 1
		case rank == left:
			return i
		default:
			rank -= left + 1
			i = 2*i + 2
		}
	}
}

// IndexToSortedRank implements Policy.
func (Eytzinger[K]) IndexToSortedRank(index, n int) int {
	if index < 0 || index >= n {
		return -1
	}
	rank := countNodes(2*index+1, n)
	for i := index; i > 0; {
		p := (i - 1) / 2
		if i == 2*p+2 {
			rank += countNodes(2*p+1, n) + 1
		}
		i = p
	}
	return rank
}

// NextIndex implements Policy.
func (Eytzinger[K]) NextIndex(i, n int) int {
	if n <= 0 || i >= n {
		return -1
	}
	if i < 0 {
		i = 0
		for 2*i+1 < n {
			i = 2*i + 1
		}
		return i
	}
	if r := 2*i + 2; r < n {
		i = r
		for 2*i+1 < n {
			i = 2*i + 1
		}
		return i
	}
	for i > 0 {
		p := (i - 1) / 2
		if i == 2*p+1 {
			return p
		}
		i = p
	}
	return -1
}

// PrevIndex implements Policy.
func (Eytzinger[K]) PrevIndex(i, n int) int {
	if n <= 0 || i >= n {
		return -1
	}
	if i < 0 {
		i = 0
		for 2*i+2 < n {
			i = 2*i + 2
		}
		return i
	}
	if l := 2*i + 1; l < n {
		i = l
		for 2*i+2 < n {
			i = 2*i + 2
		}
		return i
	}
	for i > 0 {
		p := (i - 1) / 2
		if i == 2*p+2 {
			return p
		}
		i = p
	}
	return -1
}

// Permute implements Policy. An in-order walk of the slots assigns ranks in
// ascending order.
func (e Eytzinger[K]) Permute(data Swapper) {
	n := data.Len()
	if n < 2 {
		return
	}
	applyPermutation(data, inOrderTable(n, e.NextIndex))
}

// LowerBound implements Policy.
func (Eytzinger[K]) LowerBound(keys []K, v K, o Order[K]) int {
	return EytzingerLowerBound(keys, v, o, eytzingerLookahead[K]())
}

// UpperBound implements Policy.
func (Eytzinger[K]) UpperBound(keys []K, v K, o Order[K]) int {
	return EytzingerUpperBound(keys, v, o, eytzingerLookahead[K]())
}

// eytzingerLookahead picks L so the 2^L slots prefetched per step span about
// one cache line.
func eytzingerLookahead[K any]() uint {
	var k K
	size := int(unsafe.Sizeof(k))
	if size <= 0 {
		return 4
	}
	per := cacheLine / size
	if per < 2 {
		return 1
	}
	return uint(min(bits.Len(uint(per))-1, 4))
}

// EytzingerLowerBound is LowerBound with an explicit lookahead: at every
// level the node ((i+1) << lookahead) - 1 is prefetched.
func EytzingerLowerBound[K any](keys []K, v K, o Order[K], lookahead uint) int {
	n := len(keys)
	less := o.less
	k := 1
	for k <= n {
		prefetch.Elem(keys, (k<<lookahead)-1)
		if less(keys[k-1], v) {
			k = 2*k + 1
		} else {
			k = 2 * k
		}
	}
	if i := restoreLowerBound(k); i >= 0 {
		return i
	}
	return n
}

// EytzingerUpperBound is UpperBound with an explicit lookahead.
func EytzingerUpperBound[K any](keys []K, v K, o Order[K], lookahead uint) int {
	n := len(keys)
	less := o.less
	k := 1
	for k <= n {
		prefetch.Elem(keys, (k<<lookahead)-1)
		if less(v, keys[k-1]) {
			k = 2 * k
		} else {
			k = 2*k + 1
		}
	}
	if i := restoreLowerBound(k); i >= 0 {
		return i
	}
	return n
}

// restoreLowerBound maps the 1-based node index where the descent fell off
// the tree back to the last node where it turned left. Every right turn
// appended a one bit, so stripping the trailing ones and the final left turn
// recovers it. Returns -1 when the descent never turned left.
func restoreLowerBound(k int) int {
	k >>= bits.TrailingZeros(^uint(k)) + 1
	return k - 1
}
