package layout

import (
	"strconv"

	"github.com/hupe1980/golayout/internal/prefetch"
)

// BTree stores an implicit B-ary search tree of fixed-size blocks. Block k
// occupies slots [k*B, k*B+B) and its i-th child (i in [0, B]) is block
// k*(B+1)+1+i. In-order, a block contributes child 0, key 0, child 1, ...,
// key B-1, child B. Only the last block may be partially filled; it never
// has children.
type BTree[K any, B BlockSize] struct{}

func blockWidth[B BlockSize]() int {
	var b B
	return b.Size()
}

// Name implements Policy.
func (BTree[K, B]) Name() string {
	return "btree-" + strconv.Itoa(blockWidth[B]())
}

func childBlock(k, i, b int) int {
	return k*(b+1) + 1 + i
}

func numBlocks(n, b int) int {
	return (n + b - 1) / b
}

// blockLen returns the number of valid keys in block k.
func blockLen(k, n, b int) int {
	base := k * b
	if base >= n {
		return 0
	}
	return min(b, n-base)
}

// subtreeSize returns the number of keys in the subtree rooted at block,
// summing the slot range of each level and clamping the last one to n.
func subtreeSize(block, n, b int) int {
	size := 0
	for lo, hi := block, block; lo*b < n; lo, hi = childBlock(lo, 0, b), childBlock(hi, b, b) {
		size += min((hi+1)*b, n) - lo*b
	}
	return size
}

// SortedRankToIndex implements Policy.
func (BTree[K, B]) SortedRankToIndex(rank, n int) int {
	if rank < 0 || rank >= n {
		return -1
	}
	b := blockWidth[B]()
	k := 0
descend:
	for {
		m := blockLen(k, n, b)
		for i := 0; i <= b; i++ {
			c := childBlock(k, i, b)
			left := subtreeSize(c, n, b)
			if rank < left {
				k = c
				continue descend
			}
			rank -= left
			if i < m {
				if rank == 0 {
					return k*b + i
				}
				rank--
			}
		}
		return -1
	}
}

// IndexToSortedRank implements Policy.
func (BTree[K, B]) IndexToSortedRank(index, n int) int {
	if index < 0 || index >= n {
		return -1
	}
	b := blockWidth[B]()
	k, i := index/b, index%b

	// Keys and child subtrees left of key i inside block k.
	rank := i
	for j := 0; j <= i; j++ {
		rank += subtreeSize(childBlock(k, j, b), n, b)
	}

	// Everything left of the subtree of k in each ancestor.
	for k > 0 {
		p, j := (k-1)/(b+1), (k-1)%(b+1)
		rank += j
		for c := 0; c < j; c++ {
			rank += subtreeSize(childBlock(p, c, b), n, b)
		}
		k = p
	}
	return rank
}

func leftmostSlot(k, nb, b int) int {
	for c := childBlock(k, 0, b); c < nb; c = childBlock(k, 0, b) {
		k = c
	}
	return k * b
}

func rightmostSlot(k, n, nb, b int) int {
	for {
		m := blockLen(k, n, b)
		c := childBlock(k, m, b)
		if m < b || c >= nb {
			return k*b + m - 1
		}
		k = c
	}
}

// NextIndex implements Policy.
func (BTree[K, B]) NextIndex(i, n int) int {
	if n <= 0 || i >= n {
		return -1
	}
	b := blockWidth[B]()
	nb := numBlocks(n, b)
	if i < 0 {
		return leftmostSlot(0, nb, b)
	}
	k, j := i/b, i%b
	if c := childBlock(k, j+1, b); c < nb {
		return leftmostSlot(c, nb, b)
	}
	if j+1 < blockLen(k, n, b) {
		return i + 1
	}
	for k > 0 {
		p, c := (k-1)/(b+1), (k-1)%(b+1)
		if c < b {
			return p*b + c
		}
		k = p
	}
	return -1
}

// PrevIndex implements Policy.
func (BTree[K, B]) PrevIndex(i, n int) int {
	if n <= 0 || i >= n {
		return -1
	}
	b := blockWidth[B]()
	nb := numBlocks(n, b)
	if i < 0 {
		return rightmostSlot(0, n, nb, b)
	}
	k, j := i/b, i%b
	if c := childBlock(k, j, b); c < nb {
		return rightmostSlot(c, n, nb, b)
	}
	if j > 0 {
		return i - 1
	}
	for k > 0 {
		p, c := (k-1)/(b+1), (k-1)%(b+1)
		if c > 0 {
			return p*b + c - 1
		}
		k = p
	}
	return -1
}

// Permute implements Policy. A recursive block-granular in-order fill
// assigns ranks in ascending order.
func (BTree[K, B]) Permute(data Swapper) {
	n := data.Len()
	if n < 2 {
		return
	}
	b := blockWidth[B]()
	nb := numBlocks(n, b)
	dest := make([]int, n)
	rank := 0

	var fill func(k int)
	fill = func(k int) {
		if k >= nb {
			return
		}
		m := blockLen(k, n, b)
		for i := 0; i <= b; i++ {
			fill(childBlock(k, i, b))
			if i < m {
				dest[rank] = k*b + i
				rank++
			}
		}
	}
	fill(0)

	applyPermutation(data, dest)
}

// LowerBound implements Policy.
func (BTree[K, B]) LowerBound(keys []K, v K, o Order[K]) int {
	b := blockWidth[B]()
	if i, ok := vectorSearch(keys, v, b, o.kind, false); ok {
		return i
	}
	less := o.less
	return searchBlocks(keys, b, func(x K) bool { return less(x, v) }, nil)
}

// UpperBound implements Policy.
func (BTree[K, B]) UpperBound(keys []K, v K, o Order[K]) int {
	b := blockWidth[B]()
	if i, ok := vectorSearch(keys, v, b, o.kind, true); ok {
		return i
	}
	less := o.less
	return searchBlocks(keys, b, func(x K) bool { return !less(v, x) }, nil)
}

// searchBlocks descends from the root block. before(x) reports whether x
// sorts before the bound; count, when non-nil, counts such keys in a full
// block. Partial blocks always use the linear scan. The last block where
// the bound fell inside the block holds the answer.
func searchBlocks[K any](keys []K, b int, before func(x K) bool, count func(block []K) int) int {
	n := len(keys)
	nb := numBlocks(n, b)
	res := n
	for k := 0; k < nb; {
		base := k * b
		first := childBlock(k, 0, b)
		if first < nb {
			prefetch.Elem(keys, first*b)
		}
		m := min(b, n-base)
		var i int
		if m == b && count != nil {
			i = count(keys[base : base+b])
		} else {
			i = scanBlock(keys[base:base+m], before)
		}
		if i < m {
			res = base + i
		}
		k = first + i
	}
	return res
}

// scanBlock is the scalar block searcher: the number of leading keys of a
// sorted block that sort before the bound.
func scanBlock[K any](block []K, before func(x K) bool) int {
	for i, x := range block {
		if !before(x) {
			return i
		}
	}
	return len(block)
}
