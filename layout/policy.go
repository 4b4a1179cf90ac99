package layout

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrOutOfRange is returned when a rank or index does not exist.
	ErrOutOfRange = errors.New("layout: out of range")
	// ErrInvalidOrder is returned when a zero Order is used.
	ErrInvalidOrder = errors.New("layout: invalid order")
	// ErrShortOutput is returned when a batch output buffer is too small.
	ErrShortOutput = errors.New("layout: output shorter than needles")
)

// UnorderedIndex is a physical slot in the backing storage.
type UnorderedIndex int

// OrderedIndex is a 0-based sorted rank.
type OrderedIndex int

// Swapper is the random-access view a policy permutes. Swap must exchange
// the elements (and any parallel data) at i and j.
type Swapper interface {
	Len() int
	Swap(i, j int)
}

// Policy is the contract every physical layout implements. Implementations
// are stateless zero-size types.
//
// NextIndex and PrevIndex walk physical slots in sorted order; -1 stands for
// the position before the first and after the last element, so NextIndex(-1)
// is the smallest element and PrevIndex(-1) the largest.
//
// LowerBound returns the physical index of the first element not less than v
// and UpperBound the first element greater than v, or len(keys) if there is
// none. keys must already be in this policy's layout.
type Policy[K any] interface {
	Name() string
	SortedRankToIndex(rank, n int) int
	IndexToSortedRank(index, n int) int
	NextIndex(i, n int) int
	PrevIndex(i, n int) int
	Permute(data Swapper)
	LowerBound(keys []K, v K, o Order[K]) int
	UpperBound(keys []K, v K, o Order[K]) int
}

// BatchSearcher is implemented by policies with a latency-hiding batched
// lower bound. out[i] receives the lower bound of needles[i].
type BatchSearcher[K any] interface {
	LowerBoundBatch(keys, needles []K, o Order[K], width int, out []int) error
}

// NthIndex returns the physical index of the rank-th smallest element.
func NthIndex[K any, P Policy[K]](keys []K, rank OrderedIndex) (UnorderedIndex, error) {
	n := len(keys)
	if rank < 0 || int(rank) >= n {
		return 0, fmt.Errorf("%w: rank %d, size %d", ErrOutOfRange, rank, n)
	}
	var p P
	return UnorderedIndex(p.SortedRankToIndex(int(rank), n)), nil
}

// Nth returns the rank-th smallest element.
func Nth[K any, P Policy[K]](keys []K, rank OrderedIndex) (K, error) {
	i, err := NthIndex[K, P](keys, rank)
	if err != nil {
		var zero K
		return zero, err
	}
	return keys[i], nil
}

// RankToIndexTable returns t with t[rank] = SortedRankToIndex(rank, n).
func RankToIndexTable[K any, P Policy[K]](n int) []int {
	var p P
	t := make([]int, n)
	for r := range t {
		t[r] = p.SortedRankToIndex(r, n)
	}
	return t
}

// inOrderTable walks the layout with NextIndex and records the physical slot
// of every rank. It runs in amortized O(n).
func inOrderTable(n int, next func(i, n int) int) []int {
	t := make([]int, n)
	i := next(-1, n)
	for r := 0; r < n && i >= 0; r++ {
		t[r] = i
		i = next(i, n)
	}
	return t
}

// applyPermutation moves the element at position r to dest[r] for all r,
// using only swaps. Each permutation cycle is followed once; visited marks
// the positions already settled.
func applyPermutation(data Swapper, dest []int) {
	n := len(dest)
	visited := bitset.New(uint(n))
	for s := 0; s < n; s++ {
		if visited.Test(uint(s)) {
			continue
		}
		visited.Set(uint(s))
		for nxt := dest[s]; nxt != s; nxt = dest[nxt] {
			data.Swap(s, nxt)
			visited.Set(uint(nxt))
		}
	}
}
