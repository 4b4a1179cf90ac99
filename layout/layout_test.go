package layout

import (
	"cmp"
	"fmt"
	"slices"
	"testing"

	"github.com/hupe1980/golayout/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keySwapper[K any] []K

func (s keySwapper[K]) Len() int      { return len(s) }
func (s keySwapper[K]) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// arrange lays out keys, already sorted by the order, the way P stores them.
func arrange[K any, P Policy[K]](sorted []K) []K {
	keys := slices.Clone(sorted)
	var p P
	p.Permute(keySwapper[K](keys))
	return keys
}

func testSizes(maxN int) []int {
	var sizes []int
	for n := 0; n <= 70; n++ {
		sizes = append(sizes, n)
	}
	for _, n := range []int{72, 73, 80, 81, 100, 255, 256, 1000, 4097} {
		if n <= maxN {
			sizes = append(sizes, n)
		}
	}
	return sizes
}

// checkPolicy verifies the rank/index bijection, the traversal and both
// bounds of P against the sorted reference for one key set and order.
func checkPolicy[K cmp.Ordered, P Policy[K]](t *testing.T, sorted []K, o Order[K], queries []K) {
	t.Helper()

	var p P
	n := len(sorted)
	keys := arrange[K, P](sorted)

	for r := 0; r < n; r++ {
		i := p.SortedRankToIndex(r, n)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, n)
		require.Equal(t, r, p.IndexToSortedRank(i, n), "rank %d", r)
		require.Equal(t, sorted[r], keys[i], "rank %d", r)
	}
	assert.Equal(t, -1, p.SortedRankToIndex(n, n))
	assert.Equal(t, -1, p.SortedRankToIndex(-1, n))
	assert.Equal(t, -1, p.IndexToSortedRank(n, n))

	i := p.NextIndex(-1, n)
	for r := 0; r < n; r++ {
		require.Equal(t, p.SortedRankToIndex(r, n), i, "forward rank %d", r)
		next := p.NextIndex(i, n)
		if next >= 0 {
			require.Equal(t, i, p.PrevIndex(next, n))
		}
		i = next
	}
	require.Equal(t, -1, i)

	i = p.PrevIndex(-1, n)
	for r := n - 1; r >= 0; r-- {
		require.Equal(t, p.SortedRankToIndex(r, n), i, "backward rank %d", r)
		i = p.PrevIndex(i, n)
	}
	require.Equal(t, -1, i)

	expect := func(ref int) int {
		if ref == n {
			return n
		}
		return p.SortedRankToIndex(ref, n)
	}
	for _, q := range queries {
		lb := p.LowerBound(keys, q, o)
		require.Equal(t, expect(testutil.LowerBound(sorted, q, o.Less)), lb, "lower bound %v n=%d", q, n)
		ub := p.UpperBound(keys, q, o)
		require.Equal(t, expect(testutil.UpperBound(sorted, q, o.Less)), ub, "upper bound %v n=%d", q, n)
	}
}

// runPolicy checks P over random key sets of every test size under the
// natural, reversed and an equivalent custom order.
func runPolicy[K testutil.Integer, P Policy[K]](t *testing.T, span int64, maxN int) {
	var p P
	rng := testutil.NewRNG(4711)
	orders := map[string]Order[K]{
		"asc":    Ascending[K](),
		"desc":   Descending[K](),
		"custom": OrderBy(cmp.Less[K]),
	}

	for _, n := range testSizes(maxN) {
		keys := testutil.UniqueKeys[K](rng, n, span)
		queries := testutil.Queries(rng, keys, 64, 0.5)
		if n > 0 {
			queries = append(queries, slices.Min(keys), slices.Max(keys))
		}

		for name, o := range orders {
			sorted := slices.Clone(keys)
			slices.SortFunc(sorted, func(a, b K) int {
				switch {
				case o.Less(a, b):
					return -1
				case o.Less(b, a):
					return 1
				}
				return 0
			})

			t.Run(fmt.Sprintf("%s/%s/n=%d", p.Name(), name, n), func(t *testing.T) {
				checkPolicy[K, P](t, sorted, o, queries)
			})
		}
	}
}

func TestEytzinger(t *testing.T) {
	runPolicy[int64, Eytzinger[int64]](t, 1<<40, 5000)
	runPolicy[uint8, Eytzinger[uint8]](t, 256, 256)
}

func TestSorted(t *testing.T) {
	runPolicy[int64, Sorted[int64]](t, 1<<40, 5000)
}

func TestBTree_Int64(t *testing.T) {
	runPolicy[int64, BTree[int64, B2]](t, 1<<40, 5000)
	runPolicy[int64, BTree[int64, B4]](t, 1<<40, 5000)
	runPolicy[int64, BTree[int64, B8]](t, 1<<40, 5000)
	runPolicy[int64, BTree[int64, B16]](t, 1<<40, 5000)
	runPolicy[int64, BTree[int64, B32]](t, 1<<40, 5000)
}

func TestBTree_Unsigned64(t *testing.T) {
	runPolicy[uint64, BTree[uint64, B4]](t, 1<<62, 5000)
	runPolicy[uint64, BTree[uint64, B8]](t, 1<<62, 5000)
}

func TestBTree_NarrowKeys(t *testing.T) {
	runPolicy[int32, BTree[int32, B8]](t, 1<<32, 5000)
	runPolicy[uint32, BTree[uint32, B8]](t, 1<<32, 5000)
	runPolicy[int16, BTree[int16, B8]](t, 1<<16, 5000)
	runPolicy[uint16, BTree[uint16, B8]](t, 1<<16, 5000)
	runPolicy[int8, BTree[int8, B8]](t, 256, 256)
	runPolicy[uint8, BTree[uint8, B8]](t, 256, 256)
}

func TestBTree_NoVectorSearcher(t *testing.T) {
	// int keys and int32 at B4 have no vector block searcher.
	runPolicy[int, BTree[int, B8]](t, 1<<40, 1000)
	runPolicy[int32, BTree[int32, B4]](t, 1<<32, 1000)
}

func TestEytzinger_Scenario(t *testing.T) {
	sorted := []int{1, 2, 3, 5, 8, 9}
	keys := arrange[int, Eytzinger[int]](sorted)
	assert.Equal(t, []int{5, 2, 9, 1, 3, 8}, keys)

	var e Eytzinger[int]
	assert.Equal(t, 3, e.NextIndex(-1, len(keys)))
	assert.Equal(t, 1, keys[e.NextIndex(-1, len(keys))])
}

func TestBTree_Scenario(t *testing.T) {
	sorted := make([]int64, 16)
	for i := range sorted {
		sorted[i] = int64(i)
	}
	keys := arrange[int64, BTree[int64, B4]](sorted)
	assert.Equal(t, []int64{4, 9, 14, 15, 0, 1, 2, 3, 5, 6, 7, 8, 10, 11, 12, 13}, keys)

	var bt BTree[int64, B4]
	i := bt.LowerBound(keys, 7, Ascending[int64]())
	require.Less(t, i, len(keys))
	assert.Equal(t, int64(7), keys[i])
	assert.Equal(t, "btree-4", bt.Name())
}

func TestProjectedOrder(t *testing.T) {
	type record struct {
		id   int
		name string
	}
	o := Projected(func(r record) string { return r.name }, Ascending[string]())
	assert.Equal(t, OrderCustom, o.Kind())

	sorted := []record{{3, "ant"}, {1, "bee"}, {7, "cat"}, {2, "dog"}, {9, "eel"}}
	checkRecords[Eytzinger[record], record](t, sorted, o)
	checkRecords[BTree[record, B2], record](t, sorted, o)
	checkRecords[Sorted[record], record](t, sorted, o)
}

func checkRecords[P Policy[R], R any](t *testing.T, sorted []R, o Order[R]) {
	t.Helper()

	var p P
	keys := arrange[R, P](sorted)
	for r, want := range sorted {
		i := p.LowerBound(keys, want, o)
		require.Less(t, i, len(keys))
		assert.Equal(t, want, keys[i])
		assert.Equal(t, r, p.IndexToSortedRank(i, len(keys)))
	}
}

func TestOrder(t *testing.T) {
	asc := Ascending[int]()
	desc := Descending[int]()

	assert.True(t, asc.Less(1, 2))
	assert.False(t, desc.Less(1, 2))
	assert.True(t, asc.Equivalent(3, 3))
	assert.Equal(t, "ascending", asc.Kind().String())
	assert.Equal(t, "descending", desc.Kind().String())
	assert.Equal(t, "custom", OrderBy(cmp.Less[int]).Kind().String())
	assert.True(t, asc.Valid())
	assert.False(t, Order[int]{}.Valid())
}

func TestNth(t *testing.T) {
	keys := arrange[int64, BTree[int64, B4]]([]int64{10, 20, 30, 40, 50, 60})

	for r, want := range []int64{10, 20, 30, 40, 50, 60} {
		got, err := Nth[int64, BTree[int64, B4]](keys, OrderedIndex(r))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := Nth[int64, BTree[int64, B4]](keys, 6)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NthIndex[int64, Eytzinger[int64]](keys, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRankToIndexTable(t *testing.T) {
	for _, n := range []int{0, 1, 7, 33} {
		table := RankToIndexTable[int, BTree[int, B4]](n)
		require.Len(t, table, n)
		seen := slices.Clone(table)
		slices.Sort(seen)
		for i, v := range seen {
			assert.Equal(t, i, v)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, RankToIndexTable[int, Sorted[int]](3))
}

func TestApplyPermutation_SwapsOnly(t *testing.T) {
	rng := testutil.NewRNG(1)
	for _, n := range []int{1, 2, 10, 257} {
		dest := make([]int, n)
		for i := range dest {
			dest[i] = i
		}
		testutil.Shuffle(rng, dest)

		data := make([]int, n)
		for i := range data {
			data[i] = i
		}
		counter := &countingSwapper{data: data}
		applyPermutation(counter, dest)

		for r, d := range dest {
			assert.Equal(t, r, data[d])
		}
		assert.Less(t, counter.swaps, max(n, 1))
	}
}

type countingSwapper struct {
	data  []int
	swaps int
}

func (s *countingSwapper) Len() int { return len(s.data) }
func (s *countingSwapper) Swap(i, j int) {
	s.swaps++
	s.data[i], s.data[j] = s.data[j], s.data[i]
}

func TestRestoreLowerBound(t *testing.T) {
	// 1-based descent paths: 0b110 turned right then left then fell off;
	// the bound is the node of the last left turn.
	assert.Equal(t, 0, restoreLowerBound(0b10))
	assert.Equal(t, 1, restoreLowerBound(0b100))
	assert.Equal(t, 0, restoreLowerBound(0b101))
	assert.Equal(t, 2, restoreLowerBound(0b110))
	assert.Equal(t, -1, restoreLowerBound(0b111))
	assert.Equal(t, -1, restoreLowerBound(0b1))
}

func TestSubtreeSize(t *testing.T) {
	assert.Equal(t, 16, subtreeSize(0, 16, 4))
	assert.Equal(t, 4, subtreeSize(1, 16, 4))
	assert.Equal(t, 0, subtreeSize(4, 16, 4))
	assert.Equal(t, 10, subtreeSize(0, 10, 4))
	assert.Equal(t, 2, subtreeSize(2, 10, 4))

	assert.Equal(t, 6, countNodes(0, 6))
	assert.Equal(t, 3, countNodes(1, 6))
	assert.Equal(t, 2, countNodes(2, 6))
	assert.Equal(t, 0, countNodes(6, 6))
}

func TestEytzingerLookahead(t *testing.T) {
	assert.Equal(t, uint(3), eytzingerLookahead[int64]())
	assert.Equal(t, uint(4), eytzingerLookahead[int32]())
	assert.Equal(t, uint(4), eytzingerLookahead[uint8]())
	assert.Equal(t, uint(1), eytzingerLookahead[[64]byte]())
	assert.Equal(t, uint(4), eytzingerLookahead[struct{}]())

	sorted := []int64{1, 3, 5, 7, 9, 11, 13}
	keys := arrange[int64, Eytzinger[int64]](sorted)
	var e Eytzinger[int64]
	for _, l := range []uint{0, 1, 2, 4, 6} {
		for _, q := range []int64{0, 1, 4, 13, 14} {
			want := e.LowerBound(keys, q, Ascending[int64]())
			assert.Equal(t, want, EytzingerLowerBound(keys, q, Ascending[int64](), l))
		}
	}
}
