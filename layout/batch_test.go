package layout

import (
	"fmt"
	"slices"
	"testing"

	"github.com/hupe1980/golayout/amac"
	"github.com/hupe1980/golayout/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerBoundBatch_MatchesSingle(t *testing.T) {
	rng := testutil.NewRNG(99)

	for _, n := range []int{0, 1, 2, 7, 64, 1000, 4099} {
		sorted := testutil.SortedUnique(testutil.UniqueKeys[int64](rng, n, 1<<30))
		needles := testutil.Queries(rng, sorted, 300, 0.5)
		o := Ascending[int64]()

		eyt := arrange[int64, Eytzinger[int64]](sorted)
		var e Eytzinger[int64]
		var s Sorted[int64]

		for _, width := range []int{1, 3, 16} {
			out := make([]int, len(needles))
			require.NoError(t, e.LowerBoundBatch(eyt, needles, o, width, out))
			for i, q := range needles {
				require.Equal(t, e.LowerBound(eyt, q, o), out[i], "eytzinger n=%d width=%d needle=%d", n, width, q)
			}

			out = make([]int, len(needles))
			require.NoError(t, s.LowerBoundBatch(sorted, needles, o, width, out))
			for i, q := range needles {
				require.Equal(t, s.LowerBound(sorted, q, o), out[i], "sorted n=%d width=%d needle=%d", n, width, q)
			}
		}
	}
}

func TestKaryLowerBoundBatch_Arity(t *testing.T) {
	rng := testutil.NewRNG(7)
	sorted := testutil.SortedUnique(testutil.Keys[int32](rng, 500, 800))
	needles := testutil.Queries(rng, sorted, 200, 0.7)
	o := Ascending[int32]()

	for arity := 0; arity <= MaxArity+2; arity++ {
		out := make([]int, len(needles))
		require.NoError(t, KaryLowerBoundBatch(sorted, needles, o, arity, 8, out))
		for i, q := range needles {
			require.Equal(t, testutil.LowerBound(sorted, q, o.Less), out[i], "arity=%d needle=%d", arity, q)
		}
	}
}

func TestKaryJob_UpperBound(t *testing.T) {
	sorted := []int{1, 3, 3, 3, 5, 8, 8, 13}
	o := Ascending[int]()
	needles := []int{0, 1, 3, 4, 8, 13, 20}

	for _, arity := range []int{2, 4, MaxArity} {
		got := make([]int, len(needles))
		_, err := amac.RunSlice(4, slices.Collect(indexes(len(needles))), func(i int) KaryJob[int] {
			j := NewKaryJob(sorted, needles[i], o, arity, true)
			j.Seq = i
			return j
		}, func(j *KaryJob[int]) {
			got[j.Seq] = j.Result
		})
		require.NoError(t, err)

		for i, q := range needles {
			assert.Equal(t, testutil.UpperBound(sorted, q, o.Less), got[i], "arity=%d needle=%d", arity, q)
		}
	}
}

func TestLowerBoundBatch_Descending(t *testing.T) {
	sorted := []uint16{900, 700, 500, 300, 100}
	o := Descending[uint16]()
	keys := arrange[uint16, Eytzinger[uint16]](sorted)
	needles := []uint16{1000, 900, 800, 100, 50}

	var e Eytzinger[uint16]
	out := make([]int, len(needles))
	require.NoError(t, e.LowerBoundBatch(keys, needles, o, 2, out))
	for i, q := range needles {
		assert.Equal(t, e.LowerBound(keys, q, o), out[i])
	}
	assert.Equal(t, len(keys), out[4])
}

func TestLowerBoundBatch_Errors(t *testing.T) {
	keys := []int{1, 2, 3}
	var e Eytzinger[int]
	var s Sorted[int]

	err := e.LowerBoundBatch(keys, []int{1, 2}, Ascending[int](), 4, make([]int, 1))
	assert.ErrorIs(t, err, ErrShortOutput)
	err = s.LowerBoundBatch(keys, []int{1}, Order[int]{}, 4, make([]int, 1))
	assert.ErrorIs(t, err, ErrInvalidOrder)
	err = s.LowerBoundBatch(keys, []int{1}, Ascending[int](), 0, make([]int, 1))
	assert.ErrorIs(t, err, amac.ErrInvalidWidth)
}

func BenchmarkLowerBound(b *testing.B) {
	rng := testutil.NewRNG(42)
	sorted := testutil.SortedUnique(testutil.UniqueKeys[int64](rng, 1<<20, 1<<40))
	needles := testutil.Queries(rng, sorted, 4096, 0.5)
	o := Ascending[int64]()

	b.Run("sorted", func(b *testing.B) {
		benchPolicy[Sorted[int64]](b, sorted, needles, o)
	})
	b.Run("eytzinger", func(b *testing.B) {
		benchPolicy[Eytzinger[int64]](b, sorted, needles, o)
	})
	b.Run("btree-8", func(b *testing.B) {
		benchPolicy[BTree[int64, B8]](b, sorted, needles, o)
	})
	b.Run("btree-16", func(b *testing.B) {
		benchPolicy[BTree[int64, B16]](b, sorted, needles, o)
	})
}

func benchPolicy[P Policy[int64]](b *testing.B, sorted, needles []int64, o Order[int64]) {
	var p P
	keys := arrange[int64, P](sorted)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.LowerBound(keys, needles[i%len(needles)], o)
	}
}

func BenchmarkLowerBoundBatch(b *testing.B) {
	rng := testutil.NewRNG(42)
	sorted := testutil.SortedUnique(testutil.UniqueKeys[int64](rng, 1<<20, 1<<40))
	needles := testutil.Queries(rng, sorted, 4096, 0.5)
	o := Ascending[int64]()
	out := make([]int, len(needles))

	for _, width := range []int{1, 8, 16} {
		b.Run(fmt.Sprintf("eytzinger/width=%d", width), func(b *testing.B) {
			var e Eytzinger[int64]
			keys := arrange[int64, Eytzinger[int64]](sorted)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = e.LowerBoundBatch(keys, needles, o, width, out)
			}
		})
		b.Run(fmt.Sprintf("sorted/width=%d", width), func(b *testing.B) {
			var s Sorted[int64]
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = s.LowerBoundBatch(sorted, needles, o, width, out)
			}
		})
	}
}
