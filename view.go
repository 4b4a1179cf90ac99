package golayout

import (
	"iter"

	"github.com/hupe1980/golayout/layout"
)

// ReadView is the policy-independent read surface of a Map.
type ReadView[K, V any] interface {
	Len() int
	Policy() string
	Contains(k K) bool
	Get(k K) (V, bool)
	At(k K) (V, error)
	All() iter.Seq2[K, V]
	Backward() iter.Seq2[K, V]
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	Range(lo, hi K) iter.Seq2[K, V]
	Close() error
}

var (
	_ ReadView[int64, string] = (*Map[int64, string, layout.Eytzinger[int64]])(nil)
	_ ReadView[int64, string] = (*Map[int64, string, layout.BTree[int64, layout.B8]])(nil)
	_ ReadView[int64, string] = (*Map[int64, string, layout.Sorted[int64]])(nil)
)
