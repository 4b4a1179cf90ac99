package main

import (
	"context"
	"slices"

	"github.com/hupe1980/golayout"
	"github.com/hupe1980/golayout/layout"
)

// target is a built map under test, erased over its policy.
type target interface {
	Policy() string
	Contains(k int64) bool
	// lookupAll runs one single lookup per needle and returns the hits.
	lookupAll(needles []int64) int
	FindBatch(needles []int64, out []layout.UnorderedIndex) (int, error)
	FindBatchParallel(ctx context.Context, needles []int64, out []layout.UnorderedIndex) (int, error)
	Close() error
}

type mapTarget[P layout.Policy[int64]] struct {
	*golayout.Map[int64, int64, P]
}

func (t mapTarget[P]) lookupAll(needles []int64) int {
	hits := 0
	for _, q := range needles {
		if t.Contains(q) {
			hits++
		}
	}
	return hits
}

func newTarget[P layout.Policy[int64]](keys []int64, opts ...golayout.Option) (target, error) {
	m, err := golayout.FromSlices[int64, int64, P](layout.Ascending[int64](), keys, keys, opts...)
	if err != nil {
		return nil, err
	}
	return mapTarget[P]{m}, nil
}

var builders = map[string]func(keys []int64, opts ...golayout.Option) (target, error){
	"sorted":    newTarget[layout.Sorted[int64]],
	"eytzinger": newTarget[layout.Eytzinger[int64]],
	"btree-4":   newTarget[layout.BTree[int64, layout.B4]],
	"btree-8":   newTarget[layout.BTree[int64, layout.B8]],
	"btree-16":  newTarget[layout.BTree[int64, layout.B16]],
	"btree-32":  newTarget[layout.BTree[int64, layout.B32]],
}

func policyNames() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
