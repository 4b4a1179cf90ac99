package layout

import (
	"fmt"

	"github.com/hupe1980/golayout/amac"
)

// EytzingerJob is an amac job descending one Eytzinger tree level per step.
// Each step prefetches the node it will compare next.
type EytzingerJob[K any] struct {
	Seq    int
	Result int

	keys   []K
	needle K
	less   func(a, b K) bool
	k      int
}

// NewEytzingerJob creates a lower bound job for needle.
func NewEytzingerJob[K any](keys []K, needle K, o Order[K]) EytzingerJob[K] {
	return EytzingerJob[K]{keys: keys, needle: needle, less: o.less, k: 1}
}

// Init implements the amac job contract.
func (j *EytzingerJob[K]) Init() amac.Step {
	return j.next()
}

// Step implements the amac job contract.
func (j *EytzingerJob[K]) Step() amac.Step {
	if j.less(j.keys[j.k-1], j.needle) {
		j.k = 2*j.k + 1
	} else {
		j.k = 2 * j.k
	}
	return j.next()
}

func (j *EytzingerJob[K]) next() amac.Step {
	if j.k <= len(j.keys) {
		return amac.Prefetch(amac.At(j.keys, j.k-1))
	}
	j.Result = restoreLowerBound(j.k)
	if j.Result < 0 {
		j.Result = len(j.keys)
	}
	return amac.Done()
}

// LowerBoundBatch implements BatchSearcher.
func (Eytzinger[K]) LowerBoundBatch(keys, needles []K, o Order[K], width int, out []int) error {
	if !o.Valid() {
		return ErrInvalidOrder
	}
	if len(out) < len(needles) {
		return fmt.Errorf("%w: %d < %d", ErrShortOutput, len(out), len(needles))
	}
	_, err := amac.Run(width, indexes(len(needles)), func(i int) EytzingerJob[K] {
		j := NewEytzingerJob(keys, needles[i], o)
		j.Seq = i
		return j
	}, func(j *EytzingerJob[K]) {
		out[j.Seq] = j.Result
	})
	return err
}
