package layout

import (
	"fmt"
	"iter"

	"github.com/hupe1980/golayout/amac"
)

// MaxArity is the largest k-ary branching factor: one prefetch per pivot.
const MaxArity = amac.Fanout + 1

// KaryJob is an amac job running one k-ary search over a sorted array.
//
// Every step splits the candidate range [lo, hi) into Arity chunks with
// Arity-1 pivots, compares the needle with the pivots (prefetched during the
// previous step) and keeps the chunk that must hold the bound. The job is
// done when the range is empty; Result is then the bound.
type KaryJob[K any] struct {
	Seq    int
	Result int

	keys   []K
	needle K
	less   func(a, b K) bool
	arity  int
	upper  bool
	lo, hi int
}

// NewKaryJob creates a lower (or upper) bound job for needle.
func NewKaryJob[K any](keys []K, needle K, o Order[K], arity int, upper bool) KaryJob[K] {
	return KaryJob[K]{
		keys:   keys,
		needle: needle,
		less:   o.less,
		arity:  max(2, min(arity, MaxArity)),
		upper:  upper,
		hi:     len(keys),
	}
}

func (j *KaryJob[K]) pivot(i int) int {
	return j.lo + (j.hi-j.lo)*i/j.arity
}

func (j *KaryJob[K]) prefetchPivots() amac.Step {
	if j.lo >= j.hi {
		j.Result = j.lo
		return amac.Done()
	}
	var s amac.Step
	for i := 1; i < j.arity; i++ {
		s.Set(i-1, amac.At(j.keys, j.pivot(i)))
	}
	return s
}

// Init implements the amac job contract.
func (j *KaryJob[K]) Init() amac.Step {
	return j.prefetchPivots()
}

// Step implements the amac job contract.
func (j *KaryJob[K]) Step() amac.Step {
	lo, hi := j.lo, j.hi
	prev := -1
	for i := 1; i < j.arity; i++ {
		p := lo + (hi-lo)*i/j.arity
		if p == prev {
			continue
		}
		prev = p
		var before bool
		if j.upper {
			before = !j.less(j.needle, j.keys[p])
		} else {
			before = j.less(j.keys[p], j.needle)
		}
		if !before {
			j.hi = p
			break
		}
		j.lo = p + 1
	}
	return j.prefetchPivots()
}

// KaryLowerBoundBatch computes out[i] = lower bound of needles[i] in the
// sorted keys, running width k-ary searches at a time.
func KaryLowerBoundBatch[K any](keys, needles []K, o Order[K], arity, width int, out []int) error {
	if !o.Valid() {
		return ErrInvalidOrder
	}
	if len(out) < len(needles) {
		return fmt.Errorf("%w: %d < %d", ErrShortOutput, len(out), len(needles))
	}
	_, err := amac.Run(width, indexes(len(needles)), func(i int) KaryJob[K] {
		j := NewKaryJob(keys, needles[i], o, arity, false)
		j.Seq = i
		return j
	}, func(j *KaryJob[K]) {
		out[j.Seq] = j.Result
	})
	return err
}

// indexes yields 0..n-1.
func indexes(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
