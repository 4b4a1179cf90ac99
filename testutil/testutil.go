package testutil

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"sort"
	"sync"
)

// Integer is the set of key types the generators produce.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Uint64 returns a pseudo-random 64-bit value.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Shuffle pseudo-randomizes the order of s.
func Shuffle[T any](r *RNG, s []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// Keys returns n random keys in [0, span). Duplicates are likely when n is
// close to span, which exercises de-duplication.
func Keys[T Integer](r *RNG, n int, span int64) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if span <= 0 {
		span = 1
	}
	keys := make([]T, n)
	for i := range keys {
		keys[i] = T(r.rand.Int63n(span))
	}
	return keys
}

// UniqueKeys returns n distinct random keys in [0, span), in random order.
// It panics if span < n.
func UniqueKeys[T Integer](r *RNG, n int, span int64) []T {
	if int64(n) > span {
		panic("testutil: span smaller than key count")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[int64]struct{}, n)
	keys := make([]T, 0, n)
	for len(keys) < n {
		v := r.rand.Int63n(span)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		keys = append(keys, T(v))
	}
	return keys
}

// Queries returns n query keys. A hitRate fraction is drawn from keys, the
// rest uniformly from [min(keys)-1, max(keys)+1] so misses fall both inside
// and outside the key range.
func Queries[T Integer](r *RNG, keys []T, n int, hitRate float64) []T {
	if len(keys) == 0 {
		return make([]T, n)
	}
	lo, hi := slices.Min(keys), slices.Max(keys)
	r.mu.Lock()
	defer r.mu.Unlock()
	qs := make([]T, n)
	for i := range qs {
		if r.rand.Float64() < hitRate {
			qs[i] = keys[r.rand.Intn(len(keys))]
			continue
		}
		span := int64(hi) - int64(lo) + 3
		if span <= 0 {
			span = math.MaxInt64
		}
		qs[i] = T(int64(lo) - 1 + r.rand.Int63n(span))
	}
	return qs
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// ZipfQueries draws n queries from keys with Zipfian popularity over
// their order in keys. The cumulative distribution is built once, so this
// scales to large key sets.
func ZipfQueries[T any](r *RNG, keys []T, n int, s float64) []T {
	qs := make([]T, n)
	if len(keys) == 0 {
		return qs
	}

	cdf := make([]float64, len(keys))
	var total float64
	for k := range cdf {
		total += 1.0 / math.Pow(float64(k+1), s)
		cdf[k] = total
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range qs {
		u := r.rand.Float64() * total
		k, _ := slices.BinarySearch(cdf, u)
		qs[i] = keys[min(k, len(keys)-1)]
	}
	return qs
}

// SortedUnique returns an ascending copy of keys without duplicates.
func SortedUnique[T cmp.Ordered](keys []T) []T {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}

// LowerBound is the reference lower bound over a slice sorted by less.
func LowerBound[K any](sorted []K, v K, less func(a, b K) bool) int {
	return sort.Search(len(sorted), func(i int) bool { return !less(sorted[i], v) })
}

// UpperBound is the reference upper bound over a slice sorted by less.
func UpperBound[K any](sorted []K, v K, less func(a, b K) bool) int {
	return sort.Search(len(sorted), func(i int) bool { return less(v, sorted[i]) })
}
