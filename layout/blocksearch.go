package layout

import (
	"github.com/hupe1980/golayout/internal/prefetch"
	"github.com/hupe1980/golayout/internal/simd"
)

// vectorSearch runs the BTree descent with a vector block searcher when the
// key type, order and block width have one. ok is false otherwise and the
// caller falls back to the scalar searcher.
//
// Custom orders (including projections) are never eligible: the kernels
// compare raw key values.
func vectorSearch[K any](keys []K, v K, b int, kind OrderKind, upper bool) (int, bool) {
	if kind == OrderCustom {
		return 0, false
	}
	desc := kind == OrderDescending

	switch ks := any(keys).(type) {
	case []int64:
		x := any(v).(int64)
		switch b {
		case 8:
			if !desc && !upper {
				return lowerBoundInt64B8(ks, x), true
			}
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessInt64x8, simd.CountGreaterInt64x8, desc, upper)), true
		case 4:
			return searchNatural(ks, x, b, desc, upper, counter4(simd.CountLessInt64x4, simd.CountGreaterInt64x4, desc, upper)), true
		}
	case []uint64:
		x := any(v).(uint64)
		switch b {
		case 8:
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessUint64x8, simd.CountGreaterUint64x8, desc, upper)), true
		case 4:
			return searchNatural(ks, x, b, desc, upper, counter4(simd.CountLessUint64x4, simd.CountGreaterUint64x4, desc, upper)), true
		}
	case []int32:
		if b == 8 {
			x := any(v).(int32)
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessInt32x8, simd.CountGreaterInt32x8, desc, upper)), true
		}
	case []uint32:
		if b == 8 {
			x := any(v).(uint32)
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessUint32x8, simd.CountGreaterUint32x8, desc, upper)), true
		}
	case []int16:
		if b == 8 {
			x := any(v).(int16)
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessInt16x8, simd.CountGreaterInt16x8, desc, upper)), true
		}
	case []uint16:
		if b == 8 {
			x := any(v).(uint16)
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessUint16x8, simd.CountGreaterUint16x8, desc, upper)), true
		}
	case []int8:
		if b == 8 {
			x := any(v).(int8)
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessInt8x8, simd.CountGreaterInt8x8, desc, upper)), true
		}
	case []uint8:
		if b == 8 {
			x := any(v).(uint8)
			return searchNatural(ks, x, b, desc, upper, counter8(simd.CountLessUint8x8, simd.CountGreaterUint8x8, desc, upper)), true
		}
	}
	return 0, false
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// searchNatural runs searchBlocks with the natural (desc=false) or reversed
// order predicate over integer keys.
func searchNatural[T integer](keys []T, v T, b int, desc, upper bool, count func(block []T, v T) int) int {
	var before func(x T) bool
	switch {
	case !desc && !upper:
		before = func(x T) bool { return x < v }
	case !desc && upper:
		before = func(x T) bool { return x <= v }
	case desc && !upper:
		before = func(x T) bool { return x > v }
	default:
		before = func(x T) bool { return x >= v }
	}
	return searchBlocks(keys, b, before, func(block []T) int { return count(block, v) })
}

// counter8 binds a pair of 8-lane kernels to the bound being searched.
// Under the natural order the keys before a lower bound are those below v;
// under the reversed order they are those above it. Upper bounds count the
// complement of the opposite compare.
func counter8[T integer](less, greater func(*[8]T, T) int, desc, upper bool) func(block []T, v T) int {
	switch {
	case !desc && !upper:
		return func(block []T, v T) int { return less((*[8]T)(block), v) }
	case !desc && upper:
		return func(block []T, v T) int { return 8 - greater((*[8]T)(block), v) }
	case desc && !upper:
		return func(block []T, v T) int { return greater((*[8]T)(block), v) }
	default:
		return func(block []T, v T) int { return 8 - less((*[8]T)(block), v) }
	}
}

// counter4 is counter8 for 4-lane kernels.
func counter4[T integer](less, greater func(*[4]T, T) int, desc, upper bool) func(block []T, v T) int {
	switch {
	case !desc && !upper:
		return func(block []T, v T) int { return less((*[4]T)(block), v) }
	case !desc && upper:
		return func(block []T, v T) int { return 4 - greater((*[4]T)(block), v) }
	case desc && !upper:
		return func(block []T, v T) int { return greater((*[4]T)(block), v) }
	default:
		return func(block []T, v T) int { return 4 - less((*[4]T)(block), v) }
	}
}

// lowerBoundInt64B8 is the dedicated descent for the most common shape:
// int64 keys, 8-key blocks, ascending order.
func lowerBoundInt64B8(keys []int64, v int64) int {
	n := len(keys)
	nb := (n + 7) >> 3
	full := n >> 3
	res := n
	for k := 0; k < nb; {
		base := k << 3
		first := k*9 + 1
		if first < nb {
			prefetch.Elem(keys, first<<3)
		}
		var i int
		if k < full {
			i = simd.CountLessInt64x8((*[8]int64)(keys[base:base+8]), v)
			if i < 8 {
				res = base + i
			}
		} else {
			tail := keys[base:]
			for i < len(tail) && tail[i] < v {
				i++
			}
			if i < len(tail) {
				res = base + i
			}
		}
		k = first + i
	}
	return res
}
