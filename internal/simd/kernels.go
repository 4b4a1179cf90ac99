package simd

import (
	"encoding/binary"
	"math"
	"math/bits"
	"unsafe"
)

const (
	signBit64 = uint64(1) << 63
	signBit32 = uint32(1) << 31

	flip64 = int64(math.MinInt64)
	flip32 = int32(math.MinInt32)
)

// Kernel function pointers - set once at init.
// Generic implementations are the default; platform-specific init
// functions override them with SIMD versions when available.
//
// Every kernel takes the key already XORed with flip and XORs the block
// lanes with flip before a signed compare.
var (
	kernelLess64x4    = less64x4Generic
	kernelGreater64x4 = greater64x4Generic
	kernelLess64x8    = less64x8Generic
	kernelGreater64x8 = greater64x8Generic
	kernelLess32x8    = less32x8Generic
	kernelGreater32x8 = greater32x8Generic

	// accelerated is true once a vector implementation replaced the
	// generic 32/64-bit kernels.
	accelerated bool
)

func init() {
	ensureDetected()
	initKernels()
}

// ============================================================================
// Generic kernels
// ============================================================================

func less64x4Generic(b *[4]int64, key, flip int64) int {
	n := 0
	for _, v := range b {
		if v^flip < key {
			n++
		}
	}
	return n
}

func greater64x4Generic(b *[4]int64, key, flip int64) int {
	n := 0
	for _, v := range b {
		if v^flip > key {
			n++
		}
	}
	return n
}

func less64x8Generic(b *[8]int64, key, flip int64) int {
	n := 0
	for _, v := range b {
		if v^flip < key {
			n++
		}
	}
	return n
}

func greater64x8Generic(b *[8]int64, key, flip int64) int {
	n := 0
	for _, v := range b {
		if v^flip > key {
			n++
		}
	}
	return n
}

func less32x8Generic(b *[8]int32, key, flip int32) int {
	n := 0
	for _, v := range b {
		if v^flip < key {
			n++
		}
	}
	return n
}

func greater32x8Generic(b *[8]int32, key, flip int32) int {
	n := 0
	for _, v := range b {
		if v^flip > key {
			n++
		}
	}
	return n
}

// ============================================================================
// Public API - 64-bit lanes
// ============================================================================

// CountLessInt64x4 returns the number of lanes in b below key.
func CountLessInt64x4(b *[4]int64, key int64) int {
	return kernelLess64x4(b, key, 0)
}

// CountGreaterInt64x4 returns the number of lanes in b above key.
func CountGreaterInt64x4(b *[4]int64, key int64) int {
	return kernelGreater64x4(b, key, 0)
}

// CountLessUint64x4 returns the number of lanes in b below key.
func CountLessUint64x4(b *[4]uint64, key uint64) int {
	return kernelLess64x4((*[4]int64)(unsafe.Pointer(b)), int64(key^signBit64), flip64)
}

// CountGreaterUint64x4 returns the number of lanes in b above key.
func CountGreaterUint64x4(b *[4]uint64, key uint64) int {
	return kernelGreater64x4((*[4]int64)(unsafe.Pointer(b)), int64(key^signBit64), flip64)
}

// CountLessInt64x8 returns the number of lanes in b below key.
func CountLessInt64x8(b *[8]int64, key int64) int {
	return kernelLess64x8(b, key, 0)
}

// CountGreaterInt64x8 returns the number of lanes in b above key.
func CountGreaterInt64x8(b *[8]int64, key int64) int {
	return kernelGreater64x8(b, key, 0)
}

// CountLessUint64x8 returns the number of lanes in b below key.
func CountLessUint64x8(b *[8]uint64, key uint64) int {
	return kernelLess64x8((*[8]int64)(unsafe.Pointer(b)), int64(key^signBit64), flip64)
}

// CountGreaterUint64x8 returns the number of lanes in b above key.
func CountGreaterUint64x8(b *[8]uint64, key uint64) int {
	return kernelGreater64x8((*[8]int64)(unsafe.Pointer(b)), int64(key^signBit64), flip64)
}

// ============================================================================
// Public API - 32-bit lanes
// ============================================================================

// CountLessInt32x8 returns the number of lanes in b below key.
func CountLessInt32x8(b *[8]int32, key int32) int {
	return kernelLess32x8(b, key, 0)
}

// CountGreaterInt32x8 returns the number of lanes in b above key.
func CountGreaterInt32x8(b *[8]int32, key int32) int {
	return kernelGreater32x8(b, key, 0)
}

// CountLessUint32x8 returns the number of lanes in b below key.
func CountLessUint32x8(b *[8]uint32, key uint32) int {
	return kernelLess32x8((*[8]int32)(unsafe.Pointer(b)), int32(key^signBit32), flip32)
}

// CountGreaterUint32x8 returns the number of lanes in b above key.
func CountGreaterUint32x8(b *[8]uint32, key uint32) int {
	return kernelGreater32x8((*[8]int32)(unsafe.Pointer(b)), int32(key^signBit32), flip32)
}

// ============================================================================
// SWAR - 8-bit and 16-bit lanes packed into uint64 words
// ============================================================================

const (
	lanes8High  = 0x8080808080808080
	lanes8Low   = 0x7f7f7f7f7f7f7f7f
	lanes8One   = 0x0101010101010101
	lanes16High = 0x8000800080008000
	lanes16Low  = 0x7fff7fff7fff7fff
	lanes16One  = 0x0001000100010001
)

// lessMask sets the high bit of every lane where x < y (unsigned lanes).
// Setting the minuend's high bit keeps borrows inside each lane.
func lessMask(x, y, high, low uint64) uint64 {
	t := (x | high) - (y & low)
	return ((^x & y) | (^(x ^ y) & ^t)) & high
}

func load8(b *[8]uint8) uint64 {
	return binary.LittleEndian.Uint64(b[:])
}

func load16(b *[8]uint16) (uint64, uint64) {
	lo := uint64(b[0]) | uint64(b[1])<<16 | uint64(b[2])<<32 | uint64(b[3])<<48
	hi := uint64(b[4]) | uint64(b[5])<<16 | uint64(b[6])<<32 | uint64(b[7])<<48
	return lo, hi
}

// CountLessUint8x8 returns the number of lanes in b below key.
func CountLessUint8x8(b *[8]uint8, key uint8) int {
	return bits.OnesCount64(lessMask(load8(b), uint64(key)*lanes8One, lanes8High, lanes8Low))
}

// CountGreaterUint8x8 returns the number of lanes in b above key.
func CountGreaterUint8x8(b *[8]uint8, key uint8) int {
	return bits.OnesCount64(lessMask(uint64(key)*lanes8One, load8(b), lanes8High, lanes8Low))
}

// CountLessInt8x8 returns the number of lanes in b below key.
func CountLessInt8x8(b *[8]int8, key int8) int {
	x := load8((*[8]uint8)(unsafe.Pointer(b))) ^ lanes8High
	y := (uint64(uint8(key)) * lanes8One) ^ lanes8High
	return bits.OnesCount64(lessMask(x, y, lanes8High, lanes8Low))
}

// CountGreaterInt8x8 returns the number of lanes in b above key.
func CountGreaterInt8x8(b *[8]int8, key int8) int {
	x := load8((*[8]uint8)(unsafe.Pointer(b))) ^ lanes8High
	y := (uint64(uint8(key)) * lanes8One) ^ lanes8High
	return bits.OnesCount64(lessMask(y, x, lanes8High, lanes8Low))
}

// CountLessUint16x8 returns the number of lanes in b below key.
func CountLessUint16x8(b *[8]uint16, key uint16) int {
	lo, hi := load16(b)
	y := uint64(key) * lanes16One
	return bits.OnesCount64(lessMask(lo, y, lanes16High, lanes16Low)) +
		bits.OnesCount64(lessMask(hi, y, lanes16High, lanes16Low))
}

// CountGreaterUint16x8 returns the number of lanes in b above key.
func CountGreaterUint16x8(b *[8]uint16, key uint16) int {
	lo, hi := load16(b)
	y := uint64(key) * lanes16One
	return bits.OnesCount64(lessMask(y, lo, lanes16High, lanes16Low)) +
		bits.OnesCount64(lessMask(y, hi, lanes16High, lanes16Low))
}

// CountLessInt16x8 returns the number of lanes in b below key.
func CountLessInt16x8(b *[8]int16, key int16) int {
	lo, hi := load16((*[8]uint16)(unsafe.Pointer(b)))
	lo ^= lanes16High
	hi ^= lanes16High
	y := (uint64(uint16(key)) * lanes16One) ^ lanes16High
	return bits.OnesCount64(lessMask(lo, y, lanes16High, lanes16Low)) +
		bits.OnesCount64(lessMask(hi, y, lanes16High, lanes16Low))
}

// CountGreaterInt16x8 returns the number of lanes in b above key.
func CountGreaterInt16x8(b *[8]int16, key int16) int {
	lo, hi := load16((*[8]uint16)(unsafe.Pointer(b)))
	lo ^= lanes16High
	hi ^= lanes16High
	y := (uint64(uint16(key)) * lanes16One) ^ lanes16High
	return bits.OnesCount64(lessMask(y, lo, lanes16High, lanes16Low)) +
		bits.OnesCount64(lessMask(y, hi, lanes16High, lanes16Low))
}
