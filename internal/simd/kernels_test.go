package simd

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func countLess[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](b []T, key T) int {
	n := 0
	for _, v := range b {
		if v < key {
			n++
		}
	}
	return n
}

func countGreater[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](b []T, key T) int {
	n := 0
	for _, v := range b {
		if v > key {
			n++
		}
	}
	return n
}

func TestParseISA(t *testing.T) {
	for _, isa := range []ISA{Generic, NEON, AVX2, AVX512} {
		got, ok := ParseISA(isa.String())
		require.True(t, ok)
		require.Equal(t, isa, got)
	}

	got, ok := ParseISA(" AVX2 ")
	require.True(t, ok)
	require.Equal(t, AVX2, got)

	_, ok = ParseISA("sse9")
	require.False(t, ok)
	require.Equal(t, "unknown", ISA(200).String())
}

func TestInt64Kernels_MatchReference(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	edge := []int64{math.MinInt64, math.MinInt64 + 1, -1, 0, 1, math.MaxInt64 - 1, math.MaxInt64}

	pick := func() int64 {
		if r.Intn(4) == 0 {
			return edge[r.Intn(len(edge))]
		}
		return r.Int63n(200) - 100
	}

	for iter := 0; iter < 2000; iter++ {
		var b4 [4]int64
		var b8 [8]int64
		for i := range b4 {
			b4[i] = pick()
		}
		for i := range b8 {
			b8[i] = pick()
		}
		key := pick()

		require.Equal(t, countLess(b4[:], key), CountLessInt64x4(&b4, key))
		require.Equal(t, countGreater(b4[:], key), CountGreaterInt64x4(&b4, key))
		require.Equal(t, countLess(b8[:], key), CountLessInt64x8(&b8, key))
		require.Equal(t, countGreater(b8[:], key), CountGreaterInt64x8(&b8, key))
	}
}

func TestUint64Kernels_MatchReference(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	edge := []uint64{0, 1, 1 << 63, 1<<63 - 1, 1<<63 + 1, math.MaxUint64 - 1, math.MaxUint64}

	pick := func() uint64 {
		if r.Intn(4) == 0 {
			return edge[r.Intn(len(edge))]
		}
		return r.Uint64()
	}

	for iter := 0; iter < 2000; iter++ {
		var b4 [4]uint64
		var b8 [8]uint64
		for i := range b4 {
			b4[i] = pick()
		}
		for i := range b8 {
			b8[i] = pick()
		}
		key := pick()

		require.Equal(t, countLess(b4[:], key), CountLessUint64x4(&b4, key))
		require.Equal(t, countGreater(b4[:], key), CountGreaterUint64x4(&b4, key))
		require.Equal(t, countLess(b8[:], key), CountLessUint64x8(&b8, key))
		require.Equal(t, countGreater(b8[:], key), CountGreaterUint64x8(&b8, key))
	}
}

func TestInt32Kernels_MatchReference(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	edge := []int32{math.MinInt32, -1, 0, 1, math.MaxInt32}

	for iter := 0; iter < 2000; iter++ {
		var b [8]int32
		var u [8]uint32
		for i := range b {
			if r.Intn(4) == 0 {
				b[i] = edge[r.Intn(len(edge))]
			} else {
				b[i] = int32(r.Uint32())
			}
			u[i] = uint32(b[i])
		}
		key := int32(r.Uint32())
		if r.Intn(3) == 0 {
			key = b[r.Intn(len(b))]
		}

		require.Equal(t, countLess(b[:], key), CountLessInt32x8(&b, key))
		require.Equal(t, countGreater(b[:], key), CountGreaterInt32x8(&b, key))
		require.Equal(t, countLess(u[:], uint32(key)), CountLessUint32x8(&u, uint32(key)))
		require.Equal(t, countGreater(u[:], uint32(key)), CountGreaterUint32x8(&u, uint32(key)))
	}
}

func TestSWAR8_Exhaustive(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for iter := 0; iter < 200; iter++ {
		var u [8]uint8
		var s [8]int8
		for i := range u {
			u[i] = uint8(r.Intn(256))
			s[i] = int8(u[i])
		}
		for k := 0; k < 256; k++ {
			require.Equal(t, countLess(u[:], uint8(k)), CountLessUint8x8(&u, uint8(k)))
			require.Equal(t, countGreater(u[:], uint8(k)), CountGreaterUint8x8(&u, uint8(k)))
			require.Equal(t, countLess(s[:], int8(k)), CountLessInt8x8(&s, int8(k)))
			require.Equal(t, countGreater(s[:], int8(k)), CountGreaterInt8x8(&s, int8(k)))
		}
	}
}

func TestSWAR16_MatchReference(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	edge := []uint16{0, 1, 0x7fff, 0x8000, 0x8001, 0xfffe, 0xffff}
	for iter := 0; iter < 5000; iter++ {
		var u [8]uint16
		var s [8]int16
		for i := range u {
			if r.Intn(4) == 0 {
				u[i] = edge[r.Intn(len(edge))]
			} else {
				u[i] = uint16(r.Intn(1 << 16))
			}
			s[i] = int16(u[i])
		}
		key := uint16(r.Intn(1 << 16))
		if r.Intn(3) == 0 {
			key = u[r.Intn(len(u))]
		}

		require.Equal(t, countLess(u[:], key), CountLessUint16x8(&u, key))
		require.Equal(t, countGreater(u[:], key), CountGreaterUint16x8(&u, key))
		require.Equal(t, countLess(s[:], int16(key)), CountLessInt16x8(&s, int16(key)))
		require.Equal(t, countGreater(s[:], int16(key)), CountGreaterInt16x8(&s, int16(key)))
	}
}

func TestGenericKernels_MatchDispatched(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for iter := 0; iter < 1000; iter++ {
		var b [8]int64
		var c [8]int32
		for i := range b {
			b[i] = r.Int63() - r.Int63()
			c[i] = int32(b[i])
		}
		key := r.Int63() - r.Int63()

		require.Equal(t, less64x8Generic(&b, key, 0), kernelLess64x8(&b, key, 0))
		require.Equal(t, greater64x8Generic(&b, key, flip64), kernelGreater64x8(&b, key, flip64))
		require.Equal(t, less32x8Generic(&c, int32(key), flip32), kernelLess32x8(&c, int32(key), flip32))
		require.Equal(t, greater32x8Generic(&c, int32(key), 0), kernelGreater32x8(&c, int32(key), 0))
	}
}

func BenchmarkCountLessInt64x8(b *testing.B) {
	block := [8]int64{1, 3, 5, 7, 9, 11, 13, 15}
	b.ReportAllocs()
	n := 0
	for i := 0; i < b.N; i++ {
		n += CountLessInt64x8(&block, int64(i&15))
	}
	_ = n
}

func BenchmarkCountLessUint8x8(b *testing.B) {
	block := [8]uint8{1, 3, 5, 7, 9, 11, 13, 15}
	b.ReportAllocs()
	n := 0
	for i := 0; i < b.N; i++ {
		n += CountLessUint8x8(&block, uint8(i))
	}
	_ = n
}
