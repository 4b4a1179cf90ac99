package alloc

import (
	"testing"

	"github.com/hupe1980/golayout/internal/mem"
	"github.com/hupe1980/golayout/internal/mmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap(t *testing.T) {
	var h Heap[string]

	s, err := h.Allocate(3)
	require.NoError(t, err)
	assert.Len(t, s, 3)
	assert.NoError(t, h.Release(s))

	_, err = h.Allocate(-1)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestAligned(t *testing.T) {
	var a Aligned[int64]

	for _, n := range []int{1, 5, 8, 100} {
		s, err := a.Allocate(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
		assert.True(t, mem.IsAligned(s))
		assert.NoError(t, a.Release(s))
	}

	s, err := a.Allocate(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestHugePage(t *testing.T) {
	h := NewHugePage[uint32](0)

	s, err := h.Allocate(1000)
	require.NoError(t, err)
	require.Len(t, s, 1000)
	assert.True(t, mem.IsAligned(s))
	assert.Equal(t, int64(mmap.HugePageSize), h.InUse())
	assert.Equal(t, 1, h.Live())

	for i := range s {
		s[i] = uint32(i)
	}
	assert.Equal(t, uint32(999), s[999])

	require.NoError(t, h.Release(s))
	assert.Equal(t, int64(0), h.InUse())
	assert.Equal(t, 0, h.Live())

	// A second release is rejected instead of unmapping twice.
	assert.ErrorIs(t, h.Release(s), ErrUnknownSlice)
}

func TestHugePage_Limit(t *testing.T) {
	h := NewHugePage[int64](mmap.HugePageSize)

	s, err := h.Allocate(10)
	require.NoError(t, err)

	_, err = h.Allocate(10)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	require.NoError(t, h.Release(s))
	s, err = h.Allocate(10)
	require.NoError(t, err)
	require.NotNil(t, s)

	require.NoError(t, h.Close())
	assert.Equal(t, int64(0), h.InUse())
	assert.Equal(t, 0, h.Live())
}

func TestHugePage_EmptyAndInvalid(t *testing.T) {
	h := NewHugePage[uint8](0)

	s, err := h.Allocate(0)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, h.Release(s))

	_, err = h.Allocate(-3)
	assert.ErrorIs(t, err, ErrInvalidLength)
}
