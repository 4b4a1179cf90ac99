//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid max uint32", func(t *testing.T) {
		got, err := IntToUint32(math.MaxUint32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestUint32ToInt(t *testing.T) {
	got, err := Uint32ToInt(math.MaxUint32)
	assert.NoError(t, err)
	assert.Equal(t, math.MaxUint32, got)
}

func TestByteSize(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := ByteSize(1000, 8)
		assert.NoError(t, err)
		assert.Equal(t, 8000, got)
	})

	t.Run("zero element size", func(t *testing.T) {
		got, err := ByteSize(math.MaxInt, 0)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := ByteSize(math.MaxInt/4, 8)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := ByteSize(-1, 8)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}
