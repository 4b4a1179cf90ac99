package amac

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestStep_Active(t *testing.T) {
	assert.False(t, Done().Active())
	assert.False(t, Prefetch().Active())
	assert.False(t, Prefetch(nil, nil).Active())

	x := 1
	s := Prefetch(nil, unsafe.Pointer(&x))
	assert.True(t, s.Active())
	assert.Equal(t, unsafe.Pointer(&x), s.Addr(1))

	var s2 Step
	s2.Set(Fanout-1, unsafe.Pointer(&x))
	assert.True(t, s2.Active())
}

func TestStep_PrefetchOverFanoutPanics(t *testing.T) {
	ptrs := make([]unsafe.Pointer, Fanout+1)
	assert.Panics(t, func() { Prefetch(ptrs...) })
}

func TestAt(t *testing.T) {
	s := []int64{1, 2, 3}
	assert.Equal(t, unsafe.Pointer(&s[2]), At(s, 2))
	assert.Nil(t, At(s, 3))
	assert.Nil(t, At(s, -1))
	assert.Nil(t, At[int64](nil, 0))
}
