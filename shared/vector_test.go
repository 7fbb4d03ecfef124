package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreezeIsZeroCopy(t *testing.T) {
	m := NewMutable[int32](3, 8)
	d := m.Data()
	require.Len(t, d, 3)
	d[0], d[1], d[2] = 10, 20, 30

	v := m.Freeze()
	assert.Equal(t, []int32{10, 20, 30}, v.Data())
	assert.True(t, v.Unique())

	// The mutable handle is dead after Freeze.
	assert.Panics(t, func() { m.Data() })
	v.Release()
}

func TestThawUniqueNoCopy(t *testing.T) {
	m := NewMutable[int32](4, 4)
	v := m.Freeze()
	id := v.ID()

	m2 := Thaw(v)
	v2 := m2.Freeze()
	assert.Equal(t, id, v2.ID(), "thawing a unique handle must keep the same backing store")
	v2.Release()
}

func TestThawSharedCopies(t *testing.T) {
	m := NewMutable[int32](2, 2)
	m.Data()[0], m.Data()[1] = 1, 2
	a := m.Freeze()
	b := a.Retain()
	require.True(t, a.Same(b))
	require.False(t, a.Unique())

	m2 := Thaw(a) // b is still alive, so this must copy
	m2.Data()[0] = 99
	assert.Equal(t, []int32{1, 2}, b.Data(), "the surviving handle must not see the mutation")

	c := m2.Freeze()
	assert.False(t, c.Same(b))
	c.Release()
	b.Release()
}

func TestSlice(t *testing.T) {
	m := NewMutable[int64](5, 5)
	copy(m.Data(), []int64{0, 1, 2, 3, 4})
	v := m.Freeze()

	s := v.Slice(1, 3)
	assert.Equal(t, []int64{1, 2, 3}, s.Data())
	assert.True(t, s.Same(v), "a slice shares the backing store")
	assert.False(t, v.Unique())

	// Clamping.
	wide := v.Slice(3, 100)
	assert.Equal(t, []int64{3, 4}, wide.Data())
	empty := v.Slice(100, 1)
	assert.Equal(t, 0, empty.Len())

	s.Release()
	wide.Release()
	empty.Release()
	v.Release()
}

func TestResize(t *testing.T) {
	m := NewMutable[int16](2, 4)
	copy(m.Data(), []int16{7, 8})

	m.Resize(4) // within capacity, no reallocation
	assert.Equal(t, []int16{7, 8, 0, 0}, m.Data())

	m.Data()[2] = 9
	m.Resize(2)
	m.Resize(3)
	assert.Equal(t, []int16{7, 8, 0}, m.Data(), "shrink then grow must re-zero")

	m.Resize(100) // beyond capacity, reallocates and copies
	require.Equal(t, 100, m.Len())
	assert.Equal(t, []int16{7, 8, 0}, m.Data()[:3])
	m.Release()
}

func TestSwap(t *testing.T) {
	a := NewMutable[byte](1, 1)
	a.Data()[0] = 'a'
	b := NewMutable[byte](2, 2)
	b.Data()[0], b.Data()[1] = 'b', 'c'

	a.Swap(b)
	assert.Equal(t, []byte{'b', 'c'}, a.Data())
	assert.Equal(t, []byte{'a'}, b.Data())
	a.Release()
	b.Release()
}

func TestReleaseHook(t *testing.T) {
	released := 0
	m := FromRaw([]float64{1, 2}, func() { released++ })
	v := m.Freeze()
	w := v.Retain()

	v.Release()
	assert.Equal(t, 0, released, "a live handle remains")
	w.Release()
	assert.Equal(t, 1, released, "dropping the last handle runs the release action")
}

func TestEmpty(t *testing.T) {
	v := Empty[uint32]()
	assert.Equal(t, 0, v.Len())
	assert.True(t, v.Unique())
	v.Release()
}
