package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bearlytools/talon/talonerr"
)

func TestDynamicPool(t *testing.T) {
	alloc, err := Build[int32](NewBuilder())
	require.NoError(t, err)
	defer alloc.Close() // no-op for the shared dynamic pool

	m, err := alloc.Calloc(10)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Len())
	assert.Equal(t, make([]int32, 10), m.Data())
	m.Release()

	info := alloc.Info()
	assert.Equal(t, "Default Allocator", info.Name)
	assert.False(t, info.FixedSize)
	assert.False(t, info.HasStats)

	other, err := Build[int32](NewBuilder().Dynamic())
	require.NoError(t, err)
	assert.True(t, alloc.Same(other), "every dynamic build shares one pool")
}

func TestBuildErrors(t *testing.T) {
	_, err := Build[byte](NewBuilder().Fixed(0).Capped(2))
	assert.Equal(t, talonerr.CatInvalidArgument, talonerr.CategoryOf(err))

	_, err = Build[byte](NewBuilder().Fixed(-1))
	assert.Equal(t, talonerr.CatInvalidArgument, talonerr.CategoryOf(err))
}

func TestCappedPool(t *testing.T) {
	alloc, err := Build[byte](NewBuilder().Name("capped %d", 2).Fixed(16).Capped(2))
	require.NoError(t, err)
	defer alloc.Close()

	// A request over the slot size fails outright.
	_, err = alloc.Malloc(17)
	assert.Equal(t, talonerr.CatAllocationFailure, talonerr.CategoryOf(err))

	a, err := alloc.Malloc(16)
	require.NoError(t, err)
	b, err := alloc.Malloc(8)
	require.NoError(t, err)

	// The cap counts outstanding allocations, not bytes.
	_, err = alloc.Malloc(1)
	assert.Equal(t, talonerr.CatAllocationFailure, talonerr.CategoryOf(err))

	a.Release()
	b.Release()

	info := alloc.Info()
	assert.Equal(t, 0, info.NumAllocs)
	assert.Equal(t, 2, info.NumFree)
	assert.Equal(t, 32, info.SizeFree)

	// With everything back on the free list, allocation works again.
	c, err := alloc.Malloc(4)
	require.NoError(t, err)
	c.Release()
}

func TestCachedPool(t *testing.T) {
	alloc, err := Build[byte](NewBuilder().Name("cached").Fixed(16).Cached(2).Initial(1))
	require.NoError(t, err)
	defer alloc.Close()

	a, err := alloc.Malloc(16)
	require.NoError(t, err)
	b, err := alloc.Malloc(8)
	require.NoError(t, err)
	c, err := alloc.Malloc(8)
	require.NoError(t, err, "cached pools have no outstanding ceiling")

	info := alloc.Info()
	assert.Equal(t, 3, info.NumAllocs)
	assert.Equal(t, 48, info.SizeAllocs)

	a.Release()
	b.Release()
	c.Release()

	info = alloc.Info()
	assert.Equal(t, 0, info.NumAllocs)
	assert.Equal(t, 2, info.NumFree, "the excess release is not cached")
}

func TestCallocZeroFills(t *testing.T) {
	alloc, err := Build[byte](NewBuilder().Name("calloc").Fixed(8).Cached(1).Initial(1))
	require.NoError(t, err)
	defer alloc.Close()

	// Dirty the slab, recycle it, and ask for zeroed memory back.
	m, err := alloc.Malloc(8)
	require.NoError(t, err)
	for i := range m.Data() {
		m.Data()[i] = 0xAA
	}
	m.Release()

	z, err := alloc.Calloc(8)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), z.Data())
	z.Release()

	// Malloc from the free list carries the poison pattern, not stale data.
	p, err := alloc.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x1b}, 8), p.Data())
	p.Release()
}

func TestVectorPoolIntegration(t *testing.T) {
	alloc, err := Build[int64](NewBuilder().Name("vectors").Fixed(4).Cached(2))
	require.NoError(t, err)
	defer alloc.Close()

	m, err := alloc.Malloc(4)
	require.NoError(t, err)
	copy(m.Data(), []int64{1, 2, 3, 4})
	v := m.Freeze()
	w := v.Retain()
	v.Release()

	assert.Equal(t, 1, alloc.Info().NumAllocs, "a retained handle keeps the slab out")
	w.Release()
	assert.Equal(t, 0, alloc.Info().NumAllocs)
	assert.Equal(t, 1, alloc.Info().NumFree)
}

func TestRegistryDump(t *testing.T) {
	// Earlier tests close their pools, so the registry holds only the shared
	// dynamic pool. Register, in order: a capped pool with one pre-populated
	// entry, a cached pool holding one live allocation, and an unnamed pool.
	dyn, err := Build[byte](NewBuilder())
	require.NoError(t, err)
	defer dyn.Close()

	capped, err := Build[int32](NewBuilder().Name("capped pool").Fixed(16).Capped(2).Initial(1))
	require.NoError(t, err)
	defer capped.Close()

	cached, err := Build[int32](NewBuilder().Name("cached pool").Fixed(16).Cached(3).Initial(1))
	require.NoError(t, err)
	defer cached.Close()
	live, err := cached.Malloc(8)
	require.NoError(t, err)
	defer live.Release()

	anon, err := Build[int32](NewBuilder().Fixed(16).Cached(2).Initial(0))
	require.NoError(t, err)
	defer anon.Close()

	out := &bytes.Buffer{}
	Fprint(out)

	want := `# Allocator info
Name: Default Allocator
 Size: dynamic
Name: capped pool
 Size: 64
 Alloc: 0 0
 Free : 1 64
Name: cached pool
 Size: 64
 Alloc: 1 64
 Free : 0 0
Name: <unnamed>
 Size: 64
 Alloc: 0 0
 Free : 0 0
# End Allocator info
`
	assert.Equal(t, want, out.String())
}
