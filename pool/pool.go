// Package pool implements the memory pools that back talon array buffers. A
// pool is either dynamic (a thin wrapper over the Go allocator, no
// bookkeeping) or fixed-size with a free list, bounded by one of two
// policies: capped (a hard ceiling on concurrently outstanding allocations)
// or cached (no ceiling, but the retained free list is bounded). Every pool
// registers itself in a process-wide list for diagnostics.
package pool

import (
	"sync"

	"github.com/bearlytools/talon/internal/conversions"
	"github.com/bearlytools/talon/shared"
	"github.com/bearlytools/talon/talonerr"
)

// poison is written over reclaimed slabs before they enter the free list, so
// use-after-release shows up as a recognizable pattern instead of stale data.
const poison = 0x1b

// Info carries a pool's identity and statistics for diagnostics.
type Info struct {
	// Name is the pool's name, empty for unnamed pools.
	Name string
	// NumAllocs is the number of outstanding allocations.
	NumAllocs int
	// SizeAllocs is the outstanding allocations' total size in bytes.
	SizeAllocs int
	// NumFree is the number of entries in the free list.
	NumFree int
	// SizeFree is the free list's total size in bytes.
	SizeFree int
	// AllocSize is the fixed slot size in bytes, 0 for dynamic pools.
	AllocSize int
	// FixedSize reports whether the pool makes fixed size allocations.
	FixedSize bool
	// HasStats reports whether the Num/Size fields are tracked at all. The
	// plain dynamic pool does not track statistics.
	HasStats bool
}

// impl is a pool implementation. Allocator is the typed facade over it.
type impl interface {
	// alloc returns a slab of at least size bytes and the release action to
	// run when the last reference to the slab drops.
	alloc(size int, zero bool) ([]byte, func(), error)
	collectInfo() Info
	close()
}

// dynamicPool delegates to the Go allocator. It is a process-wide singleton
// with no accounting.
type dynamicPool struct{}

func (dynamicPool) alloc(size int, zero bool) ([]byte, func(), error) {
	// make() always zero-fills, so the zero request costs nothing here.
	return make([]byte, size), nil, nil
}

func (dynamicPool) collectInfo() Info {
	return Info{Name: "Default Allocator"}
}

func (dynamicPool) close() {} // the singleton is never unregistered

// freelistPool hands out fixed-size slabs and reclaims them onto a bounded
// free list.
type freelistPool struct {
	name      string
	slotBytes int
	limit     int
	capped    bool

	mu          sync.Mutex
	flist       [][]byte
	outstanding int
}

func newFreelistPool(name string, slotBytes, limit, initial int, capped bool) *freelistPool {
	if initial > limit {
		initial = limit
	}
	f := &freelistPool{
		name:      name,
		slotBytes: slotBytes,
		limit:     limit,
		capped:    capped,
		flist:     make([][]byte, 0, limit),
	}
	for i := 0; i < initial; i++ {
		f.flist = append(f.flist, make([]byte, slotBytes))
	}
	return f
}

func (f *freelistPool) alloc(size int, zero bool) ([]byte, func(), error) {
	if size > f.slotBytes {
		return nil, nil, talonerr.E(talonerr.CatAllocationFailure, "request of %d bytes exceeds pool %q slot size %d", size, f.name, f.slotBytes)
	}

	f.mu.Lock()
	if f.capped && f.outstanding == f.limit {
		f.mu.Unlock()
		return nil, nil, talonerr.E(talonerr.CatAllocationFailure, "pool %q is at its cap of %d outstanding allocations", f.name, f.limit)
	}

	var slab []byte
	if n := len(f.flist); n > 0 {
		slab = f.flist[n-1]
		f.flist = f.flist[:n-1]
		f.outstanding++
		f.mu.Unlock()
		if zero {
			clear(slab)
		}
	} else {
		f.outstanding++
		// Release the lock around the underlying allocation so a slow
		// allocation doesn't serialize unrelated pool users.
		f.mu.Unlock()
		slab = make([]byte, f.slotBytes)
	}
	return slab, func() { f.release(slab) }, nil
}

func (f *freelistPool) release(slab []byte) {
	f.mu.Lock()
	if f.outstanding <= 0 {
		f.mu.Unlock()
		panic("bug: pool release with no outstanding allocations")
	}
	f.outstanding--
	if len(f.flist) < f.limit {
		for i := range slab {
			slab[i] = poison
		}
		f.flist = append(f.flist, slab)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	// No room under the cache bound; let the garbage collector have it.
}

func (f *freelistPool) collectInfo() Info {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Info{
		Name:       f.name,
		FixedSize:  true,
		AllocSize:  f.slotBytes,
		HasStats:   true,
		NumAllocs:  f.outstanding,
		SizeAllocs: f.outstanding * f.slotBytes,
		NumFree:    len(f.flist),
		SizeFree:   len(f.flist) * f.slotBytes,
	}
}

func (f *freelistPool) close() {
	unregister(f)
}

// Allocator hands out shared buffers of E drawn from one pool. Allocators are
// cheap values; copies refer to the same pool.
type Allocator[E conversions.Element] struct {
	p        impl
	elemSize int
}

// Malloc requests a buffer of n elements with unspecified contents.
func (a Allocator[E]) Malloc(n int) (*shared.MutableVector[E], error) {
	return a.get(n, false)
}

// Calloc requests a zero-filled buffer of n elements.
func (a Allocator[E]) Calloc(n int) (*shared.MutableVector[E], error) {
	return a.get(n, true)
}

func (a Allocator[E]) get(n int, zero bool) (*shared.MutableVector[E], error) {
	slab, release, err := a.p.alloc(a.elemSize*n, zero)
	if err != nil {
		return nil, err
	}
	return shared.FromRaw(conversions.BytesToSlice[E](slab, n), release), nil
}

// Info fetches information and statistics about this allocator's pool.
func (a Allocator[E]) Info() Info {
	return a.p.collectInfo()
}

// Same reports whether two allocators draw from the same pool.
func (a Allocator[E]) Same(o Allocator[E]) bool {
	return a.p == o.p
}

// Close unregisters the pool from the diagnostic registry. Buffers already
// handed out remain valid. Close is a no-op for the shared dynamic pool.
func (a Allocator[E]) Close() {
	a.p.close()
}
