// Package shared implements the copy-on-write array buffer that backs every
// talon array value. A buffer has two facets: MutableVector, assumed
// exclusively owned while it exists, and Vector, an immutable view that may be
// shared freely. Freeze converts mutable to immutable without a copy; Thaw
// converts back, copying only when the view is not uniquely held. Reference
// counts are atomic, so the uniqueness check that drives copy-on-write is
// sound against concurrent handle release.
package shared

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// header is the shared bookkeeping for one backing store. All handles cut
// from the same store point at the same header.
type header[E any] struct {
	data    []E
	refs    atomic.Int64
	release func() // returns the store to its pool, may be nil
}

func (h *header[E]) retain() {
	h.refs.Add(1)
}

func (h *header[E]) drop() {
	if n := h.refs.Add(-1); n == 0 {
		if h.release != nil {
			h.release()
		}
	} else if n < 0 {
		panic("bug: shared vector reference count went negative")
	}
}

// MutableVector is the writable facet. Exactly one goroutine may hold and use
// it at a time.
type MutableVector[E any] struct {
	h   *header[E]
	off int
	n   int
}

// NewMutable returns a mutable vector of n elements with the given capacity.
func NewMutable[E any](n, capacity int) *MutableVector[E] {
	if capacity < n {
		capacity = n
	}
	h := &header[E]{data: make([]E, capacity)}
	h.refs.Store(1)
	return &MutableVector[E]{h: h, n: n}
}

// FromRaw returns a mutable vector owning data. release, if not nil, is
// invoked when the last handle cut from this store is dropped; pools use it
// to reclaim the slab.
func FromRaw[E any](data []E, release func()) *MutableVector[E] {
	h := &header[E]{data: data, release: release}
	h.refs.Store(1)
	return &MutableVector[E]{h: h, n: len(data)}
}

func (m *MutableVector[E]) live() *header[E] {
	if m.h == nil {
		panic("bug: use of a mutable vector after Freeze or Release")
	}
	return m.h
}

// Len returns the number of visible elements.
func (m *MutableVector[E]) Len() int {
	m.live()
	return m.n
}

// Cap returns the capacity of the backing store visible to this handle.
func (m *MutableVector[E]) Cap() int {
	return len(m.live().data) - m.off
}

// Data returns the visible elements for reading and writing.
func (m *MutableVector[E]) Data() []E {
	return m.live().data[m.off : m.off+m.n]
}

// Resize sets the visible length to n, reallocating if the capacity is too
// small. Newly visible elements are zero.
func (m *MutableVector[E]) Resize(n int) {
	h := m.live()
	if n <= m.Cap() {
		if n > m.n {
			clear(h.data[m.off+m.n : m.off+n])
		}
		m.n = n
		return
	}
	next := &header[E]{data: make([]E, n)}
	next.refs.Store(1)
	copy(next.data, h.data[m.off:m.off+m.n])
	h.drop()
	m.h = next
	m.off = 0
	m.n = n
}

// Swap exchanges the contents of two mutable vectors.
func (m *MutableVector[E]) Swap(o *MutableVector[E]) {
	m.live()
	o.live()
	m.h, o.h = o.h, m.h
	m.off, o.off = o.off, m.off
	m.n, o.n = o.n, m.n
}

// Release drops the handle without freezing. The backing store is reclaimed
// if no other handle remains.
func (m *MutableVector[E]) Release() {
	m.live().drop()
	m.h = nil
}

// Freeze converts the mutable facet into an immutable one without copying.
// The mutable handle must not be used afterward.
func (m *MutableVector[E]) Freeze() *Vector[E] {
	h := m.live()
	v := &Vector[E]{h: h, off: m.off, n: m.n}
	m.h = nil // the single reference moves to the frozen handle
	return v
}

// Vector is the immutable facet. Any number of holders may read it
// concurrently.
type Vector[E any] struct {
	h   *header[E]
	off int
	n   int
}

// Empty returns an immutable vector of no elements.
func Empty[E any]() *Vector[E] {
	h := &header[E]{}
	h.refs.Store(1)
	return &Vector[E]{h: h}
}

func (v *Vector[E]) live() *header[E] {
	if v.h == nil {
		panic("bug: use of a vector after Release or Thaw")
	}
	return v.h
}

// Len returns the number of visible elements.
func (v *Vector[E]) Len() int {
	v.live()
	return v.n
}

// Data returns the visible elements. Callers must not write to it.
func (v *Vector[E]) Data() []E {
	return v.live().data[v.off : v.off+v.n]
}

// Retain returns a new handle on the same backing store.
func (v *Vector[E]) Retain() *Vector[E] {
	h := v.live()
	h.retain()
	return &Vector[E]{h: h, off: v.off, n: v.n}
}

// Slice returns a new handle narrowed to [off, off+count), clamped to the
// visible range, without copying.
func (v *Vector[E]) Slice(off, count int) *Vector[E] {
	h := v.live()
	if off < 0 {
		off = 0
	}
	if off > v.n {
		off = v.n
	}
	if max := v.n - off; count > max {
		count = max
	}
	if count < 0 {
		count = 0
	}
	h.retain()
	return &Vector[E]{h: h, off: v.off + off, n: count}
}

// Release drops the handle. The backing store is reclaimed if no other handle
// remains.
func (v *Vector[E]) Release() {
	v.live().drop()
	v.h = nil
}

// Unique reports whether no other handle shares this backing store.
func (v *Vector[E]) Unique() bool {
	return v.live().refs.Load() == 1
}

// Same reports whether v and o are handles on the same backing store.
func (v *Vector[E]) Same(o *Vector[E]) bool {
	return v.live() == o.live()
}

// ID returns an identity token for pool bookkeeping. Handles on the same
// backing store return the same ID; ordering by ID is stable for the life of
// the store.
func (v *Vector[E]) ID() uintptr {
	return uintptr(unsafe.Pointer(v.live()))
}

// String implements fmt.Stringer for diagnostics.
func (v *Vector[E]) String() string {
	return fmt.Sprintf("shared.Vector[%d elements, refs=%d]", v.n, v.live().refs.Load())
}

// Thaw converts an immutable view back to a mutable one, consuming v. If v is
// the only handle on its store, no copy is made; otherwise the visible range
// is copied into a fresh private store. This is the copy-on-write contract.
func Thaw[E any](v *Vector[E]) *MutableVector[E] {
	h := v.live()
	if h.refs.Load() == 1 {
		m := &MutableVector[E]{h: h, off: v.off, n: v.n}
		v.h = nil
		return m
	}
	next := &header[E]{data: make([]E, v.n)}
	next.refs.Store(1)
	copy(next.data, h.data[v.off:v.off+v.n])
	v.Release()
	return &MutableVector[E]{h: next, n: v.n}
}
