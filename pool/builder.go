package pool

import (
	"fmt"
	"unsafe"

	"github.com/bearlytools/talon/internal/conversions"
	"github.com/bearlytools/talon/talonerr"
)

// Builder configures and creates a pool. It functions as a single call with
// named arguments; use an instance only once, its state is undefined after
// Build.
//
// To fetch the shared dynamic pool:
//
//	alloc, err := pool.Build[int32](pool.NewBuilder())
//
// To create a private pool with a hard limit of five buffers of 1024 elements
// each:
//
//	alloc, err := pool.Build[int32](
//		pool.NewBuilder().Name("my pool").Fixed(1024).Capped(5),
//	)
type Builder struct {
	name       string
	fixed      bool
	allocElems int
	capped     bool
	limit      int
	initial    int
}

// NewBuilder returns a Builder for the default configuration: a dynamic pool
// with one pre-populated free entry should a fixed policy be chosen.
func NewBuilder() *Builder {
	return &Builder{initial: 1}
}

// Name gives the pool a name that appears in diagnostic dumps.
func (b *Builder) Name(format string, args ...any) *Builder {
	b.name = fmt.Sprintf(format, args...)
	return b
}

// Fixed makes the pool accept only allocations of up to n elements, scaled by
// the built element size.
func (b *Builder) Fixed(n int) *Builder {
	b.fixed = true
	b.allocElems = n
	return b
}

// Dynamic makes the pool accept allocations of any size, delegating to the
// Go allocator with no accounting.
func (b *Builder) Dynamic() *Builder {
	b.fixed = false
	return b
}

// Capped bounds the pool to n concurrently outstanding allocations; request
// n+1 fails with an AllocationFailure error.
func (b *Builder) Capped(n int) *Builder {
	b.capped = true
	b.limit = n
	return b
}

// Cached places no limit on outstanding allocations but retains at most n
// freed buffers; excess releases go back to the Go allocator immediately.
func (b *Builder) Cached(n int) *Builder {
	b.capped = false
	b.limit = n
	return b
}

// Initial pre-populates the free list with n buffers at construction.
func (b *Builder) Initial(n int) *Builder {
	b.initial = n
	return b
}

// Build creates the pool and returns a typed allocator over it. A dynamic
// configuration returns the process-wide default pool.
func Build[E conversions.Element](b *Builder) (Allocator[E], error) {
	var e E
	elemSize := int(unsafe.Sizeof(e))

	if !b.fixed {
		// Name and bounds are meaningless without a free list; the shared
		// default pool serves every dynamic build.
		return Allocator[E]{p: defaultPool(), elemSize: elemSize}, nil
	}

	if b.allocElems <= 0 {
		return Allocator[E]{}, talonerr.E(talonerr.CatInvalidArgument, "fixed() allocation size must be > 0")
	}

	f := newFreelistPool(b.name, elemSize*b.allocElems, b.limit, b.initial, b.capped)
	register(f)
	return Allocator[E]{p: f, elemSize: elemSize}, nil
}
