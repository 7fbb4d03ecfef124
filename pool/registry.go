package pool

import (
	"fmt"
	"io"
	"sync"
)

// registry is the process-wide list of live pools, kept for diagnostics.
// Pools appear in registration order.
type registry struct {
	mu    sync.Mutex
	pools []impl
}

var (
	regOnce sync.Once
	reg     *registry

	defOnce sync.Once
	def     impl
)

func getRegistry() *registry {
	regOnce.Do(func() {
		reg = &registry{}
	})
	return reg
}

// defaultPool returns the shared dynamic pool, creating and registering it
// exactly once.
func defaultPool() impl {
	defOnce.Do(func() {
		def = dynamicPool{}
		register(def)
	})
	return def
}

func register(p impl) {
	r := getRegistry()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools = append(r.pools, p)
}

func unregister(p impl) {
	r := getRegistry()
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, have := range r.pools {
		if have == p {
			r.pools = append(r.pools[:i], r.pools[i+1:]...)
			return
		}
	}
}

// CollectInfo invokes cb once for each registered pool, in registration
// order. Statistics are gathered under the registry lock but cb runs outside
// it, so cb may itself touch pools.
func CollectInfo(cb func(Info)) {
	r := getRegistry()

	r.mu.Lock()
	infos := make([]Info, 0, len(r.pools))
	for _, p := range r.pools {
		infos = append(infos, p.collectInfo())
	}
	r.mu.Unlock()

	for _, info := range infos {
		cb(info)
	}
}

// Fprint writes the diagnostic dump of every registered pool to w: one block
// per pool with its name (or a placeholder), size mode, and statistics if the
// pool tracks them, bracketed by header and footer marker lines.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "# Allocator info\n")
	CollectInfo(func(info Info) {
		if info.Name == "" {
			fmt.Fprintf(w, "Name: <unnamed>\n")
		} else {
			fmt.Fprintf(w, "Name: %s\n", info.Name)
		}
		if info.FixedSize {
			fmt.Fprintf(w, " Size: %d\n", info.AllocSize)
		} else {
			fmt.Fprintf(w, " Size: dynamic\n")
		}
		if info.HasStats {
			fmt.Fprintf(w, " Alloc: %d %d\n", info.NumAllocs, info.SizeAllocs)
			fmt.Fprintf(w, " Free : %d %d\n", info.NumFree, info.SizeFree)
		}
	})
	fmt.Fprintf(w, "# End Allocator info\n")
}
