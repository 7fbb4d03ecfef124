package value

import "github.com/bearlytools/talon/bitset"

// Compress collapses a change bitset against the tree rooted at v: wherever
// every immediate child of a structure has its bit set, the child bits are
// cleared and the structure's own bit is set instead. After compression a set
// bit at a container's offset means "this entire subtree changed"; a set bit
// at a leaf offset means only that leaf changed. Children are processed
// before parents, and the collapse stops at the nearest ancestor with an
// unset sibling, so it never cascades past a partially changed level.
//
// The bitset must have been produced against the same tree shape, or the
// result is meaningless. Runs in one pass over the tree's fields.
func Compress(bs *bitset.BitSet, v Value) {
	s, ok := v.(*Structure)
	if !ok {
		return
	}
	for _, c := range s.children {
		Compress(bs, c)
	}
	if len(s.children) == 0 {
		return
	}
	for _, c := range s.children {
		if !bs.Get(c.Offset()) {
			return
		}
	}
	for _, c := range s.children {
		bs.Clear(c.Offset())
	}
	bs.Set(s.Offset())
}
