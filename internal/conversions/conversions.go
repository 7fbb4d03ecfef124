// Package conversions is a set of unsafe conversions from one type to another,
// such as viewing a byte slab as a typed element slice without a copy.
package conversions

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Element is the set of element types a pool slab may be viewed as.
type Element interface {
	constraints.Integer | constraints.Float | ~bool
}

// BytesToSlice reinterprets b as a []E of n elements. b must be at least
// n*sizeof(E) bytes long and must stay reachable for the life of the result.
func BytesToSlice[E Element](b []byte, n int) []E {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(&b[0])), n)
}

// SliceToBytes reinterprets s as the raw bytes backing it.
func SliceToBytes[E Element](s []E) []byte {
	if len(s) == 0 {
		return nil
	}
	var e E
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(e)))
}

// ByteSlice2String converts bs to a string. It is no longer safe to modify bs
// after this, as the string shares its storage.
func ByteSlice2String(bs []byte) string {
	if len(bs) == 0 {
		return ""
	}
	return unsafe.String(&bs[0], len(bs))
}

// UnsafeGetBytes retrieves the underlying []byte held in string "s" without
// doing a copy. Do not modify the []byte or suffer the consequences.
func UnsafeGetBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
