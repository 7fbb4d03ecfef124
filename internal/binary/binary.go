// Package binary replaces the encoding/binary package in the standard library for
// fixed-width encoding using generics. Unlike the stdlib it is parameterized by
// byte order at the call site, because a talon wire buffer carries a declared
// byte order that may differ from the host.
package binary

import (
	stdbinary "encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the set of fixed-width numeric types the wire codec moves.
type Number interface {
	constraints.Integer | constraints.Float
}

// Size returns the encoded width of T in bytes.
func Size[T Number]() int {
	var v T
	switch any(v).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", v))
}

// Get reads a fixed-width value from b using the given byte order.
func Get[T Number](b []byte, order stdbinary.ByteOrder) T {
	_ = b[Size[T]()-1] // bounds check hint to compiler; see golang.org/issue/14808

	var r T // This is only used for type detection.
	switch any(r).(type) {
	case int8:
		return T(int8(b[0]))
	case uint8:
		return T(b[0])
	case int16:
		return T(int16(order.Uint16(b)))
	case uint16:
		return T(order.Uint16(b))
	case int32:
		return T(int32(order.Uint32(b)))
	case uint32:
		return T(order.Uint32(b))
	case int64:
		return T(int64(order.Uint64(b)))
	case uint64:
		return T(order.Uint64(b))
	case float32:
		return T(math.Float32frombits(order.Uint32(b)))
	case float64:
		return T(math.Float64frombits(order.Uint64(b)))
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Put writes a fixed-width value into b using the given byte order.
func Put[T Number](b []byte, v T, order stdbinary.ByteOrder) {
	switch t := any(v).(type) {
	case int8:
		b[0] = byte(t)
	case uint8:
		b[0] = t
	case int16:
		order.PutUint16(b, uint16(t))
	case uint16:
		order.PutUint16(b, t)
	case int32:
		order.PutUint32(b, uint32(t))
	case uint32:
		order.PutUint32(b, t)
	case int64:
		order.PutUint64(b, uint64(t))
	case uint64:
		order.PutUint64(b, t)
	case float32:
		order.PutUint32(b, math.Float32bits(t))
	case float64:
		order.PutUint64(b, math.Float64bits(t))
	default:
		panic(fmt.Sprintf("unsupported type that passed the type constraint %T", v))
	}
}
