// Package wire holds the boundary contracts of the talon binary codec: the
// positional byte buffer values serialize into, the flow-control interfaces an
// I/O layer implements to feed or drain that buffer, and the helpers for the
// variable-length size prefix that precedes every string and array payload.
package wire

import (
	stdbinary "encoding/binary"
	"fmt"

	"github.com/bearlytools/talon/internal/binary"
)

// ByteBuffer is a positional window over a byte slice with a declared byte
// order. Serialization puts values at the current position; deserialization
// gets them from it. Position never passes Limit.
type ByteBuffer struct {
	data  []byte
	pos   int
	limit int
	order stdbinary.ByteOrder
}

// NewByteBuffer returns an empty buffer of capacity n for serialization.
func NewByteBuffer(n int, order stdbinary.ByteOrder) *ByteBuffer {
	return &ByteBuffer{data: make([]byte, n), limit: n, order: order}
}

// Wrap returns a buffer positioned at the start of data for deserialization.
func Wrap(data []byte, order stdbinary.ByteOrder) *ByteBuffer {
	return &ByteBuffer{data: data, limit: len(data), order: order}
}

// Order returns the buffer's declared byte order.
func (b *ByteBuffer) Order() stdbinary.ByteOrder {
	return b.order
}

// hostLittle reports the host byte order, probed once through NativeEndian.
var hostLittle = stdbinary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x0001

// Native reports whether the buffer's byte order matches the host byte order,
// meaning values can be block-copied without conversion.
func (b *ByteBuffer) Native() bool {
	little := b.order.Uint16([]byte{0x01, 0x00}) == 0x0001
	return little == hostLittle
}

// Remaining returns the number of bytes between the position and the limit:
// space for serialization, unread data for deserialization.
func (b *ByteBuffer) Remaining() int {
	return b.limit - b.pos
}

// Position returns the current position.
func (b *ByteBuffer) Position() int {
	return b.pos
}

// SetPosition moves the position. It panics if p is outside [0, Limit].
func (b *ByteBuffer) SetPosition(p int) {
	if p < 0 || p > b.limit {
		panic(fmt.Sprintf("bug: position %d outside buffer limit %d", p, b.limit))
	}
	b.pos = p
}

// Limit returns the current limit.
func (b *ByteBuffer) Limit() int {
	return b.limit
}

// SetLimit moves the limit. It panics if l exceeds the buffer's capacity.
func (b *ByteBuffer) SetLimit(l int) {
	if l < 0 || l > len(b.data) {
		panic(fmt.Sprintf("bug: limit %d outside buffer capacity %d", l, len(b.data)))
	}
	b.limit = l
	if b.pos > l {
		b.pos = l
	}
}

// Reset rewinds the position to 0 and restores the limit to the full capacity.
func (b *ByteBuffer) Reset() {
	b.pos = 0
	b.limit = len(b.data)
}

// Bytes returns the written region, data[0:Position].
func (b *ByteBuffer) Bytes() []byte {
	return b.data[:b.pos]
}

// PutBytes copies raw bytes at the position. The caller must have checked
// Remaining.
func (b *ByteBuffer) PutBytes(p []byte) {
	n := copy(b.data[b.pos:b.limit], p)
	if n != len(p) {
		panic(fmt.Sprintf("bug: PutBytes of %d bytes into buffer with %d remaining", len(p), b.limit-b.pos))
	}
	b.pos += n
}

// GetBytes copies raw bytes from the position into p. The caller must have
// checked Remaining.
func (b *ByteBuffer) GetBytes(p []byte) {
	n := copy(p, b.data[b.pos:b.limit])
	if n != len(p) {
		panic(fmt.Sprintf("bug: GetBytes of %d bytes from buffer with %d remaining", len(p), b.limit-b.pos))
	}
	b.pos += n
}

// Put writes one fixed-width value at the buffer's position, respecting its
// byte order. The caller must have checked Remaining.
func Put[T binary.Number](b *ByteBuffer, v T) {
	w := binary.Size[T]()
	binary.Put(b.data[b.pos:b.pos+w], v, b.order)
	b.pos += w
}

// Get reads one fixed-width value from the buffer's position, respecting its
// byte order. The caller must have checked Remaining.
func Get[T binary.Number](b *ByteBuffer) T {
	w := binary.Size[T]()
	v := binary.Get[T](b.data[b.pos:b.pos+w], b.order)
	b.pos += w
	return v
}

// PutBool writes a boolean as a single byte.
func (b *ByteBuffer) PutBool(v bool) {
	if v {
		b.data[b.pos] = 1
	} else {
		b.data[b.pos] = 0
	}
	b.pos++
}

// GetBool reads a boolean encoded as a single byte. Any non-zero byte is true.
func (b *ByteBuffer) GetBool() bool {
	v := b.data[b.pos]
	b.pos++
	return v != 0
}

// PutArray writes len(vs) fixed-width values element by element, respecting
// the byte order. The caller must have checked Remaining for the whole run.
func PutArray[T binary.Number](b *ByteBuffer, vs []T) {
	for _, v := range vs {
		Put(b, v)
	}
}

// GetArray fills vs with len(vs) fixed-width values element by element,
// respecting the byte order. The caller must have checked Remaining.
func GetArray[T binary.Number](b *ByteBuffer, vs []T) {
	for i := range vs {
		vs[i] = Get[T](b)
	}
}
