package value

import (
	"fmt"

	"github.com/bearlytools/talon/field"
	"github.com/bearlytools/talon/internal/binary"
	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/wire"
)

// Scalar holds one fixed-width numeric value.
type Scalar[T binary.Number] struct {
	node
	v T
}

func newScalar[T binary.Number](d *schema.Scalar) *Scalar[T] {
	s := &Scalar[T]{}
	s.init(d, s)
	return s
}

// Get returns the current value.
func (s *Scalar[T]) Get() T { return s.v }

// Put stores v and fires the tree's value-changed hook.
func (s *Scalar[T]) Put(v T) error {
	if s.immutable {
		return s.frozen()
	}
	s.v = v
	s.changed()
	return nil
}

// Serialize implements Value.
func (s *Scalar[T]) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	if err := ctl.EnsureBuffer(binary.Size[T]()); err != nil {
		return err
	}
	wire.Put(buf, s.v)
	return nil
}

// Deserialize implements Value.
func (s *Scalar[T]) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	if err := ctl.EnsureData(binary.Size[T]()); err != nil {
		return err
	}
	s.v = wire.Get[T](buf)
	s.changed()
	return nil
}

func (s *Scalar[T]) clone() Value {
	c := newScalar[T](s.desc.(*schema.Scalar))
	c.v = s.v
	c.cloneAux(&s.node)
	return c
}

// Bool holds one boolean value, encoded as a single byte on the wire.
type Bool struct {
	node
	v bool
}

func newBool(d *schema.Scalar) *Bool {
	b := &Bool{}
	b.init(d, b)
	return b
}

// Get returns the current value.
func (b *Bool) Get() bool { return b.v }

// Put stores v and fires the tree's value-changed hook.
func (b *Bool) Put(v bool) error {
	if b.immutable {
		return b.frozen()
	}
	b.v = v
	b.changed()
	return nil
}

// Serialize implements Value.
func (b *Bool) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	if err := ctl.EnsureBuffer(1); err != nil {
		return err
	}
	buf.PutBool(b.v)
	return nil
}

// Deserialize implements Value.
func (b *Bool) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	if err := ctl.EnsureData(1); err != nil {
		return err
	}
	b.v = buf.GetBool()
	b.changed()
	return nil
}

func (b *Bool) clone() Value {
	c := newBool(b.desc.(*schema.Scalar))
	c.v = b.v
	c.cloneAux(&b.node)
	return c
}

// String holds one UTF-8 string, encoded as a size prefix plus raw bytes.
type String struct {
	node
	v string
}

func newString(d *schema.Scalar) *String {
	s := &String{}
	s.init(d, s)
	return s
}

// Get returns the current value.
func (s *String) Get() string { return s.v }

// Put stores v and fires the tree's value-changed hook.
func (s *String) Put(v string) error {
	if s.immutable {
		return s.frozen()
	}
	s.v = v
	s.changed()
	return nil
}

// Serialize implements Value.
func (s *String) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	return wire.WriteString(buf, ctl, s.v)
}

// SerializeSubstring encodes only [offset, offset+count) of the value,
// clamped to its length, without materializing the substring.
func (s *String) SerializeSubstring(buf *wire.ByteBuffer, ctl wire.SerializeControl, offset, count int) error {
	return wire.WriteSubstring(buf, ctl, s.v, offset, count)
}

// Deserialize implements Value.
func (s *String) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	v, err := wire.ReadString(buf, ctl)
	if err != nil {
		return err
	}
	s.v = v
	s.changed()
	return nil
}

func (s *String) clone() Value {
	c := newString(s.desc.(*schema.Scalar))
	c.v = s.v
	c.cloneAux(&s.node)
	return c
}

func buildScalar(d *schema.Scalar) Value {
	switch d.ScalarType() {
	case field.STBool:
		return newBool(d)
	case field.STInt8:
		return newScalar[int8](d)
	case field.STInt16:
		return newScalar[int16](d)
	case field.STInt32:
		return newScalar[int32](d)
	case field.STInt64:
		return newScalar[int64](d)
	case field.STUint8:
		return newScalar[uint8](d)
	case field.STUint16:
		return newScalar[uint16](d)
	case field.STUint32:
		return newScalar[uint32](d)
	case field.STUint64:
		return newScalar[uint64](d)
	case field.STFloat32:
		return newScalar[float32](d)
	case field.STFloat64:
		return newScalar[float64](d)
	case field.STString:
		return newString(d)
	}
	panic(fmt.Sprintf("bug: buildScalar() received scalar type %v, which it does not know", d.ScalarType()))
}
