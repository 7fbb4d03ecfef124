package value

import (
	"fmt"

	"github.com/bearlytools/talon/field"
	"github.com/bearlytools/talon/internal/binary"
	"github.com/bearlytools/talon/internal/conversions"
	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/shared"
	"github.com/bearlytools/talon/wire"
)

// Array holds an array of fixed-width numeric elements backed by a
// copy-on-write vector. The held vector is the immutable facet; every
// mutation goes through thaw/freeze, so handles returned by View stay valid
// across later mutations of the value.
type Array[T binary.Number] struct {
	node
	vec *shared.Vector[T]
}

func newArray[T binary.Number](d *schema.ScalarArray) *Array[T] {
	a := &Array[T]{vec: shared.Empty[T]()}
	a.init(d, a)
	return a
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return a.vec.Len() }

// Data returns the elements for reading. Callers must not write to it and
// must not hold it across a mutation of this value.
func (a *Array[T]) Data() []T { return a.vec.Data() }

// View returns a retained handle on the current contents. The caller owns the
// handle and must Release it.
func (a *Array[T]) View() *shared.Vector[T] { return a.vec.Retain() }

// Replace installs v as the new contents, taking ownership of the handle, and
// fires the tree's value-changed hook.
func (a *Array[T]) Replace(v *shared.Vector[T]) error {
	if a.immutable {
		v.Release()
		return a.frozen()
	}
	a.vec.Release()
	a.vec = v
	a.changed()
	return nil
}

// Put copies data into a fresh private store and installs it.
func (a *Array[T]) Put(data []T) error {
	if a.immutable {
		return a.frozen()
	}
	m := shared.NewMutable[T](len(data), len(data))
	copy(m.Data(), data)
	a.vec.Release()
	a.vec = m.Freeze()
	a.changed()
	return nil
}

// SetLength resizes the array, zero-filling any growth. A shared backing
// store is copied first.
func (a *Array[T]) SetLength(n int) error {
	if a.immutable {
		return a.frozen()
	}
	m := shared.Thaw(a.vec)
	m.Resize(n)
	a.vec = m.Freeze()
	a.changed()
	return nil
}

// Serialize implements Value. When the buffer's byte order matches the host's
// and the control offers a direct path, the whole backing store is handed
// over in one call.
func (a *Array[T]) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	data := a.vec.Data()
	if err := wire.WriteSize(buf, ctl, len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if buf.Native() {
		if ds, ok := ctl.(wire.DirectSerializer); ok {
			done, err := ds.DirectSerialize(buf, conversions.SliceToBytes(data))
			if err != nil || done {
				return err
			}
		}
	}
	elem := binary.Size[T]()
	rest := data
	for len(rest) > 0 {
		room := buf.Remaining() / elem
		if room == 0 {
			if err := ctl.FlushSerializeBuffer(); err != nil {
				return err
			}
			continue
		}
		if room > len(rest) {
			room = len(rest)
		}
		wire.PutArray(buf, rest[:room])
		rest = rest[room:]
	}
	return nil
}

// Deserialize implements Value. The previous contents are replaced only after
// every element has been read into a working copy. Input may arrive in
// arbitrary fragments: whenever fewer bytes than one element are available,
// the bytes on hand are consumed and the control is asked for exactly the
// deficit that completes the element.
func (a *Array[T]) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	n, err := wire.ReadSize(buf, ctl)
	if err != nil {
		return err
	}
	m := shared.NewMutable[T](n, n)
	dst := m.Data()
	elem := binary.Size[T]()

	if n > 0 && buf.Native() {
		if dd, ok := ctl.(wire.DirectDeserializer); ok {
			done, err := dd.DirectDeserialize(buf, conversions.SliceToBytes(dst))
			if err != nil {
				m.Release()
				return err
			}
			if done {
				a.vec.Release()
				a.vec = m.Freeze()
				a.changed()
				return nil
			}
		}
	}

	var scratch [8]byte
	i := 0
	for i < n {
		have := buf.Remaining()
		avail := have / elem
		if avail == 0 {
			if have == 0 {
				if err := ctl.EnsureData(elem); err != nil {
					m.Release()
					return err
				}
				continue
			}
			// The element straddles a fragment boundary.
			buf.GetBytes(scratch[:have])
			if err := ctl.EnsureData(elem - have); err != nil {
				m.Release()
				return err
			}
			buf.GetBytes(scratch[have:elem])
			dst[i] = binary.Get[T](scratch[:elem], buf.Order())
			i++
			continue
		}
		if avail > n-i {
			avail = n - i
		}
		wire.GetArray(buf, dst[i:i+avail])
		i += avail
	}
	a.vec.Release()
	a.vec = m.Freeze()
	a.changed()
	return nil
}

func (a *Array[T]) clone() Value {
	c := newArray[T](a.desc.(*schema.ScalarArray))
	c.vec.Release()
	c.vec = a.vec.Retain()
	c.cloneAux(&a.node)
	return c
}

// BoolArray holds an array of booleans, encoded one byte per element.
type BoolArray struct {
	node
	vec *shared.Vector[bool]
}

func newBoolArray(d *schema.ScalarArray) *BoolArray {
	a := &BoolArray{vec: shared.Empty[bool]()}
	a.init(d, a)
	return a
}

// Len returns the number of elements.
func (a *BoolArray) Len() int { return a.vec.Len() }

// Data returns the elements for reading. Callers must not write to it.
func (a *BoolArray) Data() []bool { return a.vec.Data() }

// View returns a retained handle on the current contents.
func (a *BoolArray) View() *shared.Vector[bool] { return a.vec.Retain() }

// Replace installs v as the new contents, taking ownership of the handle.
func (a *BoolArray) Replace(v *shared.Vector[bool]) error {
	if a.immutable {
		v.Release()
		return a.frozen()
	}
	a.vec.Release()
	a.vec = v
	a.changed()
	return nil
}

// Put copies data into a fresh private store and installs it.
func (a *BoolArray) Put(data []bool) error {
	if a.immutable {
		return a.frozen()
	}
	m := shared.NewMutable[bool](len(data), len(data))
	copy(m.Data(), data)
	a.vec.Release()
	a.vec = m.Freeze()
	a.changed()
	return nil
}

// SetLength resizes the array, zero-filling any growth.
func (a *BoolArray) SetLength(n int) error {
	if a.immutable {
		return a.frozen()
	}
	m := shared.Thaw(a.vec)
	m.Resize(n)
	a.vec = m.Freeze()
	a.changed()
	return nil
}

// Serialize implements Value.
func (a *BoolArray) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	data := a.vec.Data()
	if err := wire.WriteSize(buf, ctl, len(data)); err != nil {
		return err
	}
	rest := data
	for len(rest) > 0 {
		room := buf.Remaining()
		if room == 0 {
			if err := ctl.FlushSerializeBuffer(); err != nil {
				return err
			}
			continue
		}
		if room > len(rest) {
			room = len(rest)
		}
		for _, v := range rest[:room] {
			buf.PutBool(v)
		}
		rest = rest[room:]
	}
	return nil
}

// Deserialize implements Value.
func (a *BoolArray) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	n, err := wire.ReadSize(buf, ctl)
	if err != nil {
		return err
	}
	m := shared.NewMutable[bool](n, n)
	dst := m.Data()
	i := 0
	for i < n {
		have := buf.Remaining()
		if have == 0 {
			if err := ctl.EnsureData(1); err != nil {
				m.Release()
				return err
			}
			continue
		}
		if have > n-i {
			have = n - i
		}
		for j := 0; j < have; j++ {
			dst[i+j] = buf.GetBool()
		}
		i += have
	}
	a.vec.Release()
	a.vec = m.Freeze()
	a.changed()
	return nil
}

func (a *BoolArray) clone() Value {
	c := newBoolArray(a.desc.(*schema.ScalarArray))
	c.vec.Release()
	c.vec = a.vec.Retain()
	c.cloneAux(&a.node)
	return c
}

// StringArray holds an array of strings. Elements have variable width, so the
// wire form re-applies the size-prefix scheme per element and there is no
// direct bulk path.
type StringArray struct {
	node
	vec *shared.Vector[string]
}

func newStringArray(d *schema.ScalarArray) *StringArray {
	a := &StringArray{vec: shared.Empty[string]()}
	a.init(d, a)
	return a
}

// Len returns the number of elements.
func (a *StringArray) Len() int { return a.vec.Len() }

// Data returns the elements for reading. Callers must not write to it.
func (a *StringArray) Data() []string { return a.vec.Data() }

// View returns a retained handle on the current contents.
func (a *StringArray) View() *shared.Vector[string] { return a.vec.Retain() }

// Replace installs v as the new contents, taking ownership of the handle.
func (a *StringArray) Replace(v *shared.Vector[string]) error {
	if a.immutable {
		v.Release()
		return a.frozen()
	}
	a.vec.Release()
	a.vec = v
	a.changed()
	return nil
}

// Put copies data into a fresh private store and installs it.
func (a *StringArray) Put(data []string) error {
	if a.immutable {
		return a.frozen()
	}
	m := shared.NewMutable[string](len(data), len(data))
	copy(m.Data(), data)
	a.vec.Release()
	a.vec = m.Freeze()
	a.changed()
	return nil
}

// SetLength resizes the array, filling any growth with empty strings.
func (a *StringArray) SetLength(n int) error {
	if a.immutable {
		return a.frozen()
	}
	m := shared.Thaw(a.vec)
	m.Resize(n)
	a.vec = m.Freeze()
	a.changed()
	return nil
}

// Serialize implements Value.
func (a *StringArray) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	data := a.vec.Data()
	if err := wire.WriteSize(buf, ctl, len(data)); err != nil {
		return err
	}
	for _, s := range data {
		if err := wire.WriteString(buf, ctl, s); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize implements Value.
func (a *StringArray) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	n, err := wire.ReadSize(buf, ctl)
	if err != nil {
		return err
	}
	m := shared.NewMutable[string](n, n)
	dst := m.Data()
	for i := 0; i < n; i++ {
		s, err := wire.ReadString(buf, ctl)
		if err != nil {
			m.Release()
			return err
		}
		dst[i] = s
	}
	a.vec.Release()
	a.vec = m.Freeze()
	a.changed()
	return nil
}

func (a *StringArray) clone() Value {
	c := newStringArray(a.desc.(*schema.ScalarArray))
	c.vec.Release()
	c.vec = a.vec.Retain()
	c.cloneAux(&a.node)
	return c
}

func buildArray(d *schema.ScalarArray) Value {
	switch d.ElementType() {
	case field.STBool:
		return newBoolArray(d)
	case field.STInt8:
		return newArray[int8](d)
	case field.STInt16:
		return newArray[int16](d)
	case field.STInt32:
		return newArray[int32](d)
	case field.STInt64:
		return newArray[int64](d)
	case field.STUint8:
		return newArray[uint8](d)
	case field.STUint16:
		return newArray[uint16](d)
	case field.STUint32:
		return newArray[uint32](d)
	case field.STUint64:
		return newArray[uint64](d)
	case field.STFloat32:
		return newArray[float32](d)
	case field.STFloat64:
		return newArray[float64](d)
	case field.STString:
		return newStringArray(d)
	}
	panic(fmt.Sprintf("bug: buildArray() received element type %v, which it does not know", d.ElementType()))
}
