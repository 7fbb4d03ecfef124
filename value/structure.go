package value

import (
	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/talonerr"
	"github.com/bearlytools/talon/wire"
)

// Structure holds one owned child value per descriptor child, in descriptor
// order.
type Structure struct {
	node
	children []Value
}

// Fields returns the ordered child values. Callers must not modify the
// returned slice.
func (s *Structure) Fields() []Value { return s.children }

// Field returns the child with the given name, or nil if the name is not a
// child of this structure.
func (s *Structure) Field(name string) Value {
	d := s.desc.(*schema.Structure)
	if i := d.FieldIndex(name); i >= 0 {
		return s.children[i]
	}
	return nil
}

// Sub resolves a dotted path below this structure, or returns nil if any
// component is missing.
func (s *Structure) Sub(path string) Value { return Sub(s, path) }

// MarkImmutable implements Value, freezing the whole subtree.
func (s *Structure) MarkImmutable() {
	s.immutable = true
	for _, c := range s.children {
		c.MarkImmutable()
	}
}

// number assigns pre-order offsets: the first child sits at offset+1, each
// later child at its predecessor's nextOffset, and the structure's nextOffset
// is its last child's.
func (s *Structure) number(offset int) int {
	s.offset = offset
	next := offset + 1
	for _, c := range s.children {
		next = c.number(next)
	}
	s.nextOffset = next
	return next
}

// Serialize implements Value: the ordered concatenation of the child
// encodings.
func (s *Structure) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	for _, c := range s.children {
		if err := c.Serialize(buf, ctl); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize implements Value.
func (s *Structure) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	for _, c := range s.children {
		if err := c.Deserialize(buf, ctl); err != nil {
			return err
		}
	}
	return nil
}

func (s *Structure) clone() Value {
	c := &Structure{}
	c.init(s.desc, c)
	for _, child := range s.children {
		cc := child.clone()
		cc.setParent(c)
		c.children = append(c.children, cc)
	}
	c.cloneAux(&s.node)
	return c
}

// StructureArray holds an ordered list of optional structure elements, all
// conforming to one element descriptor. The array is a leaf in its parent's
// offset numbering; each present element is an independently numbered tree.
type StructureArray struct {
	node
	elem     *schema.Structure
	elements []*Structure
}

// ElementDescriptor returns the descriptor every element conforms to.
func (s *StructureArray) ElementDescriptor() *schema.Structure { return s.elem }

// Len returns the number of element slots, present or absent.
func (s *StructureArray) Len() int { return len(s.elements) }

// At returns the element at index i, or nil if the slot is absent.
func (s *StructureArray) At(i int) *Structure { return s.elements[i] }

// NewElement creates a detached, default-valued element conforming to the
// element descriptor, for later installation with SetAt.
func (s *StructureArray) NewElement() *Structure {
	return Create(s.elem).(*Structure)
}

// SetLength resizes the array. New slots are absent; removed slots drop their
// elements.
func (s *StructureArray) SetLength(n int) error {
	if s.immutable {
		return s.frozen()
	}
	if n <= len(s.elements) {
		for _, e := range s.elements[n:] {
			if e != nil {
				e.setParent(nil)
			}
		}
		s.elements = s.elements[:n]
	} else {
		grown := make([]*Structure, n)
		copy(grown, s.elements)
		s.elements = grown
	}
	s.changed()
	return nil
}

// SetAt installs v at slot i, replacing and discarding whatever was there. A
// nil v marks the slot absent. v must conform to the element descriptor.
func (s *StructureArray) SetAt(i int, v *Structure) error {
	if s.immutable {
		return s.frozen()
	}
	if i < 0 || i >= len(s.elements) {
		return talonerr.E(talonerr.CatInvalidArgument, "cannot set element %d of structure array %q with length %d", i, s.Name(), len(s.elements))
	}
	if v != nil {
		if v.desc != s.elem {
			return talonerr.E(talonerr.CatInvalidArgument, "cannot set element %d of structure array %q: element does not conform to the array's structure", i, s.Name())
		}
		if v.Parent() != nil {
			return talonerr.E(talonerr.CatInvalidArgument, "cannot set element %d of structure array %q: element already has a parent", i, s.Name())
		}
		v.setParent(s)
	}
	if old := s.elements[i]; old != nil {
		old.setParent(nil)
	}
	s.elements[i] = v
	s.changed()
	return nil
}

// MarkImmutable implements Value, freezing present elements too.
func (s *StructureArray) MarkImmutable() {
	s.immutable = true
	for _, e := range s.elements {
		if e != nil {
			e.MarkImmutable()
		}
	}
}

// Serialize implements Value: an element count, then one present flag per
// slot followed by the element encoding when present.
func (s *StructureArray) Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error {
	if err := wire.WriteSize(buf, ctl, len(s.elements)); err != nil {
		return err
	}
	for _, e := range s.elements {
		if err := ctl.EnsureBuffer(1); err != nil {
			return err
		}
		buf.PutBool(e != nil)
		if e == nil {
			continue
		}
		if err := e.Serialize(buf, ctl); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize implements Value. Elements are decoded into a working slice and
// installed only when the whole array has been read.
func (s *StructureArray) Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error {
	n, err := wire.ReadSize(buf, ctl)
	if err != nil {
		return err
	}
	next := make([]*Structure, n)
	for i := 0; i < n; i++ {
		if err := ctl.EnsureData(1); err != nil {
			return err
		}
		if !buf.GetBool() {
			continue
		}
		e := Create(s.elem).(*Structure)
		if err := e.Deserialize(buf, ctl); err != nil {
			return err
		}
		next[i] = e
	}
	for _, old := range s.elements {
		if old != nil {
			old.setParent(nil)
		}
	}
	for _, e := range next {
		if e != nil {
			e.setParent(s)
		}
	}
	s.elements = next
	s.changed()
	return nil
}

func (s *StructureArray) clone() Value {
	c := &StructureArray{elem: s.elem}
	c.init(s.desc, c)
	c.elements = make([]*Structure, len(s.elements))
	for i, e := range s.elements {
		if e == nil {
			continue
		}
		ce := e.clone().(*Structure)
		ce.number(0)
		ce.setParent(c)
		c.elements[i] = ce
	}
	c.cloneAux(&s.node)
	return c
}
