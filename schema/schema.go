// Package schema implements talon's runtime type descriptors. A descriptor
// describes a value's shape: a scalar, an array of scalars, a structure of
// named child descriptors, or an array of structures. Descriptors are built
// once, then shared by reference; they are immutable after they escape their
// builder, and the factory functions are the only way to make them. A
// Structure may be referenced by any number of parents, so descriptors form a
// DAG; making a structure its own transitive descendant is a builder bug that
// is not defended against.
package schema

import (
	"strings"

	"github.com/bearlytools/talon/field"
	"github.com/bearlytools/talon/talonerr"
)

// Field is a type descriptor. The four implementations are Scalar,
// ScalarArray, Structure and StructureArray.
type Field interface {
	// Name returns the field name.
	Name() string
	// Kind returns which of the four descriptor kinds this is.
	Kind() field.Kind
	// FieldCount returns the total number of descriptors in this subtree,
	// including this one. Arrays of structures count as one: their elements
	// are independently numbered trees.
	FieldCount() int
	// String renders the descriptor tree for diagnostics.
	String() string

	write(sb *strings.Builder, indent int)
}

// Scalar describes a single elementary value.
type Scalar struct {
	name string
	typ  field.ScalarType
}

// NewScalar creates a Scalar descriptor. It returns an InvalidArgument error
// if st is not a recognized scalar type.
func NewScalar(name string, st field.ScalarType) (*Scalar, error) {
	if !field.IsValid(st) {
		return nil, talonerr.E(talonerr.CatInvalidArgument, "cannot create scalar field %q: %v is not a scalar type", name, st)
	}
	return &Scalar{name: name, typ: st}, nil
}

// Name returns the field name.
func (s *Scalar) Name() string { return s.name }

// Kind implements Field.
func (s *Scalar) Kind() field.Kind { return field.KindScalar }

// FieldCount implements Field.
func (s *Scalar) FieldCount() int { return 1 }

// ScalarType returns the elementary type of the value.
func (s *Scalar) ScalarType() field.ScalarType { return s.typ }

// ScalarArray describes an array whose elements are all the same elementary
// type.
type ScalarArray struct {
	name string
	elem field.ScalarType
}

// NewScalarArray creates a ScalarArray descriptor. It returns an
// InvalidArgument error if elem is not a recognized scalar type.
func NewScalarArray(name string, elem field.ScalarType) (*ScalarArray, error) {
	if !field.IsValid(elem) {
		return nil, talonerr.E(talonerr.CatInvalidArgument, "cannot create scalar array field %q: %v is not a scalar type", name, elem)
	}
	return &ScalarArray{name: name, elem: elem}, nil
}

// Name returns the field name.
func (s *ScalarArray) Name() string { return s.name }

// Kind implements Field.
func (s *ScalarArray) Kind() field.Kind { return field.KindScalarArray }

// FieldCount implements Field.
func (s *ScalarArray) FieldCount() int { return 1 }

// ElementType returns the elementary type of the array elements.
func (s *ScalarArray) ElementType() field.ScalarType { return s.elem }

// Structure describes an ordered set of named child descriptors.
type Structure struct {
	name   string
	fields []Field

	// count holds the subtree descriptor total. It is maintained eagerly by
	// the builder-time mutations so FieldCount never writes, which keeps a
	// shared descriptor safe for concurrent reads.
	count int
}

// NewStructure creates a Structure descriptor with the given ordered
// children. Child names must be unique; keeping them so is the builder's
// responsibility.
func NewStructure(name string, fields ...Field) *Structure {
	s := &Structure{name: name}
	s.fields = append(s.fields, fields...)
	s.recount()
	return s
}

// Name returns the field name.
func (s *Structure) Name() string { return s.name }

// Kind implements Field.
func (s *Structure) Kind() field.Kind { return field.KindStructure }

// FieldCount implements Field.
func (s *Structure) FieldCount() int { return s.count }

func (s *Structure) recount() {
	n := 1
	for _, f := range s.fields {
		n += f.FieldCount()
	}
	s.count = n
}

// Fields returns the ordered child descriptors. Callers must not modify the
// returned slice.
func (s *Structure) Fields() []Field { return s.fields }

// Field returns the child descriptor with the given name, or nil if the name
// is not a child of this structure.
func (s *Structure) Field(name string) Field {
	for _, f := range s.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FieldIndex returns the position of the named child, or -1 if the name is
// not a child of this structure.
func (s *Structure) FieldIndex(name string) int {
	for i, f := range s.fields {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

// AppendField appends a child descriptor. Legal only before the Structure is
// shared.
func (s *Structure) AppendField(f Field) {
	s.fields = append(s.fields, f)
	s.recount()
}

// AppendFields appends child descriptors in order. Legal only before the
// Structure is shared.
func (s *Structure) AppendFields(fields ...Field) {
	s.fields = append(s.fields, fields...)
	s.recount()
}

// RemoveField removes the child at index. Legal only before the Structure is
// shared.
func (s *Structure) RemoveField(index int) error {
	if index < 0 || index >= len(s.fields) {
		return talonerr.E(talonerr.CatInvalidArgument, "cannot remove field %d from structure %q with %d fields", index, s.name, len(s.fields))
	}
	s.fields = append(s.fields[:index], s.fields[index+1:]...)
	s.recount()
	return nil
}

// StructureArray describes an array whose elements all conform to one
// Structure descriptor.
type StructureArray struct {
	name string
	elem *Structure
}

// NewStructureArray creates a StructureArray descriptor over the given
// element structure.
func NewStructureArray(name string, elem *Structure) *StructureArray {
	return &StructureArray{name: name, elem: elem}
}

// Name returns the field name.
func (s *StructureArray) Name() string { return s.name }

// Kind implements Field.
func (s *StructureArray) Kind() field.Kind { return field.KindStructureArray }

// FieldCount implements Field.
func (s *StructureArray) FieldCount() int { return 1 }

// Structure returns the element descriptor.
func (s *StructureArray) Structure() *Structure { return s.elem }

// Rename creates a descriptor like f but with a different name. The original
// is unchanged; renaming a descriptor already embedded in a built value tree
// is a precondition violation.
func Rename(name string, f Field) Field {
	switch t := f.(type) {
	case *Scalar:
		return &Scalar{name: name, typ: t.typ}
	case *ScalarArray:
		return &ScalarArray{name: name, elem: t.elem}
	case *Structure:
		return &Structure{name: name, fields: t.fields, count: t.count}
	case *StructureArray:
		return &StructureArray{name: name, elem: t.elem}
	}
	panic("bug: Rename() received a Field kind it does not know")
}
