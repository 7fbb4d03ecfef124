// Package talon is a typed value-interchange engine for distributed
// control-system middleware. It provides a runtime type system for scalars,
// arrays and nested structures (package schema), mutable value trees
// conforming to those types (package value), a compact binary codec that
// works against fragmented byte streams (packages value and wire), change
// tracking over pre-order field offsets (packages bitset and value), and
// pooled copy-on-write array storage (packages pool and shared).
//
// The root package re-exports the elementary type tags and the entry points
// most callers need, so simple use reads:
//
//	desc, err := standard.Scalar("temperature", talon.STFloat64, "alarm", "timeStamp")
//	...
//	root := talon.Create(desc).(*value.Structure)
package talon

import (
	"github.com/bearlytools/talon/field"
	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/value"
)

// ScalarType represents the type of data held in a scalar value or in the
// elements of a scalar array.
type ScalarType = field.ScalarType

const (
	STUnknown = field.STUnknown
	STBool    = field.STBool
	STInt8    = field.STInt8
	STInt16   = field.STInt16
	STInt32   = field.STInt32
	STInt64   = field.STInt64
	STUint8   = field.STUint8
	STUint16  = field.STUint16
	STUint32  = field.STUint32
	STUint64  = field.STUint64
	STFloat32 = field.STFloat32
	STFloat64 = field.STFloat64
	STString  = field.STString
)

// NewScalar creates a scalar type descriptor.
func NewScalar(name string, st ScalarType) (*schema.Scalar, error) {
	return schema.NewScalar(name, st)
}

// NewScalarArray creates a scalar array type descriptor.
func NewScalarArray(name string, elem ScalarType) (*schema.ScalarArray, error) {
	return schema.NewScalarArray(name, elem)
}

// NewStructure creates a structure type descriptor with the given ordered
// children.
func NewStructure(name string, fields ...schema.Field) *schema.Structure {
	return schema.NewStructure(name, fields...)
}

// NewStructureArray creates a structure array type descriptor.
func NewStructureArray(name string, elem *schema.Structure) *schema.StructureArray {
	return schema.NewStructureArray(name, elem)
}

// Create instantiates a default-valued tree conforming to desc.
func Create(desc schema.Field) value.Value {
	return value.Create(desc)
}

// Clone deep-copies a value tree.
func Clone(v value.Value) value.Value {
	return value.Clone(v)
}
