// Package field holds the closed set of type tags that describe talon values:
// the descriptor kinds (scalar, scalar array, structure, structure array) and
// the elementary scalar types with their fixed wire widths.
package field

import "fmt"

// Kind represents the kind of a type descriptor.
type Kind uint8

const (
	KindUnknown        Kind = 0
	KindScalar         Kind = 1
	KindScalarArray    Kind = 2
	KindStructure      Kind = 3
	KindStructureArray Kind = 4
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindScalarArray:
		return "scalarArray"
	case KindStructure:
		return "structure"
	case KindStructureArray:
		return "structureArray"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ScalarType represents the type of data held in a scalar value or in the
// elements of a scalar array.
type ScalarType uint8

const (
	STUnknown ScalarType = 0
	STBool    ScalarType = 1
	STInt8    ScalarType = 2
	STInt16   ScalarType = 3
	STInt32   ScalarType = 4
	STInt64   ScalarType = 5
	STUint8   ScalarType = 6
	STUint16  ScalarType = 7
	STUint32  ScalarType = 8
	STUint64  ScalarType = 9
	STFloat32 ScalarType = 10
	STFloat64 ScalarType = 11
	STString  ScalarType = 12
)

var scalarNames = map[ScalarType]string{
	STBool:    "boolean",
	STInt8:    "byte",
	STInt16:   "short",
	STInt32:   "int",
	STInt64:   "long",
	STUint8:   "ubyte",
	STUint16:  "ushort",
	STUint32:  "uint",
	STUint64:  "ulong",
	STFloat32: "float",
	STFloat64: "double",
	STString:  "string",
}

// String implements fmt.Stringer.
func (s ScalarType) String() string {
	if n, ok := scalarNames[s]; ok {
		return n
	}
	return fmt.Sprintf("ScalarType(%d)", uint8(s))
}

// FromName returns the ScalarType for a type name such as "double" or "ulong".
// An error is returned if name does not name a scalar type.
func FromName(name string) (ScalarType, error) {
	for st, n := range scalarNames {
		if n == name {
			return st, nil
		}
	}
	return STUnknown, fmt.Errorf("%q is not the name of a scalar type", name)
}

// IsValid reports whether st is one of the supported scalar types.
func IsValid(st ScalarType) bool {
	_, ok := scalarNames[st]
	return ok
}

// IsInteger reports whether st is one of the signed or unsigned integer types.
func IsInteger(st ScalarType) bool {
	switch st {
	case STInt8, STInt16, STInt32, STInt64, STUint8, STUint16, STUint32, STUint64:
		return true
	}
	return false
}

// IsNumeric reports whether st is an integer or floating point type.
func IsNumeric(st ScalarType) bool {
	switch st {
	case STFloat32, STFloat64:
		return true
	}
	return IsInteger(st)
}

// IsPrimitive reports whether st has a fixed-width native encoding. Every
// scalar type except string is primitive.
func IsPrimitive(st ScalarType) bool {
	return IsValid(st) && st != STString
}

// Size returns the fixed encoded width of st in bytes. It panics for STString,
// which has no fixed width, and for invalid types; callers must dispatch the
// string case separately.
func Size(st ScalarType) int {
	switch st {
	case STBool, STInt8, STUint8:
		return 1
	case STInt16, STUint16:
		return 2
	case STInt32, STUint32, STFloat32:
		return 4
	case STInt64, STUint64, STFloat64:
		return 8
	}
	panic(fmt.Sprintf("bug: Size() called on scalar type %v, which has no fixed width", st))
}
