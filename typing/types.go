package typing

import (
	"github.com/llir/llvm/ir/types"
)

// PrimType represents a primitive Tarn type such as an `int` or a `double`.
// Its value must be one of the enumerated primitive kinds below
type PrimType uint

// Enumeration of primitive types.  The integral kinds are ordered by size with
// the signed kind of each size immediately preceding the unsigned one.
const (
	PrimKindBool PrimType = iota
	PrimKindByte
	PrimKindUbyte
	PrimKindShort
	PrimKindUshort
	PrimKindInt
	PrimKindUint
	PrimKindLong
	PrimKindUlong
	PrimKindFloat
	PrimKindDouble
	PrimKindVoid
)

// equals for integers is an integer comparison
func (pt PrimType) equals(other DataType) bool {
	if opt, ok := other.(PrimType); ok {
		return pt == opt
	}

	return false
}

// Repr of a primitive type is just its corresponding keyword
func (pt PrimType) Repr() string {
	switch pt {
	case PrimKindBool:
		return "bool"
	case PrimKindByte:
		return "byte"
	case PrimKindUbyte:
		return "ubyte"
	case PrimKindShort:
		return "short"
	case PrimKindUshort:
		return "ushort"
	case PrimKindInt:
		return "int"
	case PrimKindUint:
		return "uint"
	case PrimKindLong:
		return "long"
	case PrimKindUlong:
		return "ulong"
	case PrimKindFloat:
		return "float"
	case PrimKindDouble:
		return "double"
	default:
		return "void"
	}
}

// Bits returns the size of the type in bits (bool counts as one)
func (pt PrimType) Bits() int {
	switch pt {
	case PrimKindBool:
		return 1
	case PrimKindByte, PrimKindUbyte:
		return 8
	case PrimKindShort, PrimKindUshort:
		return 16
	case PrimKindInt, PrimKindUint, PrimKindFloat:
		return 32
	case PrimKindLong, PrimKindUlong, PrimKindDouble:
		return 64
	default:
		return 0
	}
}

// IsSigned returns whether an integral type is signed
func (pt PrimType) IsSigned() bool {
	switch pt {
	case PrimKindByte, PrimKindShort, PrimKindInt, PrimKindLong:
		return true
	}

	return false
}

// LLType returns the LLVM representation of the type
func (pt PrimType) LLType() types.Type {
	switch pt {
	case PrimKindBool:
		return types.I1
	case PrimKindByte, PrimKindUbyte:
		return types.I8
	case PrimKindShort, PrimKindUshort:
		return types.I16
	case PrimKindInt, PrimKindUint:
		return types.I32
	case PrimKindLong, PrimKindUlong:
		return types.I64
	case PrimKindFloat:
		return types.Float
	case PrimKindDouble:
		return types.Double
	default:
		return types.Void
	}
}

// -----------------------------------------------------------------------------

// EnumInfo is the view of an enum declaration the type system needs
type EnumInfo interface {
	// BaseType returns the enum's base type or nil if it is not yet known
	BaseType() DataType
}

// EnumType is the nominal type of a named enum
type EnumType struct {
	Name    string
	ModName string

	Info EnumInfo
}

// enum types are only equal to themselves
func (et *EnumType) equals(other DataType) bool {
	if oet, ok := other.(*EnumType); ok {
		return et == oet
	}

	return false
}

func (et *EnumType) Repr() string {
	return et.Name
}

// -----------------------------------------------------------------------------

// ErrorType stands in for a type that failed to resolve.  It is equal to no
// other type (including itself) so that no conversion silently succeeds.
type ErrorType struct{}

func (ErrorType) equals(other DataType) bool {
	return false
}

func (ErrorType) Repr() string {
	return "<error>"
}

// -----------------------------------------------------------------------------

// IsIntegral returns whether a type (or the base of an enum) is integral.
// `bool` counts as integral.
func IsIntegral(dt DataType) bool {
	if pt, ok := InnerType(dt).(PrimType); ok {
		return pt <= PrimKindUlong
	}

	return false
}

// IsFloating returns whether a type (or the base of an enum) is floating
func IsFloating(dt DataType) bool {
	if pt, ok := InnerType(dt).(PrimType); ok {
		return pt == PrimKindFloat || pt == PrimKindDouble
	}

	return false
}

// IsVoid returns whether a type is `void`
func IsVoid(dt DataType) bool {
	pt, ok := dt.(PrimType)
	return ok && pt == PrimKindVoid
}

// IsError returns whether a type is the error type
func IsError(dt DataType) bool {
	_, ok := dt.(ErrorType)
	return ok
}

// IsEnum returns whether a type is an enum type
func IsEnum(dt DataType) bool {
	_, ok := dt.(*EnumType)
	return ok
}

// PrimOf returns the primitive type underlying a type and whether one exists
func PrimOf(dt DataType) (PrimType, bool) {
	pt, ok := InnerType(dt).(PrimType)
	return pt, ok
}
