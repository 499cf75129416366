package typing

// Conversion Rules
// ----------------
// 1. A coercion is a type conversion that can never result in a loss of data
// regardless of the value being converted.  Integral types coerce to integral
// types at least as large, integral types coerce to floating types, and
// floating types coerce to each other.  Nothing coerces to an enum type other
// than the enum itself, and enum types coerce as their base type.
// 2. Narrowing integral conversions of constants are decided on the value: see
// the ctfe package.
// 3. A cast is an explicit conversion between any two scalar types (numbers,
// bools and enums) which wraps or truncates as necessary.

// CoerceTo checks whether src can always be implicitly converted to dest
func CoerceTo(src, dest DataType) bool {
	if Equals(src, dest) {
		return true
	}

	if IsEnum(dest) || IsError(src) || IsError(dest) {
		return false
	}

	spt, ok := PrimOf(src)
	if !ok {
		return false
	}

	if dpt, ok := dest.(PrimType); ok {
		return spt.coerce(dpt)
	}

	return false
}

// CastTo checks whether src can be explicitly cast to dest
func CastTo(src, dest DataType) bool {
	if CoerceTo(src, dest) {
		return true
	}

	return isScalar(src) && isScalar(dest)
}

func isScalar(dt DataType) bool {
	return IsIntegral(dt) || IsFloating(dt) || IsEnum(dt) && !IsError(InnerType(dt))
}

// -----------------------------------------------------------------------------

func (pt PrimType) coerce(to PrimType) bool {
	switch {
	case pt == PrimKindVoid || to == PrimKindVoid:
		return false
	case IsFloating(pt):
		return IsFloating(to)
	case IsFloating(to):
		return true
	case to == PrimKindBool:
		// only decidable on the value
		return pt == PrimKindBool
	case pt == PrimKindBool:
		return true
	default:
		// integers of the same size differ only in signedness and reinterpret
		return to.Bits() >= pt.Bits()
	}
}
