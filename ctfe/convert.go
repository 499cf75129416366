package ctfe

import (
	"math"
	"math/big"

	"tarn/typing"
)

// ImplicitConvert converts a constant to dest if the conversion is implicit:
// either the types always coerce or the constant is integral and its value is
// representable in an integral dest
func ImplicitConvert(c *Const, dest typing.DataType) (*Const, bool) {
	if typing.Equals(c.Type, dest) {
		return c, true
	}

	if typing.CoerceTo(c.Type, dest) {
		return convert(c, dest)
	}

	if dpt, ok := dest.(typing.PrimType); ok && c.IsIntegral() && typing.IsIntegral(dpt) {
		if Fits(c.Int(), dpt) {
			return convert(c, dest)
		}
	}

	return nil, false
}

// Cast explicitly converts a constant to dest wrapping integers and truncating
// floating values toward zero
func Cast(c *Const, dest typing.DataType) (*Const, bool) {
	if typing.Equals(c.Type, dest) {
		return c, true
	}

	if !typing.CastTo(c.Type, dest) {
		return nil, false
	}

	return convert(c, dest)
}

// convert changes the representation of a constant to that of dest
func convert(c *Const, dest typing.DataType) (*Const, bool) {
	dpt, ok := typing.PrimOf(dest)
	if !ok || dpt == typing.PrimKindVoid {
		return nil, false
	}

	if typing.IsFloating(dpt) {
		return NewFloat(dest, c.Float64())
	}

	if dpt == typing.PrimKindBool {
		return NewBool(c.Bool()).Retype(dest), true
	}

	if c.IsFloating() {
		f := math.Trunc(c.Float64())
		i, _ := big.NewFloat(f).Int(nil)
		return NewInt(dest, i), true
	}

	return NewInt(dest, c.Int()), true
}

// -----------------------------------------------------------------------------

// Promote applies the integral promotions: every integral type smaller than
// `int` (and `bool`) becomes `int`, enums become their base type
func Promote(c *Const) *Const {
	pt, ok := typing.PrimOf(c.Type)
	if !ok {
		return c
	}

	if typing.IsIntegral(pt) && pt < typing.PrimKindInt {
		pt = typing.PrimKindInt
	}

	if typing.Equals(c.Type, pt) {
		return c
	}

	promoted, _ := convert(c, pt)
	return promoted
}

// CommonType computes the type both operands of a binary arithmetic operator
// are converted to (the usual arithmetic conversions)
func CommonType(a, b typing.DataType) (typing.PrimType, bool) {
	apt, aok := typing.PrimOf(a)
	bpt, bok := typing.PrimOf(b)
	if !aok || !bok || apt == typing.PrimKindVoid || bpt == typing.PrimKindVoid {
		return 0, false
	}

	if apt == typing.PrimKindDouble || bpt == typing.PrimKindDouble {
		return typing.PrimKindDouble, true
	} else if apt == typing.PrimKindFloat || bpt == typing.PrimKindFloat {
		return typing.PrimKindFloat, true
	}

	if apt < typing.PrimKindInt {
		apt = typing.PrimKindInt
	}

	if bpt < typing.PrimKindInt {
		bpt = typing.PrimKindInt
	}

	switch {
	case apt == bpt:
		return apt, true
	case apt.IsSigned() == bpt.IsSigned():
		if apt > bpt {
			return apt, true
		}

		return bpt, true
	}

	signed, unsigned := apt, bpt
	if bpt.IsSigned() {
		signed, unsigned = bpt, apt
	}

	if unsigned.Bits() >= signed.Bits() {
		return unsigned, true
	}

	return signed, true
}
