package ctfe

import (
	"math"
	"math/big"
	"strconv"

	"tarn/typing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// Const is a compile-time constant: a Tarn type paired with its value stored as
// an LLVM constant.  Integral values (including bools) are `*constant.Int`
// holding the mathematical value (never the two's complement bit pattern of an
// unsigned type); floating values are `*constant.Float` already rounded to the
// precision of their type.  Constants are immutable once created.
type Const struct {
	Type  typing.DataType
	Value constant.Constant
}

// NewInt creates an integral constant of type t wrapping v into its range.  t
// may be an enum type whose base type is integral.
func NewInt(t typing.DataType, v *big.Int) *Const {
	pt, _ := typing.PrimOf(t)
	return &Const{
		Type:  t,
		Value: &constant.Int{Typ: llIntType(pt), X: wrap(v, pt)},
	}
}

// NewInt64 is a convenience wrapper around NewInt
func NewInt64(t typing.DataType, v int64) *Const {
	return NewInt(t, big.NewInt(v))
}

// NewBool creates a constant of type `bool`
func NewBool(b bool) *Const {
	return &Const{Type: typing.PrimKindBool, Value: constant.NewBool(b)}
}

// NewFloat creates a floating constant of type t rounding v to its precision.
// It fails if the rounded value is infinite.
func NewFloat(t typing.DataType, v float64) (*Const, bool) {
	pt, _ := typing.PrimOf(t)
	if math.IsNaN(v) {
		return nil, false
	}

	if pt == typing.PrimKindFloat {
		f32, _ := new(big.Float).SetFloat64(v).Float32()
		v = float64(f32)
	}

	if math.IsInf(v, 0) {
		return nil, false
	}

	return &Const{
		Type:  t,
		Value: &constant.Float{Typ: pt.LLType().(*types.FloatType), X: big.NewFloat(v)},
	}, true
}

// -----------------------------------------------------------------------------

// IsIntegral returns whether the constant holds an integral value
func (c *Const) IsIntegral() bool {
	_, ok := c.Value.(*constant.Int)
	return ok
}

// IsFloating returns whether the constant holds a floating value
func (c *Const) IsFloating() bool {
	_, ok := c.Value.(*constant.Float)
	return ok
}

// Int returns a copy of the integral value of the constant
func (c *Const) Int() *big.Int {
	switch v := c.Value.(type) {
	case *constant.Int:
		return new(big.Int).Set(v.X)
	case *constant.Float:
		i, _ := v.X.Int(nil)
		return i
	}

	return new(big.Int)
}

// Float64 returns the value of the constant as a float64
func (c *Const) Float64() float64 {
	switch v := c.Value.(type) {
	case *constant.Int:
		f, _ := new(big.Float).SetInt(v.X).Float64()
		return f
	case *constant.Float:
		f, _ := v.X.Float64()
		return f
	}

	return 0
}

// Bool returns whether the constant is non-zero
func (c *Const) Bool() bool {
	switch v := c.Value.(type) {
	case *constant.Int:
		return v.X.Sign() != 0
	case *constant.Float:
		return v.X.Sign() != 0
	}

	return false
}

// Prim returns the primitive type representing the constant's value
func (c *Const) Prim() typing.PrimType {
	pt, _ := typing.PrimOf(c.Type)
	return pt
}

// SameValue returns whether two constants hold the same value regardless of
// their types
func (c *Const) SameValue(other *Const) bool {
	if c.IsIntegral() && other.IsIntegral() {
		return c.Int().Cmp(other.Int()) == 0
	}

	return c.Float64() == other.Float64()
}

// Retype returns a constant with the same value and a new type of the same
// representation (eg. an enum type and its base type)
func (c *Const) Retype(t typing.DataType) *Const {
	return &Const{Type: t, Value: c.Value}
}

// String renders the constant's value as it would be written in source
func (c *Const) String() string {
	switch v := c.Value.(type) {
	case *constant.Int:
		if c.Prim() == typing.PrimKindBool {
			return strconv.FormatBool(v.X.Sign() != 0)
		}

		return v.X.String()
	case *constant.Float:
		bits := 64
		if c.Prim() == typing.PrimKindFloat {
			bits = 32
		}

		f, _ := v.X.Float64()
		return strconv.FormatFloat(f, 'g', -1, bits)
	}

	return "<invalid>"
}

// -----------------------------------------------------------------------------

// Bounds returns the smallest and largest values of an integral type
func Bounds(pt typing.PrimType) (*big.Int, *big.Int) {
	if pt == typing.PrimKindBool {
		return big.NewInt(0), big.NewInt(1)
	}

	bits := uint(pt.Bits())
	if pt.IsSigned() {
		max := new(big.Int).Lsh(big.NewInt(1), bits-1)
		min := new(big.Int).Neg(max)
		return min, max.Sub(max, big.NewInt(1))
	}

	max := new(big.Int).Lsh(big.NewInt(1), bits)
	return big.NewInt(0), max.Sub(max, big.NewInt(1))
}

// Fits returns whether v is representable in an integral type
func Fits(v *big.Int, pt typing.PrimType) bool {
	min, max := Bounds(pt)
	return v.Cmp(min) >= 0 && v.Cmp(max) <= 0
}

// MaxOf returns the `.max` property of a primitive type
func MaxOf(pt typing.PrimType) (*Const, bool) {
	switch {
	case typing.IsIntegral(pt):
		_, max := Bounds(pt)
		return NewInt(pt, max), true
	case pt == typing.PrimKindFloat:
		return NewFloat(pt, math.MaxFloat32)
	case pt == typing.PrimKindDouble:
		return NewFloat(pt, math.MaxFloat64)
	}

	return nil, false
}

// MinOf returns the `.min` property of a primitive type: the most negative
// finite value for floating types
func MinOf(pt typing.PrimType) (*Const, bool) {
	switch {
	case typing.IsIntegral(pt):
		min, _ := Bounds(pt)
		return NewInt(pt, min), true
	case pt == typing.PrimKindFloat:
		return NewFloat(pt, -math.MaxFloat32)
	case pt == typing.PrimKindDouble:
		return NewFloat(pt, -math.MaxFloat64)
	}

	return nil, false
}

// InitOf returns the `.init` property of a primitive type: always zero
func InitOf(pt typing.PrimType) (*Const, bool) {
	switch {
	case typing.IsIntegral(pt):
		return NewInt64(pt, 0), true
	case typing.IsFloating(pt):
		return NewFloat(pt, 0)
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// wrap reduces v modulo the range of an integral type
func wrap(v *big.Int, pt typing.PrimType) *big.Int {
	if pt == typing.PrimKindBool {
		if v.Sign() != 0 {
			return big.NewInt(1)
		}

		return big.NewInt(0)
	}

	bits := uint(pt.Bits())
	if bits == 0 {
		return new(big.Int).Set(v)
	}

	modulus := new(big.Int).Lsh(big.NewInt(1), bits)
	r := new(big.Int).Mod(v, modulus)

	if pt.IsSigned() {
		half := new(big.Int).Rsh(modulus, 1)
		if r.Cmp(half) >= 0 {
			r.Sub(r, modulus)
		}
	}

	return r
}

func llIntType(pt typing.PrimType) *types.IntType {
	if it, ok := pt.LLType().(*types.IntType); ok {
		return it
	}

	return types.I64
}
