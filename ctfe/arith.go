package ctfe

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"tarn/typing"
)

// Op is a constant folding operator
type Op int

// Enumeration of operators
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpLogAnd
	OpLogOr

	// unary operators
	OpNeg
	OpPos
	OpCompl
	OpNot
)

var opStrings = [...]string{
	"+", "-", "*", "/", "%", "<<", ">>", "&", "|", "^",
	"==", "!=", "<", ">", "<=", ">=", "&&", "||",
	"-", "+", "~", "!",
}

func (op Op) String() string {
	return opStrings[op]
}

// IsComparison returns whether the operator yields a `bool`
func (op Op) IsComparison() bool {
	return OpEq <= op && op <= OpLogOr
}

var errDivideByZero = errors.New("division by zero")

// Binary folds a binary operator over two constants
func Binary(op Op, a, b *Const) (*Const, error) {
	switch op {
	case OpLogAnd:
		return NewBool(a.Bool() && b.Bool()), nil
	case OpLogOr:
		return NewBool(a.Bool() || b.Bool()), nil
	case OpShl, OpShr:
		return shift(op, a, b)
	}

	common, ok := CommonType(a.Type, b.Type)
	if !ok {
		return nil, fmt.Errorf(
			"incompatible types for `%s`: `%s` and `%s`",
			op, typing.Repr(a.Type), typing.Repr(b.Type),
		)
	}

	a, _ = convert(a, common)
	b, _ = convert(b, common)

	if typing.IsFloating(common) {
		return floatBinary(op, common, a.Float64(), b.Float64())
	}

	return intBinary(op, common, a.Int(), b.Int())
}

func intBinary(op Op, t typing.PrimType, x, y *big.Int) (*Const, error) {
	r := new(big.Int)

	switch op {
	case OpAdd:
		r.Add(x, y)
	case OpSub:
		r.Sub(x, y)
	case OpMul:
		r.Mul(x, y)
	case OpDiv:
		if y.Sign() == 0 {
			return nil, errDivideByZero
		}

		r.Quo(x, y)
	case OpMod:
		if y.Sign() == 0 {
			return nil, errDivideByZero
		}

		r.Rem(x, y)
	case OpAnd:
		r.And(x, y)
	case OpOr:
		r.Or(x, y)
	case OpXor:
		r.Xor(x, y)
	default:
		return NewBool(compare(op, x.Cmp(y))), nil
	}

	return NewInt(t, r), nil
}

func floatBinary(op Op, t typing.PrimType, x, y float64) (*Const, error) {
	var r float64

	switch op {
	case OpAdd:
		r = x + y
	case OpSub:
		r = x - y
	case OpMul:
		r = x * y
	case OpDiv:
		if y == 0 {
			return nil, errDivideByZero
		}

		r = x / y
	case OpMod:
		if y == 0 {
			return nil, errDivideByZero
		}

		r = math.Mod(x, y)
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		cmp := 0
		if x < y {
			cmp = -1
		} else if x > y {
			cmp = 1
		}

		return NewBool(compare(op, cmp)), nil
	default:
		return nil, fmt.Errorf("operator `%s` is not defined for `%s`", op, t.Repr())
	}

	c, ok := NewFloat(t, r)
	if !ok {
		return nil, fmt.Errorf("floating point overflow in `%s`", t.Repr())
	}

	return c, nil
}

func compare(op Op, cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpGt:
		return cmp > 0
	case OpLe:
		return cmp <= 0
	default:
		return cmp >= 0
	}
}

// shift folds a shift: the result has the promoted type of the left operand and
// the shift count must be less than its size
func shift(op Op, a, b *Const) (*Const, error) {
	if !a.IsIntegral() || !b.IsIntegral() {
		return nil, fmt.Errorf("operator `%s` requires integral operands", op)
	}

	a = Promote(a)
	pt := a.Prim()

	count := b.Int()
	if count.Sign() < 0 || count.Cmp(big.NewInt(int64(pt.Bits()))) >= 0 {
		return nil, fmt.Errorf("shift by %s is outside the range 0..%d", count, pt.Bits()-1)
	}

	n := uint(count.Uint64())
	if op == OpShl {
		return NewInt(pt, new(big.Int).Lsh(a.Int(), n)), nil
	}

	// `>>` is arithmetic for signed and logical for unsigned operands which
	// big.Int.Rsh gives us on the mathematical value
	return NewInt(pt, new(big.Int).Rsh(a.Int(), n)), nil
}

// Unary folds a prefix operator over a constant
func Unary(op Op, a *Const) (*Const, error) {
	if op == OpNot {
		return NewBool(!a.Bool()), nil
	}

	a = Promote(a)
	pt := a.Prim()

	switch op {
	case OpPos:
		return a, nil
	case OpNeg:
		if a.IsFloating() {
			c, _ := NewFloat(pt, -a.Float64())
			return c, nil
		}

		return NewInt(pt, new(big.Int).Neg(a.Int())), nil
	case OpCompl:
		if !a.IsIntegral() {
			return nil, fmt.Errorf("operator `~` is not defined for `%s`", pt.Repr())
		}

		return NewInt(pt, new(big.Int).Not(a.Int())), nil
	}

	return nil, fmt.Errorf("`%s` is not a unary operator", op)
}
