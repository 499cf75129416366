package ctfe

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"tarn/typing"
)

// ParseIntLiteral converts the text of an integer literal into a constant.
// The literal's type is the first of its candidate types able to hold the
// value: `int`, `long`, `ulong` for decimal literals and `int`, `uint`, `long`,
// `ulong` for hex and binary ones, narrowed by the `u` and `L` suffixes.
func ParseIntLiteral(text string) (*Const, error) {
	var unsigned, long bool
	for {
		if strings.HasSuffix(text, "u") || strings.HasSuffix(text, "U") {
			unsigned = true
		} else if strings.HasSuffix(text, "L") {
			long = true
		} else {
			break
		}

		text = text[:len(text)-1]
	}

	base, digits := 10, text
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			base, digits = 16, text[2:]
		case 'b', 'B':
			base, digits = 2, text[2:]
		}
	}

	v, ok := new(big.Int).SetString(strings.ReplaceAll(digits, "_", ""), base)
	if !ok {
		return nil, errors.New("malformed integer literal `" + text + "`")
	}

	var candidates []typing.PrimType
	switch {
	case unsigned && long:
		candidates = []typing.PrimType{typing.PrimKindUlong}
	case unsigned:
		candidates = []typing.PrimType{typing.PrimKindUint, typing.PrimKindUlong}
	case long:
		candidates = []typing.PrimType{typing.PrimKindLong, typing.PrimKindUlong}
	case base == 10:
		candidates = []typing.PrimType{typing.PrimKindInt, typing.PrimKindLong, typing.PrimKindUlong}
	default:
		candidates = []typing.PrimType{typing.PrimKindInt, typing.PrimKindUint, typing.PrimKindLong, typing.PrimKindUlong}
	}

	for _, pt := range candidates {
		if Fits(v, pt) {
			return NewInt(pt, v), nil
		}
	}

	return nil, errors.New("integer literal `" + text + "` overflows ulong")
}

// ParseFloatLiteral converts the text of a floating literal into a constant:
// `float` if it carries an `f` suffix and `double` otherwise
func ParseFloatLiteral(text string) (*Const, error) {
	pt := typing.PrimKindDouble
	if strings.HasSuffix(text, "f") || strings.HasSuffix(text, "F") {
		pt = typing.PrimKindFloat
		text = text[:len(text)-1]
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return nil, errors.New("floating literal `" + text + "` is not representable")
	}

	c, ok := NewFloat(pt, f)
	if !ok {
		return nil, errors.New("floating literal `" + text + "` overflows " + pt.Repr())
	}

	return c, nil
}
