package resolve

import (
	"strings"
	"testing"

	"tarn/sem"
	"tarn/typing"

	"github.com/nalgeon/be"
)

func TestColor(t *testing.T) {
	f, m := analyzeSource(t, `enum Color { Red, Green, Blue }`)
	be.Equal(t, len(errorMessages()), 0)

	color := enumOf(t, m, "Color")
	be.True(t, color.Resolved())
	be.True(t, typing.Equals(color.Memtype, typing.PrimKindInt))

	for i, name := range []string{"Red", "Green", "Blue"} {
		em := memberOf(t, color, name)
		be.True(t, em.Resolved())
		be.Equal(t, intValue(t, em), int64(i))
		be.True(t, typing.Equals(em.Value.Type, color.Type))
		be.True(t, typing.Equals(em.Original.Type, typing.PrimKindInt))
	}

	max := f.res.Extremum(color, true, m.RootScope, nil)
	be.Equal(t, max.Const().Int().Int64(), int64(2))

	min := f.res.Extremum(color, false, m.RootScope, nil)
	be.Equal(t, min.Const().Int().Int64(), int64(0))

	init := f.res.Default(color, m.RootScope, nil)
	be.True(t, init.Const() == memberOf(t, color, "Red").Value)
}

func TestExtremumMemoized(t *testing.T) {
	f, m := analyzeSource(t, `enum E : short { A = 4, B = -2, C = 9 }`)
	ed := enumOf(t, m, "E")

	be.True(t, ed.Memo(true) == nil)

	max := f.res.Extremum(ed, true, m.RootScope, nil)
	be.Equal(t, max.Const().Int().Int64(), int64(9))
	memo := ed.Memo(true)
	be.True(t, memo != nil)

	// unrelated state changes do not disturb the memo
	f.analyze("app")
	again := f.res.Extremum(ed, true, m.RootScope, nil)
	be.True(t, again.Const() == max.Const())
	be.True(t, ed.Memo(true) == memo)

	min := f.res.Extremum(ed, false, m.RootScope, nil)
	be.Equal(t, min.Const().Int().Int64(), int64(-2))
	be.True(t, min.Const() == memberOf(t, ed, "B").Value)
	be.Equal(t, len(errorMessages()), 0)
}

func TestBaseInference(t *testing.T) {
	cases := []struct {
		src  string
		want typing.PrimType
	}{
		{`enum E { A = 5L, B }`, typing.PrimKindLong},
		{`enum E { A = 1.5, B }`, typing.PrimKindDouble},
		{`enum E { A = 0x8000_0000, B }`, typing.PrimKindUint},
		{`enum E { A = true }`, typing.PrimKindBool},
		{`enum E { A }`, typing.PrimKindInt},
	}

	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, m := analyzeSource(t, c.src)
			be.Equal(t, len(errorMessages()), 0)

			ed := enumOf(t, m, "E")
			be.True(t, typing.Equals(ed.Memtype, c.want))
		})
	}
}

func TestDeclaredBaseType(t *testing.T) {
	_, m := analyzeSource(t, `enum E : long { A = 1, B = cast(byte) 300 }`)
	be.Equal(t, len(errorMessages()), 0)

	ed := enumOf(t, m, "E")
	be.True(t, typing.Equals(ed.Memtype, typing.PrimKindLong))

	// the initializer is converted to the base type without inference
	a := memberOf(t, ed, "A")
	be.True(t, typing.Equals(a.Original.Type, typing.PrimKindLong))
	be.Equal(t, intValue(t, memberOf(t, ed, "B")), int64(44))
}

func TestSuccessor(t *testing.T) {
	_, m := analyzeSource(t, `
		enum E : byte { A = 126, B }
		enum U : ubyte { A = 250, B, C }
		enum L : long { A = -5, B }
		enum D : double { A = 1.5, B }
		enum { X = 5L, Y }
	`)
	be.Equal(t, errorMessages(), []string(nil))

	e := enumOf(t, m, "E")
	be.Equal(t, intValue(t, memberOf(t, e, "B")), int64(127))
	// the original value of a successor keeps the promoted type of `A+1`
	be.True(t, typing.Equals(memberOf(t, e, "A").Original.Type, typing.PrimKindByte))
	be.True(t, typing.Equals(memberOf(t, e, "B").Original.Type, typing.PrimKindInt))

	u := enumOf(t, m, "U")
	be.Equal(t, intValue(t, memberOf(t, u, "C")), int64(252))

	l := enumOf(t, m, "L")
	be.Equal(t, intValue(t, memberOf(t, l, "B")), int64(-4))

	d := enumOf(t, m, "D")
	be.Equal(t, memberOf(t, d, "B").Value.Float64(), 2.5)

	// anonymous members are declared in the module
	y, ok := m.Search("Y")
	be.True(t, ok)
	be.Equal(t, intValue(t, y.(*sem.EnumMember)), int64(6))
	be.True(t, typing.Equals(y.(*sem.EnumMember).Value.Type, typing.PrimKindLong))
}

func TestSuccessorOverflow(t *testing.T) {
	_, m := analyzeSource(t, `enum E : byte { A = 126, B, C }`)

	errs := errorMessages()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0], "initialization with `E.B+1` causes overflow for type `byte`")

	e := enumOf(t, m, "E")
	be.True(t, memberOf(t, e, "B").Resolved())
	be.Equal(t, intValue(t, memberOf(t, e, "B")), int64(127))

	c := memberOf(t, e, "C")
	be.True(t, c.Errors)
	be.Equal(t, c.Failure(), sem.ErrOverflow)
	be.True(t, c.Value == nil)
}

func TestOverflowIffPredecessorIsMax(t *testing.T) {
	cases := []struct {
		base     string
		prev     string
		overflow bool
	}{
		{"byte", "126", false},
		{"byte", "127", true},
		{"ubyte", "255", true},
		{"short", "32766", false},
		{"ushort", "65535", true},
		{"int", "2147483647", true},
		{"uint", "4294967294", false},
		{"long", "9223372036854775807L", true},
		{"bool", "true", true},
	}

	for _, c := range cases {
		t.Run(c.base+"="+c.prev, func(t *testing.T) {
			_, m := analyzeSource(t, "enum E : "+c.base+" { A = "+c.prev+", B }")

			b := memberOf(t, enumOf(t, m, "E"), "B")
			be.Equal(t, b.Errors, c.overflow)
			if c.overflow {
				be.Equal(t, b.Failure(), sem.ErrOverflow)
			} else {
				a := memberOf(t, enumOf(t, m, "E"), "A")
				be.Equal(t, intValue(t, b), intValue(t, a)+1)
			}
		})
	}
}

func TestPrecisionLoss(t *testing.T) {
	_, m := analyzeSource(t, `enum E : float { A = 16777216.0f, B }`)

	errs := errorMessages()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0], "enum member `B` has inexact value, due to loss of precision")
	be.Equal(t, memberOf(t, enumOf(t, m, "E"), "B").Failure(), sem.ErrPrecisionLoss)
}

func TestOriginalValue(t *testing.T) {
	_, m := analyzeSource(t, `
		enum Base : short { X = 10, Y = 20 }
		enum E : Base { A = Base.X, B }
	`)
	be.Equal(t, errorMessages(), []string(nil))

	e := enumOf(t, m, "E")
	b := memberOf(t, e, "B")
	be.Equal(t, intValue(t, b), int64(11))
	be.True(t, typing.Equals(b.Value.Type, e.Type))
	be.True(t, typing.Equals(memberOf(t, e, "A").Original.Type, enumOf(t, m, "Base").Type))

	// `Base.X+1` is computed on the base type of `Base` after promotion
	be.True(t, typing.Equals(b.Original.Type, typing.PrimKindInt))
	be.Equal(t, b.Original.Int().Int64(), int64(11))
}

func TestOverflowNamesBaseType(t *testing.T) {
	_, m := analyzeSource(t, `
		enum E : ubyte { A = 255 }
		enum F : E { X = E.A, Y }
	`)

	be.Equal(t, errorMessages(), []string{"initialization with `F.X+1` causes overflow for type `ubyte`"})
	be.Equal(t, memberOf(t, enumOf(t, m, "F"), "Y").Failure(), sem.ErrOverflow)
	be.True(t, enumOf(t, m, "E").Resolved())
}

func TestPropertyErrorKeepsEnumValid(t *testing.T) {
	f, m := analyzeSource(t, `
		enum F : double { a = 1.5, b }
		enum G { x = F.max }
		enum H : double { y = F.init }
		enum K { z = F.min }
	`)

	be.Equal(t, errorMessages(), []string{
		"enum `F` has no `.max` property because base type `double` is not an integral type",
		"enum `F` has no `.min` property because base type `double` is not an integral type",
	})

	fe := enumOf(t, m, "F")
	be.True(t, fe.Resolved())
	be.True(t, memberOf(t, fe, "b").Resolved())
	be.Equal(t, fe.Memo(true).Kind(), sem.ErrTypeMismatch)

	y := memberOf(t, enumOf(t, m, "H"), "y")
	be.True(t, y.Resolved())
	be.Equal(t, y.Value.Float64(), 1.5)

	be.Equal(t, memberOf(t, enumOf(t, m, "G"), "x").Failure(), sem.ErrTypeMismatch)
	be.True(t, memberOf(t, enumOf(t, m, "K"), "z").Errors)

	// the failure is memoized and reported once per property
	v := f.res.Extremum(fe, true, m.RootScope, nil)
	be.Equal(t, v.Kind(), sem.ErrTypeMismatch)
	be.Equal(t, len(errorMessages()), 2)
}

func TestCollidingMemberPoisonsEnum(t *testing.T) {
	_, m := analyzeSource(t, `
		enum E { A = 1, A = 5 }
		enum G { x = E.max }
	`)

	errs := errorMessages()
	be.Equal(t, len(errs), 1)
	be.True(t, strings.HasPrefix(errs[0], "enum member `A` is already declared at "))

	e := enumOf(t, m, "E")
	be.True(t, e.Errors)
	for _, em := range e.Members {
		be.True(t, em.Errors)
		be.True(t, em.Value == nil)
	}

	x := memberOf(t, enumOf(t, m, "G"), "x")
	be.True(t, x.Errors)
	be.Equal(t, x.Failure(), sem.ErrPoisoned)
}

func TestEnumErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`enum E : void { A }`, "base type must not be `void`"},
		{`enum E {}`, "enum `E` must have at least one member"},
		{`enum E : byte { A = 300 }`, "cannot implicitly convert expression `300` of type `int` to `byte`"},
		{`enum E { A = 1.5, B = 2 } enum F : int { X = E.A }`, "cannot implicitly convert expression `1.5` of type `E` to `int`"},
		{`enum E { A = F }`, "undefined identifier `F`"},
		{`enum E { A = 1 / 0 }`, "division by zero"},
		{`enum E { int A = 1 }`, "a member type is only allowed in an anonymous enum without a base type"},
		{`enum { int A }`, "enum member `A` of type `int` must be initialized"},
		{`enum E { A, A }`, "enum member `A` is already declared at "},
		{`enum E { A = 1 } enum E { B }`, "enum `E` is already declared at "},
		{`enum E { A = E.B }`, "no property `B` for type `E`"},
		{`enum E { A = int.foo }`, "no property `foo` for type `int`"},
	}

	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			analyzeSource(t, c.src)

			errs := errorMessages()
			be.Equal(t, len(errs), 1)
			be.True(t, strings.HasPrefix(errs[0], c.want))
		})
	}
}

func TestErroredBasePoisonsMembers(t *testing.T) {
	_, m := analyzeSource(t, `
		enum Bad : void { X }
		enum E : Bad { A, B }
	`)

	// only the void base type is reported
	be.Equal(t, len(errorMessages()), 1)

	e := enumOf(t, m, "E")
	be.True(t, e.Errors)
	for _, em := range e.Members {
		be.True(t, em.Errors)
		be.Equal(t, em.State, sem.PassDone)
	}
}

func TestAnonymousEnum(t *testing.T) {
	_, m := analyzeSource(t, `
		enum { A = 1, B, long C = 7, D }
		enum : ubyte { X = 3 }
	`)
	be.Equal(t, errorMessages(), []string(nil))

	for name, want := range map[string]int64{"A": 1, "B": 2, "C": 7, "D": 8, "X": 3} {
		d, ok := m.Search(name)
		be.True(t, ok)
		be.Equal(t, intValue(t, d.(*sem.EnumMember)), want)
	}

	c, _ := m.Search("C")
	be.True(t, typing.Equals(c.(*sem.EnumMember).Value.Type, typing.PrimKindLong))

	x, _ := m.Search("X")
	be.True(t, typing.Equals(x.(*sem.EnumMember).Value.Type, typing.PrimKindUbyte))
}

func TestForwardReferenceWithinModule(t *testing.T) {
	_, m := analyzeSource(t, `
		enum A { X = B.Y * 2, Z = B.max }
		enum B { Y = 4, W = C.V }
		enum C { V = 10 }
	`)
	be.Equal(t, errorMessages(), []string(nil))

	a := enumOf(t, m, "A")
	be.Equal(t, intValue(t, memberOf(t, a, "X")), int64(8))
	be.Equal(t, intValue(t, memberOf(t, a, "Z")), int64(10))
	be.True(t, typing.Equals(a.Memtype, typing.PrimKindInt))
}

func TestCircularMember(t *testing.T) {
	_, m := analyzeSource(t, `enum E { A = B, B = A }`)

	errs := errorMessages()
	be.Equal(t, len(errs), 1)
	be.True(t, strings.HasPrefix(errs[0], "circular reference to enum member"))

	e := enumOf(t, m, "E")
	be.True(t, e.Errors)
	for _, em := range e.Members {
		be.True(t, em.Errors)
	}
}

func TestMutualBaseType(t *testing.T) {
	f := newFixture(t, map[string]string{"app": `
		enum A { x = B.y }
		enum B : A { y }
	`})

	m := f.load("app")
	f.res.ResolveModule(m)

	// the first sweep defers instead of reporting anything
	be.Equal(t, len(errorMessages()), 0)
	be.True(t, m.Deferred.Len() > 0)

	f.res.RunDeferred()

	var circular int
	for _, msg := range errorMessages() {
		if strings.HasPrefix(msg, "circular reference") {
			circular++
		}
	}

	be.Equal(t, circular, 1)
	be.Equal(t, len(errorMessages()), 1)
	be.True(t, enumOf(t, m, "A").Errors || enumOf(t, m, "B").Errors)
	be.Equal(t, m.Deferred.Len(), 0)
}

func TestDeferralReachesSameState(t *testing.T) {
	deferred := `
		enum A { x = cast(int) B.b, y = 2 }
		enum B { b = 1, c = A.y }
	`
	direct := `
		enum B { b = 1, c = A.y }
		enum A { x = cast(int) B.b, y = 2 }
	`

	f := newFixture(t, map[string]string{"app": deferred})
	m := f.load("app")
	f.res.ResolveModule(m)

	// `c` needs `y` which waits for `x` (the base type of `A`) which is in
	// progress
	c := memberOf(t, enumOf(t, m, "B"), "c")
	be.Equal(t, c.State, sem.PassInit)
	be.True(t, m.Deferred.Len() > 0)

	f.res.RunDeferred()
	be.Equal(t, errorMessages(), []string(nil))

	_, other := analyzeSource(t, direct)
	be.Equal(t, errorMessages(), []string(nil))

	for _, name := range []string{"A", "B"} {
		got, want := enumOf(t, m, name), enumOf(t, other, name)
		be.True(t, got.Resolved())
		be.True(t, typing.Equals(got.Memtype, want.Memtype))

		for i, em := range got.Members {
			be.True(t, em.Resolved())
			be.Equal(t, intValue(t, em), intValue(t, want.Members[i]))
		}
	}
}

func TestIdempotentResolve(t *testing.T) {
	f, m := analyzeSource(t, `
		enum E : byte { A = 127, B }
		enum F { X = E.A }
	`)

	before := len(errorMessages())
	be.Equal(t, before, 1)

	for _, d := range m.Decls {
		be.Equal(t, f.res.Resolve(d, nil), sem.OutcomeNoop)
		for _, em := range d.(*sem.EnumDecl).Members {
			state := em.State
			be.Equal(t, f.res.Resolve(em, nil), sem.OutcomeNoop)
			be.Equal(t, em.State, state)
		}
	}

	be.Equal(t, f.res.ResolveModule(m), sem.OutcomeNoop)
	be.Equal(t, len(errorMessages()), before)
}
