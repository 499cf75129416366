package syntax

import (
	"testing"

	"tarn/logging"

	"github.com/nalgeon/be"
)

func parse(t *testing.T, src string) (*File, bool) {
	t.Helper()
	logging.Initialize("", "silent")
	return ParseString(src, &logging.LogContext{ModuleName: "test", FilePath: "test.tarn"})
}

func TestParseModuleHeader(t *testing.T) {
	file, ok := parse(t, "module geo.shapes;")
	be.True(t, ok)
	be.Equal(t, file.ModuleName, []string{"geo", "shapes"})
	be.Equal(t, len(file.Decls), 0)
}

func TestParseEnum(t *testing.T) {
	file, ok := parse(t, `
		enum Color { Red, Green = 4, Blue, }
	`)
	be.True(t, ok)
	be.Equal(t, len(file.Decls), 1)

	ed := file.Decls[0].(*EnumDecl)
	be.Equal(t, ed.Name, "Color")
	be.True(t, ed.HasBody)
	be.True(t, ed.BaseType == nil)
	be.Equal(t, len(ed.Members), 3)
	be.Equal(t, ed.Members[0].Name, "Red")
	be.True(t, ed.Members[0].Init == nil)
	be.Equal(t, ed.Members[1].Init.(*IntLit).Value, "4")
	be.Equal(t, ed.Members[2].Name, "Blue")
}

func TestParseEnumForms(t *testing.T) {
	file, ok := parse(t, `
		enum Opaque;
		enum Small : byte { A = 126, B }
		enum : long { X, Y }
		enum { int I = 1, double D = 2.5 }
		enum Dep : other.Kind { Z }
	`)
	be.True(t, ok)
	be.Equal(t, len(file.Decls), 5)

	opaque := file.Decls[0].(*EnumDecl)
	be.True(t, !opaque.HasBody)
	be.True(t, opaque.Members == nil)

	small := file.Decls[1].(*EnumDecl)
	be.Equal(t, small.BaseType.(*BuiltinType).Kind, BYTE)

	anon := file.Decls[2].(*EnumDecl)
	be.Equal(t, anon.Name, "")
	be.Equal(t, anon.BaseType.(*BuiltinType).Kind, LONG)

	typed := file.Decls[3].(*EnumDecl)
	be.Equal(t, typed.Members[0].Type.(*BuiltinType).Kind, INT)
	be.Equal(t, typed.Members[1].Type.(*BuiltinType).Kind, DOUBLE)
	be.Equal(t, typed.Members[1].Init.(*FloatLit).Value, "2.5")

	dep := file.Decls[4].(*EnumDecl)
	be.Equal(t, dep.BaseType.(*NamedType).String(), "other.Kind")
}

func TestParseImport(t *testing.T) {
	file, ok := parse(t, `
		import a.b.c;
		public import io = std.io;
		static import pkg.mod : x = y, z;
	`)
	be.True(t, ok)
	be.Equal(t, len(file.Decls), 3)

	plain := file.Decls[0].(*ImportDecl)
	be.Equal(t, plain.Packages, []string{"a", "b"})
	be.Equal(t, plain.Module, "c")
	be.Equal(t, plain.Path(), "a.b.c")
	be.Equal(t, plain.Attrs().Visibility, -1)

	aliased := file.Decls[1].(*ImportDecl)
	be.Equal(t, aliased.Alias, "io")
	be.Equal(t, aliased.Path(), "std.io")
	be.Equal(t, aliased.Attrs().Visibility, PUBLIC)

	selective := file.Decls[2].(*ImportDecl)
	be.True(t, selective.Attrs().Static)
	be.Equal(t, len(selective.Binds), 2)
	be.Equal(t, selective.Binds[0].Alias, "x")
	be.Equal(t, selective.Binds[0].Name, "y")
	be.Equal(t, selective.Binds[1].Alias, "z")
	be.Equal(t, selective.Binds[1].Name, "z")
}

func TestParseExprPrecedence(t *testing.T) {
	file, ok := parse(t, "enum E { A = 1 + 2 * 3 == 7 && B.max > -1 }")
	be.True(t, ok)

	init := file.Decls[0].(*EnumDecl).Members[0].Init.(*BinaryExpr)
	be.Equal(t, init.Op, AND)

	eq := init.Lhs.(*BinaryExpr)
	be.Equal(t, eq.Op, EQ)

	sum := eq.Lhs.(*BinaryExpr)
	be.Equal(t, sum.Op, PLUS)
	be.Equal(t, sum.Rhs.(*BinaryExpr).Op, STAR)

	cmp := init.Rhs.(*BinaryExpr)
	be.Equal(t, cmp.Op, GT)
	be.Equal(t, cmp.Lhs.(*DotExpr).Field, "max")
	be.Equal(t, cmp.Rhs.(*UnaryExpr).Op, MINUS)
}

func TestParseCastAndProperties(t *testing.T) {
	file, ok := parse(t, "enum E { A = cast(ubyte) (int.max - 1), B = 0x_FF + 0b1010uL }")
	be.True(t, ok)

	members := file.Decls[0].(*EnumDecl).Members
	ce := members[0].Init.(*CastExpr)
	be.Equal(t, ce.Type.(*BuiltinType).Kind, UBYTE)

	diff := ce.Operand.(*BinaryExpr)
	prop := diff.Lhs.(*DotExpr)
	be.Equal(t, prop.Root.(*BuiltinType).Kind, INT)
	be.Equal(t, prop.Field, "max")

	sum := members[1].Init.(*BinaryExpr)
	be.Equal(t, sum.Lhs.(*IntLit).Value, "0xFF")
	be.Equal(t, sum.Rhs.(*IntLit).Value, "0b1010uL")
}

func TestScanNumbers(t *testing.T) {
	cases := []struct {
		src   string
		kind  int
		value string
	}{
		{"42", INTLIT, "42"},
		{"1_000", INTLIT, "1000"},
		{"7u", INTLIT, "7u"},
		{"7L", INTLIT, "7L"},
		{"1.5", FLOATLIT, "1.5"},
		{"1e-3", FLOATLIT, "1e-3"},
		{"2.5f", FLOATLIT, "2.5f"},
		{"3f", FLOATLIT, "3f"},
	}

	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			sc := NewScanner(stringsReader(c.src), &logging.LogContext{FilePath: "num.tarn"})
			tok, ok := sc.ReadToken()
			be.True(t, ok)
			be.Equal(t, tok.Kind, c.kind)
			be.Equal(t, tok.Value, c.value)
		})
	}
}

func TestScanComments(t *testing.T) {
	sc := NewScanner(stringsReader("// line\n/* block\n comment */ enum / "), &logging.LogContext{FilePath: "c.tarn"})

	tok, ok := sc.ReadToken()
	be.True(t, ok)
	be.Equal(t, tok.Kind, ENUM)
	be.Equal(t, tok.Position.StartLn, 3)

	tok, ok = sc.ReadToken()
	be.True(t, ok)
	be.Equal(t, tok.Kind, DIVIDE)

	tok, ok = sc.ReadToken()
	be.True(t, ok)
	be.Equal(t, tok.Kind, EOF)
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"enum E { A = }",
		"enum;",
		"import ;",
		"enum E { A = 1 + }",
		"enum E { A = 12abc }",
		"public private enum E { A }",
	}

	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, ok := parse(t, src)
			be.True(t, !ok)
			be.True(t, !logging.ShouldProceed())
		})
	}
}
