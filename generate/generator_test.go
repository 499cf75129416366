package generate

import (
	"strings"
	"testing"

	"tarn/logging"
	"tarn/resolve"
	"tarn/sem"
	"tarn/syntax"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/nalgeon/be"
)

func analyze(t *testing.T, src string) *sem.Module {
	t.Helper()
	logging.Initialize("", "silent")

	reg := sem.NewPackageRegistry()
	m := sem.NewModule([]string{"geo"}, "shapes", "geo/shapes.tarn")
	reg.AddModule(m)

	file, ok := syntax.ParseString(src, m.Ctx)
	if !ok {
		t.Fatal("syntax errors in test source")
	}

	res := resolve.NewResolver(nil, reg)
	resolve.Declare(m, file)
	res.ResolveModule(m)
	res.RunDeferred()
	return m
}

func TestGenerate(t *testing.T) {
	m := analyze(t, `
		enum Kind : ubyte { Square = 200, Circle }
		enum Scale { Unit = 1.5 }
		enum Flag : bool { Off }
		enum { Loose = 3 }
		enum Bad : byte { A = 127, B }
	`)

	g := NewGenerator()
	g.Generate([]*sem.Module{m})

	circle, ok := g.Global("geo.shapes.Kind.Circle")
	be.True(t, ok)
	be.True(t, circle.Immutable)
	be.True(t, types.Equal(circle.ContentType, types.I8))
	be.Equal(t, circle.Init.(*constant.Int).X.Int64(), int64(201))

	unit, ok := g.Global("geo.shapes.Scale.Unit")
	be.True(t, ok)
	be.True(t, types.Equal(unit.ContentType, types.Double))

	off, ok := g.Global("geo.shapes.Flag.Off")
	be.True(t, ok)
	be.True(t, types.Equal(off.ContentType, types.I1))

	// anonymous and errored enums are skipped
	_, ok = g.Global("geo.shapes..Loose")
	be.True(t, !ok)
	_, ok = g.Global("geo.shapes.Bad.A")
	be.True(t, !ok)
}

func TestWriteTo(t *testing.T) {
	m := analyze(t, `enum Kind { Square, Circle }`)

	g := NewGenerator()
	g.Generate([]*sem.Module{m})

	var sb strings.Builder
	_, err := g.WriteTo(&sb)
	be.Err(t, err, nil)

	out := sb.String()
	be.True(t, strings.Contains(out, "@geo.shapes.Kind.Square = constant i32 0"))
	be.True(t, strings.Contains(out, "@geo.shapes.Kind.Circle = constant i32 1"))
}
