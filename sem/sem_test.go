package sem

import (
	"testing"

	"github.com/nalgeon/be"
)

func newEnum(m *Module, name string, members ...string) *EnumDecl {
	ed := NewEnumDecl(name, nil, m.Ctx, m)
	for _, mem := range members {
		em := NewEnumMember(mem, nil, m.Ctx)
		ed.AddMember(em)
		ed.Table.Insert(mem, em)
	}

	m.AddDecl(ed)
	m.Table.Insert(name, ed)
	return ed
}

func TestSymbolTableInsert(t *testing.T) {
	m := NewModule(nil, "a", "a.tarn")
	st := NewSymbolTable()

	e1 := NewEnumDecl("E", nil, nil, m)
	e2 := NewEnumDecl("E", nil, nil, m)

	prev, ok := st.Insert("E", e1)
	be.True(t, ok)
	be.True(t, prev == Decl(e1))

	// re-inserting the same declaration is allowed
	prev, ok = st.Insert("E", e1)
	be.True(t, ok)
	be.True(t, prev == Decl(e1))

	prev, ok = st.Insert("E", e2)
	be.True(t, !ok)
	be.True(t, prev == Decl(e1))

	d, ok := st.Lookup("E")
	be.True(t, ok)
	be.True(t, d == e1)
	be.Equal(t, st.Len(), 1)
	be.Equal(t, st.Names(), []string{"E"})
}

func TestPoisonIsTerminal(t *testing.T) {
	m := NewModule(nil, "a", "a.tarn")
	ed := newEnum(m, "E", "A", "B")

	ed.SetMemo(true, Fail(ErrOverflow))
	ed.Poison(ErrCircularReference)
	ed.Poison(ErrOverflow)

	be.Equal(t, ed.State, PassDone)
	be.True(t, ed.Errors)
	be.Equal(t, ed.Failure(), ErrCircularReference)
	be.True(t, !ed.Resolved())

	// the memoized failure is kept, the others are poisoned
	be.Equal(t, ed.Memo(true).Kind(), ErrOverflow)
	be.Equal(t, ed.Memo(false).Kind(), ErrPoisoned)
	be.Equal(t, ed.DefaultMemo().Kind(), ErrPoisoned)

	ed.PoisonMembers()
	for _, em := range ed.Members {
		be.True(t, em.Errors)
		be.Equal(t, em.State, PassDone)
	}
}

func TestEnumMembers(t *testing.T) {
	m := NewModule(nil, "a", "a.tarn")
	ed := newEnum(m, "Color", "Red", "Green", "Blue")

	be.True(t, ed.Members[0].IsFirst())
	be.True(t, ed.Members[2].Prev() == ed.Members[1])
	be.True(t, ed.Members[0].Prev() == nil)
	be.Equal(t, len(ed.Pending()), 3)
	be.True(t, !ed.IsReady())
	be.True(t, !ed.Anonymous())
	be.True(t, !ed.IsForward())

	em, ok := ed.Search("Green")
	be.True(t, ok)
	be.Equal(t, em.Index, 1)

	_, ok = ed.Search("Purple")
	be.True(t, !ok)

	fwd := NewEnumDecl("F", nil, nil, m)
	be.True(t, fwd.IsForward())

	anon := NewEnumDecl("", nil, nil, m)
	be.True(t, anon.Anonymous())
	be.True(t, anon.NominalType() == nil)
}

func TestDeferredQueue(t *testing.T) {
	m := NewModule(nil, "a", "a.tarn")
	ed := newEnum(m, "E", "A")

	q := &DeferredQueue{}
	q.Push(ed)
	q.Push(ed.Members[0])
	q.Push(ed)
	be.Equal(t, q.Len(), 2)

	items := q.Take()
	be.Equal(t, len(items), 2)
	be.True(t, items[0] == Decl(ed))
	be.Equal(t, q.Len(), 0)

	// taken declarations may be queued again
	q.Push(ed)
	be.Equal(t, q.Len(), 1)
}

func TestScopeLookup(t *testing.T) {
	m := NewModule(nil, "a", "a.tarn")
	ed := newEnum(m, "E", "A")

	sc := m.RootScope.Push(ed, ed.Table).StartCTFE()
	be.True(t, sc.CTFE)
	be.True(t, !m.RootScope.CTFE)
	be.True(t, sc.Parent == Decl(ed))

	d, ok := sc.Lookup("A")
	be.True(t, ok)
	be.True(t, d == Decl(ed.Members[0]))

	d, ok = sc.Lookup("E")
	be.True(t, ok)
	be.True(t, d == Decl(ed))

	_, ok = sc.Lookup("B")
	be.True(t, !ok)

	be.True(t, sc.InsertionTable() == ed.Table)
	be.True(t, m.RootScope.Push(nil, nil).InsertionTable() == m.Table)
}

func TestScopeCopy(t *testing.T) {
	m := NewModule(nil, "a", "a.tarn")
	ed := newEnum(m, "E", "A")

	sc := m.RootScope.Push(ed, ed.Table)
	cp := sc.Copy()

	be.True(t, cp != sc)
	be.True(t, cp.Enclosing != sc.Enclosing)
	be.True(t, cp.Table == sc.Table)

	// mutating the original never changes the copy
	sc.Enclosing.Visibility = VisPrivate
	be.Equal(t, cp.Enclosing.Visibility, VisPublic)
}

func TestImportedLookup(t *testing.T) {
	lib := NewModule([]string{"std"}, "lib", "std/lib.tarn")
	pub := newEnum(lib, "Pub", "X")
	priv := newEnum(lib, "Priv", "Y")
	priv.Visibility = VisPrivate
	pkg := newEnum(lib, "Pkg", "Z")
	pkg.Visibility = VisPackage

	app := NewModule(nil, "app", "app.tarn")
	imp := NewImport([]string{"std"}, "lib", nil, app.Ctx, app)
	app.AddDecl(imp)

	// unresolved imports expose nothing
	_, ok := app.RootScope.Lookup("Pub")
	be.True(t, !ok)

	_, err := imp.Search("Pub")
	be.Err(t, err, ErrImportNotResolved)

	imp.Mod = lib
	imp.State = PassDone

	d, ok := app.RootScope.Lookup("Pub")
	be.True(t, ok)
	be.True(t, d == Decl(pub))

	_, ok = app.RootScope.Lookup("Priv")
	be.True(t, !ok)

	_, ok = app.RootScope.Lookup("Pkg")
	be.True(t, !ok)

	d, err = imp.Search("Pub")
	be.Err(t, err, nil)
	be.True(t, d == Decl(pub))

	_, err = imp.Search("Priv")
	be.Err(t, err, ErrNotFound)

	// package visibility is granted within the same package
	sibling := NewModule([]string{"std"}, "other", "std/other.tarn")
	d, ok = lib.SearchPublic("Pkg", sibling)
	be.True(t, ok)
	be.True(t, d == Decl(pkg))
}

func TestPublicImportReexport(t *testing.T) {
	a := NewModule(nil, "a", "a.tarn")
	b := NewModule(nil, "b", "b.tarn")
	ea := newEnum(a, "EA", "X")

	// b publicly imports a and a imports b back
	ib := NewImport(nil, "a", nil, b.Ctx, b)
	ib.Visibility = VisPublic
	ib.Mod, ib.State = a, PassDone
	b.AddDecl(ib)

	ia := NewImport(nil, "b", nil, a.Ctx, a)
	ia.Visibility = VisPublic
	ia.Mod, ia.State = b, PassDone
	a.AddDecl(ia)

	d, ok := b.SearchPublic("EA", nil)
	be.True(t, ok)
	be.True(t, d == Decl(ea))

	_, ok = b.SearchPublic("Missing", nil)
	be.True(t, !ok)
}

func TestSelectiveImport(t *testing.T) {
	app := NewModule(nil, "app", "app.tarn")
	imp := NewImport([]string{"std"}, "lib", nil, app.Ctx, app)
	imp.Visibility = VisPublic

	ad := imp.AddBind("Color", "C", nil)
	be.Equal(t, ad.Name(), "C")
	be.Equal(t, ad.SourceName, "Color")
	be.Equal(t, ad.Visibility, VisPublic)
	be.True(t, ad.Import == imp)

	be.True(t, !imp.ImportsAll())
	be.True(t, !imp.BindsPackage())
	be.Equal(t, imp.Path(), "std.lib")
}

func TestPackageRegistry(t *testing.T) {
	reg := NewPackageRegistry()

	m := NewModule([]string{"a", "b"}, "c", "a/b/c.tarn")
	be.True(t, reg.AddModule(m))
	be.True(t, m.Pkg != nil)
	be.Equal(t, m.Pkg.Path, "a.b")

	left, parent, ok := reg.Resolve([]string{"a", "b"})
	be.True(t, ok)
	be.Equal(t, left.Name(), "a")
	be.True(t, parent == m.Pkg)

	d, ok := reg.Lookup([]string{"a", "b", "c"})
	be.True(t, ok)
	be.True(t, d == Decl(m))

	// a second module under the same path is rejected
	be.True(t, !reg.AddModule(NewModule([]string{"a", "b"}, "c", "other/a/b/c.tarn")))

	// a module becomes a package's module when the package is needed
	pm := NewModule([]string{"a"}, "x", "a/x/package.tarn")
	be.True(t, reg.AddModule(pm))

	_, parent, ok = reg.Resolve([]string{"a", "x"})
	be.True(t, ok)
	be.True(t, parent.Mod == pm)

	d, ok = reg.Lookup([]string{"a", "x"})
	be.True(t, ok)
	be.True(t, d == Decl(pm))
}

func TestOutcomeProgress(t *testing.T) {
	be.True(t, OutcomeNoop.Progress())
	be.True(t, OutcomeResolved.Progress())
	be.True(t, OutcomeErrored.Progress())
	be.True(t, !OutcomeDeferred.Progress())
}

func TestValue(t *testing.T) {
	v := Fail(ErrNotReady)
	be.True(t, v.NotReady())
	be.True(t, v.Poisoned().NotReady())

	v = Fail(ErrOverflow)
	be.Equal(t, v.Poisoned().Kind(), ErrPoisoned)
	be.Equal(t, Value{}.Kind(), ErrEvaluation)
}
