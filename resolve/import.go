package resolve

import (
	"fmt"

	"tarn/sem"
)

// resolveImports resolves every import of a module.  It is called before any
// declaration of the module resolves so lookups can see the imported symbols.
func (r *Resolver) resolveImports(m *sem.Module) {
	if m == nil || r.importing[m] {
		return
	}

	r.importing[m] = true
	r.track(m)

	for _, imp := range m.Imports {
		r.Resolve(imp, nil)
	}
}

// resolveImport loads the module named by an import and binds the names the
// import introduces in the importing scope
func (r *Resolver) resolveImport(imp *sem.Import, sc *sem.Scope) sem.Outcome {
	switch imp.State {
	case sem.PassDone:
		return sem.OutcomeNoop
	case sem.PassInProgress:
		return r.report(
			imp,
			sc,
			fmt.Sprintf("circular reference to import of `%s`", imp.Path()),
			sem.ErrCircularReference,
			imp.PathPos,
		)
	}

	imp.State = sem.PassInProgress
	imp.Scope = sc

	from := imp.Importer
	if imp.Path() == from.Path {
		return r.report(
			imp,
			sc,
			fmt.Sprintf("module `%s` cannot import itself", from.Path),
			sem.ErrModuleLoad,
			imp.PathPos,
		)
	}

	m, err := r.loader.LoadModule(imp.Packages, imp.ModName, from)
	if err != nil {
		return r.report(
			imp,
			sc,
			fmt.Sprintf("unable to load module `%s`: %s", imp.Path(), err),
			sem.ErrModuleLoad,
			imp.PathPos,
		)
	}

	imp.Mod = m
	r.track(m)

	// the leftmost package is used for qualified lookups
	imp.Pkg = m
	if len(imp.Packages) > 0 {
		left, _, ok := r.registry.Resolve(imp.Packages)
		if !ok {
			return r.report(
				imp,
				sc,
				fmt.Sprintf("`%s` does not name a package", imp.Packages[0]),
				sem.ErrModuleLoad,
				imp.PathPos,
			)
		}

		imp.Pkg = left
	}

	switch {
	case imp.Alias != "":
		r.bind(imp, sc, imp.Alias, m)
	case imp.BindsPackage():
		r.bind(imp, sc, imp.Pkg.Name(), imp.Pkg)
	}

	out := finish(imp)

	// lookups through the imported module need its own imports
	r.resolveImports(m)
	return out
}

// bind inserts the name introduced by an import in the importing scope.  The
// same package may be bound by several imports.
func (r *Resolver) bind(imp *sem.Import, sc *sem.Scope, name string, d sem.Decl) {
	table := sc.InsertionTable()
	if prev, ok := table.Insert(name, d); !ok {
		msg := fmt.Sprintf("import `%s` conflicts with %s `%s`", imp.Path(), sem.KindName(prev), name)
		if pos := prev.Position(); pos != nil {
			msg += fmt.Sprintf(" declared at %s", pos)
		}

		r.report(imp, sc, msg, sem.ErrNameCollision, imp.PathPos)
	}
}
