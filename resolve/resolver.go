package resolve

import (
	"fmt"

	"tarn/logging"
	"tarn/sem"
	"tarn/walk"
)

// Resolver is the main data structure used to facilitate declaration
// resolution.  It drives declarations through their pass states, resolving
// dependencies on demand and deferring declarations whose dependencies are not
// ready yet.  One resolver is shared by all the modules of a compilation.
type Resolver struct {
	eval   sem.Evaluator
	loader sem.Loader

	// registry is the package registry shared with the loader
	registry *sem.PackageRegistry

	// forced disables deferral: it is set during the final pass of
	// RunDeferred in which not-ready dependencies are resolved eagerly
	forced bool

	// importing marks the modules whose imports have been (or are being)
	// resolved
	importing map[*sem.Module]bool

	// modules lists every module the resolver has seen in the order it saw
	// them.  Their deferred queues are drained by RunDeferred.
	modules []*sem.Module
	seen    map[*sem.Module]bool
}

// NewResolver creates a new resolver loading imported modules through loader
func NewResolver(loader sem.Loader, registry *sem.PackageRegistry) *Resolver {
	r := &Resolver{
		loader:    loader,
		registry:  registry,
		importing: make(map[*sem.Module]bool),
		seen:      make(map[*sem.Module]bool),
	}

	r.eval = walk.NewWalker(r)
	return r
}

// Evaluator returns the constant evaluator used by the resolver
func (r *Resolver) Evaluator() sem.Evaluator {
	return r.eval
}

// Resolve implements sem.Resolver
func (r *Resolver) Resolve(d sem.Decl, sc *sem.Scope) sem.Outcome {
	if sc == nil {
		sc = d.Base().Scope
	}

	switch v := d.(type) {
	case *sem.EnumDecl:
		return r.resolveEnum(v, sc)
	case *sem.EnumMember:
		return r.resolveMember(v, sc)
	case *sem.Import:
		return r.resolveImport(v, sc)
	case *sem.AliasDecl:
		return r.resolveAlias(v, sc)
	case *sem.Module:
		return r.ResolveModule(v)
	case *sem.Package:
		// packages are created resolved
		return sem.OutcomeNoop
	}

	logging.LogFatal(fmt.Sprintf("unable to resolve declaration of type %T", d))
	return sem.OutcomeErrored
}

// Require implements sem.Resolver.  A dependency that is in progress is only
// resolved again (reporting a circular reference) during the forced pass: until
// then it is merely not ready.
func (r *Resolver) Require(d sem.Decl) sem.ErrorKind {
	db := d.Base()

	switch db.State {
	case sem.PassInit:
		r.Resolve(d, nil)
	case sem.PassInProgress:
		if r.forced {
			r.Resolve(d, nil)
		}
	}

	switch {
	case db.Errors:
		return sem.ErrPoisoned
	case db.State == sem.PassDone:
		return sem.ErrNone
	}

	return sem.ErrNotReady
}

// ResolveModule resolves the imports of a module then every one of its
// declarations.  The module is done once every declaration has been attempted:
// some may still be waiting on the deferred queue.
func (r *Resolver) ResolveModule(m *sem.Module) sem.Outcome {
	if m.State != sem.PassInit {
		return sem.OutcomeNoop
	}

	m.State = sem.PassInProgress
	r.track(m)
	r.resolveImports(m)

	for _, d := range m.Decls {
		if _, ok := d.(*sem.Import); !ok {
			r.Resolve(d, nil)
		}
	}

	m.State = sem.PassDone
	return sem.OutcomeResolved
}

// Modules returns every module the resolver has seen
func (r *Resolver) Modules() []*sem.Module {
	return r.modules
}

// track records a module so its deferred queue gets drained
func (r *Resolver) track(m *sem.Module) {
	if m != nil && !r.seen[m] {
		r.seen[m] = true
		r.modules = append(r.modules, m)
	}
}

// -----------------------------------------------------------------------------

// finish moves a declaration whose body ran to completion to done and computes
// the outcome of its resolution
func finish(d sem.Decl) sem.Outcome {
	db := d.Base()
	if db.State == sem.PassInProgress {
		db.State = sem.PassDone
	}

	if db.Errors {
		return sem.OutcomeErrored
	}

	return sem.OutcomeResolved
}

// deferDecl postpones the resolution of a declaration: its scope is cloned,
// its state reset and it is queued on its module's deferred queue.  During the
// forced pass, deferring is an unresolved forward reference.
func (r *Resolver) deferDecl(d sem.Decl, sc *sem.Scope) sem.Outcome {
	if r.forced {
		return r.report(
			d,
			sc,
			fmt.Sprintf("unresolved forward reference in %s `%s`", sem.KindName(d), d.Name()),
			sem.ErrForwardReference,
			d.Position(),
		)
	}

	db := d.Base()
	db.Scope = sc.Copy()
	db.State = sem.PassInit

	m := sem.ModuleOf(d)
	r.track(m)
	m.Deferred.Push(d)
	return sem.OutcomeDeferred
}

// report logs a compile error for a declaration and poisons it
func (r *Resolver) report(d sem.Decl, sc *sem.Scope, msg string, kind sem.ErrorKind, pos *logging.TextPosition) sem.Outcome {
	logging.LogCompileError(sem.LogContextOf(sc, d), msg, kind.LogKind(), pos)
	poison(d, kind)
	return sem.OutcomeErrored
}

// poison marks a declaration as errored propagating the error to the
// declarations that own or are owned by it
func poison(d sem.Decl, kind sem.ErrorKind) {
	switch v := d.(type) {
	case *sem.EnumDecl:
		v.Poison(kind)
	case *sem.EnumMember:
		v.Poison(kind)
		v.Enum.Poison(sem.ErrPoisoned)
	case *sem.Import:
		v.Poison(kind)
		for _, ad := range v.Binds {
			ad.Poison(kind)
		}
	default:
		d.Base().Poison(kind)
	}
}
