package resolve

import (
	"fmt"

	"tarn/sem"
	"tarn/syntax"
	"tarn/typing"
)

// resolveEnum resolves the header of an enum (its base type) and then each of
// its members in order.  The enum is done before its members are: a member
// waiting on a dependency is deferred on its own.
func (r *Resolver) resolveEnum(ed *sem.EnumDecl, sc *sem.Scope) sem.Outcome {
	switch ed.State {
	case sem.PassDone:
		return sem.OutcomeNoop
	case sem.PassInProgress:
		var out sem.Outcome
		if ed.BaseTypeExpr != nil {
			out = r.report(
				ed,
				sc,
				fmt.Sprintf("circular reference to enum base type `%s`", typeLabel(ed.BaseTypeExpr)),
				sem.ErrCircularReference,
				ed.BaseTypeExpr.Position(),
			)
		} else {
			out = r.report(
				ed,
				sc,
				fmt.Sprintf("circular reference to enum `%s`", ed.Name()),
				sem.ErrCircularReference,
				ed.Position(),
			)
		}

		ed.PoisonMembers()
		return out
	}

	// `enum E;` only declares the name
	if ed.IsForward() {
		ed.State = sem.PassDone
		return sem.OutcomeResolved
	}

	r.resolveImports(ed.Module)

	ed.State = sem.PassInProgress
	ed.Scope = sc
	ed.Visibility = sc.Visibility
	ed.Deprecated = sc.Stc&sem.StcDeprecated != 0

	if ed.BaseTypeExpr != nil {
		if out, ok := r.resolveBaseType(ed, sc); !ok {
			return out
		}
	}

	// `enum E : int;` declares an opaque enum
	if ed.Members == nil {
		return finish(ed)
	}

	if len(ed.Members) == 0 {
		out := r.report(
			ed,
			sc,
			fmt.Sprintf("enum `%s` must have at least one member", ed.Name()),
			sem.ErrTypeMismatch,
			ed.Position(),
		)

		return out
	}

	// members of an anonymous enum are declared in the enclosing table
	msc := sc.Push(ed, ed.Table).StartCTFE()
	ed.MemberScope = msc
	for _, em := range ed.Members {
		if em.State == sem.PassInit {
			em.Scope = msc
		}
	}

	out := finish(ed)
	for _, em := range ed.Members {
		r.Resolve(em, nil)
	}

	if ed.Errors {
		return sem.OutcomeErrored
	}

	return out
}

// resolveBaseType resolves the declared base type of an enum.  It returns false
// if the enum cannot proceed: the returned outcome is the enum's.
func (r *Resolver) resolveBaseType(ed *sem.EnumDecl, sc *sem.Scope) (sem.Outcome, bool) {
	dt, kind := r.eval.ResolveType(ed.BaseTypeExpr, sc)

	// the enum may have been poisoned by a cycle through its base type
	if ed.Errors {
		return sem.OutcomeErrored, false
	}

	switch kind {
	case sem.ErrNone:
	case sem.ErrNotReady:
		return r.deferDecl(ed, sc), false
	default:
		return r.poisonHeader(ed), false
	}

	if base, ok := dt.(*typing.EnumType); ok {
		bed := base.Info.(*sem.EnumDecl)

		if bed.State == sem.PassInit {
			r.Resolve(bed, nil)
		}

		if ed.Errors {
			return sem.OutcomeErrored, false
		}

		if !bed.IsReady() && !bed.Errors {
			if !r.forced {
				return r.deferDecl(ed, sc), false
			}

			r.Require(bed)
			if bed.Memtype == nil && len(bed.Members) > 0 {
				r.Require(bed.Members[0])
			}

			if ed.Errors {
				return sem.OutcomeErrored, false
			}

			if !bed.IsReady() && !bed.Errors {
				out := r.report(
					ed,
					sc,
					fmt.Sprintf("base enum `%s` of enum `%s` is forward referenced", bed.Name(), ed.Name()),
					sem.ErrForwardReference,
					ed.BaseTypeExpr.Position(),
				)

				ed.PoisonMembers()
				return out, false
			}
		}

		if bed.Errors {
			return r.poisonHeader(ed), false
		}
	}

	if typing.IsVoid(dt) {
		r.report(ed, sc, "base type must not be `void`", sem.ErrTypeMismatch, ed.BaseTypeExpr.Position())
		dt = typing.ErrorType{}
	}

	ed.Memtype = dt
	if typing.IsError(dt) {
		return r.poisonHeader(ed), false
	}

	return sem.OutcomeResolved, true
}

// poisonHeader propagates the failure of an enum's base type to the enum and
// to every member
func (r *Resolver) poisonHeader(ed *sem.EnumDecl) sem.Outcome {
	if ed.Memtype == nil {
		ed.Memtype = typing.ErrorType{}
	}

	ed.Poison(sem.ErrPoisoned)
	ed.PoisonMembers()
	return sem.OutcomeErrored
}

// typeLabel renders a type label for diagnostics
func typeLabel(texpr syntax.TypeExpr) string {
	switch v := texpr.(type) {
	case *syntax.BuiltinType:
		return syntax.OperatorString(v.Kind)
	case *syntax.NamedType:
		return v.String()
	}

	return "?"
}
