package resolve

import (
	"fmt"

	"tarn/ctfe"
	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
	"tarn/typing"
)

// resolveMember computes the value of an enum member
func (r *Resolver) resolveMember(em *sem.EnumMember, sc *sem.Scope) sem.Outcome {
	ed := em.Enum

	switch em.State {
	case sem.PassDone:
		return sem.OutcomeNoop
	case sem.PassInProgress:
		return r.report(
			em,
			sc,
			fmt.Sprintf("circular reference to enum member `%s`", em.Name()),
			sem.ErrCircularReference,
			em.Position(),
		)
	}

	// members are only scoped once the header of their enum is done: resolving
	// the enum resolves the member as well
	if ed.State != sem.PassDone {
		r.Require(ed)

		switch {
		case em.State == sem.PassDone:
			return finish(em)
		case ed.Errors:
			poison(em, sem.ErrPoisoned)
			return sem.OutcomeErrored
		case ed.State != sem.PassDone || em.State != sem.PassInit:
			// the enum is waiting on the deferred queue
			return sem.OutcomeDeferred
		}
	}

	if sc == nil {
		sc = ed.MemberScope
	}

	r.resolveImports(ed.Module)
	em.State = sem.PassInProgress
	em.Scope = sc

	// the base type of a named enum comes from its first member
	if !em.IsFirst() && ed.Memtype == nil && !ed.Anonymous() {
		if out, ok := r.requireDep(em, ed.Members[0], sc); !ok {
			return out
		}
	}

	if em.TypeExpr != nil {
		if out, ok := r.resolveMemberType(em, sc); !ok {
			return out
		}
	}

	var (
		value, original *ctfe.Const
		out             sem.Outcome
		ok              bool
	)

	switch {
	case em.Init != nil:
		value, original, out, ok = r.initializedValue(em, sc)
	case em.IsFirst():
		value, original, out, ok = r.firstValue(em, sc)
	default:
		value, original, out, ok = r.successorValue(em, sc)
	}

	if !ok {
		return out
	}

	if em.State == sem.PassInProgress {
		em.SetValue(value, original)
	}

	return finish(em)
}

// requireDep requires a dependency of a member.  It returns false if the member
// cannot proceed: the returned outcome is the member's.
func (r *Resolver) requireDep(em *sem.EnumMember, dep sem.Decl, sc *sem.Scope) (sem.Outcome, bool) {
	kind := r.Require(dep)

	// the member may have been poisoned by a cycle through the dependency
	if em.Errors {
		return sem.OutcomeErrored, false
	}

	switch kind {
	case sem.ErrNone:
		return sem.OutcomeResolved, true
	case sem.ErrNotReady:
		return r.deferDecl(em, sc), false
	}

	poison(em, sem.ErrPoisoned)
	return sem.OutcomeErrored, false
}

// checkValue turns a failed value into the outcome of a member.  It returns
// false if the member cannot proceed.
func (r *Resolver) checkValue(em *sem.EnumMember, v sem.Value, sc *sem.Scope) (sem.Outcome, bool) {
	switch {
	case em.Errors:
		return sem.OutcomeErrored, false
	case v.NotReady():
		return r.deferDecl(em, sc), false
	case v.Failed():
		// the evaluator has already reported the error
		poison(em, v.Kind())
		return sem.OutcomeErrored, false
	}

	return sem.OutcomeResolved, true
}

// resolveMemberType resolves the explicitly declared type of a member.  Only
// members of an anonymous enum without a base type may declare a type and
// they must be initialized.
func (r *Resolver) resolveMemberType(em *sem.EnumMember, sc *sem.Scope) (sem.Outcome, bool) {
	ed := em.Enum

	if !ed.Anonymous() || ed.BaseTypeExpr != nil {
		return r.report(
			em,
			sc,
			"a member type is only allowed in an anonymous enum without a base type",
			sem.ErrTypeMismatch,
			em.TypeExpr.Position(),
		), false
	}

	if em.Init == nil {
		return r.report(
			em,
			sc,
			fmt.Sprintf("enum member `%s` of type `%s` must be initialized", em.Name(), typeLabel(em.TypeExpr)),
			sem.ErrTypeMismatch,
			em.Position(),
		), false
	}

	dt, kind := r.eval.ResolveType(em.TypeExpr, sc)
	if kind != sem.ErrNone {
		out, _ := r.checkValue(em, sem.Fail(kind), sc)
		return out, false
	}

	if typing.IsVoid(dt) {
		return r.report(em, sc, "enum member type must not be `void`", sem.ErrTypeMismatch, em.TypeExpr.Position()), false
	}

	em.DeclType = dt
	return sem.OutcomeResolved, true
}

// initializedValue computes the value of a member with an initializer
func (r *Resolver) initializedValue(em *sem.EnumMember, sc *sem.Scope) (*ctfe.Const, *ctfe.Const, sem.Outcome, bool) {
	ed := em.Enum

	v := r.eval.Evaluate(em.Init, sc)
	if out, ok := r.checkValue(em, v, sc); !ok {
		return nil, nil, out, false
	}

	c := v.Const()

	// infer the base type from the first member
	if em.IsFirst() && ed.Memtype == nil && !ed.Anonymous() {
		ed.Memtype = c.Type
		if typing.IsError(ed.Memtype) {
			poison(em, sem.ErrPoisoned)
			return nil, nil, sem.OutcomeErrored, false
		}
	}

	switch {
	case ed.Memtype != nil:
		v = r.eval.ImplicitCast(c, ed.Memtype, sc, em.Init.Position())
		if out, ok := r.checkValue(em, v, sc); !ok {
			return nil, nil, out, false
		}

		original := v.Const()
		if ed.Anonymous() {
			return original, original, sem.OutcomeResolved, true
		}

		return original.Retype(ed.Type), original, sem.OutcomeResolved, true
	case em.DeclType != nil:
		v = r.eval.ImplicitCast(c, em.DeclType, sc, em.Init.Position())
		if out, ok := r.checkValue(em, v, sc); !ok {
			return nil, nil, out, false
		}

		return v.Const(), v.Const(), sem.OutcomeResolved, true
	}

	return c, c, sem.OutcomeResolved, true
}

// firstValue computes the value of a first member without an initializer: zero
func (r *Resolver) firstValue(em *sem.EnumMember, sc *sem.Scope) (*ctfe.Const, *ctfe.Const, sem.Outcome, bool) {
	ed := em.Enum

	if ed.Memtype == nil && !ed.Anonymous() {
		ed.Memtype = typing.PrimKindInt
	}

	c := ctfe.NewInt64(typing.PrimKindInt, 0)
	if ed.Memtype != nil {
		v := r.eval.ImplicitCast(c, ed.Memtype, sc, em.Position())
		if out, ok := r.checkValue(em, v, sc); !ok {
			return nil, nil, out, false
		}

		c = v.Const()
	}

	if ed.Anonymous() {
		return c, c, sem.OutcomeResolved, true
	}

	return c.Retype(ed.Type), c, sem.OutcomeResolved, true
}

// successorValue computes the value of a member without an initializer
// following another member: the previous value plus one.  Overflow is detected
// before adding by comparing the previous value with the maximum of its type.
func (r *Resolver) successorValue(em *sem.EnumMember, sc *sem.Scope) (*ctfe.Const, *ctfe.Const, sem.Outcome, bool) {
	ed := em.Enum
	prev := em.Prev()

	if out, ok := r.requireDep(em, prev, sc); !ok {
		return nil, nil, out, false
	}

	eprev := prev.Value

	// the maximum of a value of the enum's own type is the maximum of its base
	tprev := eprev.Type
	if !ed.Anonymous() && typing.Equals(tprev, ed.Type) {
		tprev = ed.Memtype
	}

	v := r.maxOf(tprev, sc, em.Position())
	if out, ok := r.checkValue(em, v, sc); !ok {
		return nil, nil, out, false
	}

	emax := v.Const()

	v = r.eval.Evaluate(binaryExpr(syntax.EQ, eprev, emax, em.Position()), sc)
	if out, ok := r.checkValue(em, v, sc); !ok {
		return nil, nil, out, false
	}

	if v.Const().Bool() {
		memtype := ed.Memtype
		if memtype == nil {
			memtype = tprev
		}

		return nil, nil, r.report(
			em,
			sc,
			fmt.Sprintf(
				"initialization with `%s+1` causes overflow for type `%s`",
				qualifiedMember(prev), typing.Repr(typing.InnerType(memtype)),
			),
			sem.ErrOverflow,
			em.Position(),
		), false
	}

	value, out, ok := r.increment(em, eprev, sc)
	if !ok {
		return nil, nil, out, false
	}

	// the original value is the original value of the predecessor plus one,
	// left in the type the addition produces
	original := value
	if prev.Original != nil {
		v = r.eval.Evaluate(binaryExpr(syntax.PLUS, prev.Original, ctfe.NewInt64(typing.PrimKindInt, 1), em.Position()), sc)
		if out, ok := r.checkValue(em, v, sc); !ok {
			return nil, nil, out, false
		}

		original = v.Const()
	}

	if typing.IsFloating(value.Type) {
		v = r.eval.Evaluate(binaryExpr(syntax.EQ, value, eprev, em.Position()), sc)
		if out, ok := r.checkValue(em, v, sc); !ok {
			return nil, nil, out, false
		}

		if v.Const().Bool() {
			return nil, nil, r.report(
				em,
				sc,
				fmt.Sprintf("enum member `%s` has inexact value, due to loss of precision", em.Name()),
				sem.ErrPrecisionLoss,
				em.Position(),
			), false
		}
	}

	return value, original, sem.OutcomeResolved, true
}

// increment computes `c + 1` converted back to the type of c
func (r *Resolver) increment(em *sem.EnumMember, c *ctfe.Const, sc *sem.Scope) (*ctfe.Const, sem.Outcome, bool) {
	one := ctfe.NewInt64(typing.PrimKindInt, 1)

	v := r.eval.Evaluate(binaryExpr(syntax.PLUS, c, one, em.Position()), sc)
	if out, ok := r.checkValue(em, v, sc); !ok {
		return nil, out, false
	}

	v = r.eval.Cast(v.Const(), c.Type, sc, em.Position())
	if out, ok := r.checkValue(em, v, sc); !ok {
		return nil, out, false
	}

	return v.Const(), sem.OutcomeResolved, true
}

// maxOf computes the `.max` property of a type
func (r *Resolver) maxOf(dt typing.DataType, sc *sem.Scope, pos *logging.TextPosition) sem.Value {
	if et, ok := dt.(*typing.EnumType); ok {
		return r.Extremum(et.Info.(*sem.EnumDecl), true, sc, pos)
	}

	if pt, ok := dt.(typing.PrimType); ok {
		if c, ok := ctfe.MaxOf(pt); ok {
			return sem.Ok(c)
		}
	}

	logging.LogCompileError(
		sem.LogContextOf(sc, nil),
		fmt.Sprintf("no property `max` for type `%s`", typing.Repr(dt)),
		logging.LMKProp,
		pos,
	)
	return sem.Fail(sem.ErrTypeMismatch)
}

// binaryExpr synthesizes a binary expression over two constants
func binaryExpr(op int, lhs, rhs *ctfe.Const, pos *logging.TextPosition) syntax.Expr {
	return &syntax.BinaryExpr{
		Op:  op,
		Lhs: &sem.ConstExpr{C: lhs, Pos: pos},
		Rhs: &sem.ConstExpr{C: rhs, Pos: pos},
	}
}

// qualifiedMember renders the name of a member qualified by its enum
func qualifiedMember(em *sem.EnumMember) string {
	if em.Enum.Anonymous() {
		return em.Name()
	}

	return em.Enum.Name() + "." + em.Name()
}
