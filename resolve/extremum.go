package resolve

import (
	"fmt"

	"tarn/ctfe"
	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
	"tarn/typing"
)

// Extremum implements sem.Resolver.  The result is memoized on the enum unless
// the enum is not ready yet.
func (r *Resolver) Extremum(ed *sem.EnumDecl, max bool, sc *sem.Scope, pos *logging.TextPosition) sem.Value {
	id := "min"
	if max {
		id = "max"
	}

	inUse := ed.InUse(max)
	if *inUse {
		// the query in progress memoizes its own result
		return r.queryError(ed, sc, fmt.Sprintf("recursive definition of `.%s` property", id), sem.ErrCircularReference, pos)
	}

	if memo := ed.Memo(max); memo != nil {
		return *memo
	}

	*inUse = true
	defer func() { *inUse = false }()

	if v, ok := r.requireMembers(ed, sc, pos, fmt.Sprintf("is forward referenced looking for `.%s`", id)); !ok {
		if v.NotReady() {
			return v
		}

		return r.memoExtremum(ed, max, v)
	}

	if !typing.IsIntegral(ed.Memtype) {
		v := r.queryError(
			ed,
			sc,
			fmt.Sprintf(
				"enum `%s` has no `.%s` property because base type `%s` is not an integral type",
				ed.Name(), id, typing.Repr(ed.Memtype),
			),
			sem.ErrTypeMismatch,
			pos,
		)

		return r.memoExtremum(ed, max, v)
	}

	op := syntax.LT
	if max {
		op = syntax.GT
	}

	var acc *ctfe.Const
	for _, em := range ed.Members {
		if acc == nil {
			acc = em.Value
			continue
		}

		v := r.eval.Evaluate(binaryExpr(op, em.Value, acc, em.Position()), ed.MemberScope)
		if v.Failed() {
			return r.memoExtremum(ed, max, v.Poisoned())
		}

		if v.Const().Bool() {
			acc = em.Value
		}
	}

	return *ed.SetMemo(max, sem.Ok(acc))
}

// memoExtremum memoizes a failed extremum unless the enum has been poisoned in
// which case the poisoned memo stands
func (r *Resolver) memoExtremum(ed *sem.EnumDecl, max bool, v sem.Value) sem.Value {
	if memo := ed.Memo(max); memo != nil {
		return *memo
	}

	return *ed.SetMemo(max, v)
}

// Default implements sem.Resolver: `.init` is the value of the first member
func (r *Resolver) Default(ed *sem.EnumDecl, sc *sem.Scope, pos *logging.TextPosition) sem.Value {
	if memo := ed.DefaultMemo(); memo != nil {
		return *memo
	}

	switch r.Require(ed) {
	case sem.ErrNotReady:
		return sem.Fail(sem.ErrNotReady)
	case sem.ErrPoisoned:
		return r.memoDefault(ed, sem.Fail(sem.ErrPoisoned))
	}

	if len(ed.Members) == 0 {
		v := r.queryError(ed, sc, fmt.Sprintf("forward reference of `%s.init`", ed.Name()), sem.ErrForwardReference, pos)
		return r.memoDefault(ed, v)
	}

	first := ed.Members[0]
	switch r.Require(first) {
	case sem.ErrNone:
		return r.memoDefault(ed, sem.Ok(first.Value))
	case sem.ErrNotReady:
		return sem.Fail(sem.ErrNotReady)
	}

	return r.memoDefault(ed, sem.Fail(sem.ErrPoisoned))
}

// memoDefault memoizes the `.init` value unless one is already memoized
func (r *Resolver) memoDefault(ed *sem.EnumDecl, v sem.Value) sem.Value {
	if memo := ed.DefaultMemo(); memo != nil {
		return *memo
	}

	return *ed.SetDefaultMemo(v)
}

// requireMembers makes sure every member of an enum is resolved.  On failure,
// it returns the value the query should fail with.
func (r *Resolver) requireMembers(ed *sem.EnumDecl, sc *sem.Scope, pos *logging.TextPosition, fwdMsg string) (sem.Value, bool) {
	switch r.Require(ed) {
	case sem.ErrNotReady:
		return sem.Fail(sem.ErrNotReady), false
	case sem.ErrPoisoned:
		return sem.Fail(sem.ErrPoisoned), false
	}

	if len(ed.Members) == 0 {
		return r.queryError(ed, sc, fmt.Sprintf("enum `%s` %s", ed.Name(), fwdMsg), sem.ErrForwardReference, pos), false
	}

	for _, em := range ed.Pending() {
		if r.Require(em) == sem.ErrNotReady {
			return sem.Fail(sem.ErrNotReady), false
		}
	}

	if ed.Errors {
		return sem.Fail(sem.ErrPoisoned), false
	}

	return sem.Value{}, true
}

// queryError reports a failed property query.  The failure belongs to the
// query: the enum itself stays valid and only the queried property fails.
func (r *Resolver) queryError(ed *sem.EnumDecl, sc *sem.Scope, msg string, kind sem.ErrorKind, pos *logging.TextPosition) sem.Value {
	logging.LogCompileError(sem.LogContextOf(sc, ed), msg, kind.LogKind(), pos)
	return sem.Fail(kind)
}

// -----------------------------------------------------------------------------

// BaseType implements sem.Resolver.  The base type of a named enum with members
// defaults to `int` if it is needed before it can be inferred.
func (r *Resolver) BaseType(ed *sem.EnumDecl, sc *sem.Scope, pos *logging.TextPosition) (typing.DataType, sem.ErrorKind) {
	if ed.Memtype != nil {
		return ed.Memtype, sem.ErrNone
	}

	if ed.State == sem.PassInit {
		r.Resolve(ed, nil)
	}

	switch {
	case ed.Memtype != nil:
		return ed.Memtype, sem.ErrNone
	case ed.Errors:
		return nil, sem.ErrPoisoned
	case ed.BaseTypeExpr == nil && !ed.Anonymous() && ed.Members != nil:
		ed.Memtype = typing.PrimKindInt
		return ed.Memtype, sem.ErrNone
	case !r.forced && ed.State != sem.PassDone:
		return nil, sem.ErrNotReady
	}

	logging.LogCompileError(
		sem.LogContextOf(sc, ed),
		fmt.Sprintf("enum `%s` is forward referenced looking for base type", ed.Name()),
		logging.LMKDef,
		pos,
	)
	return nil, sem.ErrForwardReference
}

// SearchEnum implements sem.Resolver
func (r *Resolver) SearchEnum(ed *sem.EnumDecl, name string, sc *sem.Scope, pos *logging.TextPosition) (*sem.EnumMember, sem.ErrorKind) {
	if kind := r.Require(ed); kind == sem.ErrNotReady {
		return nil, kind
	}

	if ed.Members == nil && !ed.Errors {
		logging.LogCompileError(
			sem.LogContextOf(sc, ed),
			fmt.Sprintf("enum `%s` is forward referenced when looking for `%s`", ed.Name(), name),
			logging.LMKDef,
			pos,
		)
		return nil, sem.ErrForwardReference
	}

	if em, ok := ed.Search(name); ok {
		return em, sem.ErrNone
	}

	if ed.Errors {
		return nil, sem.ErrPoisoned
	}

	logging.LogCompileError(
		sem.LogContextOf(sc, ed),
		fmt.Sprintf("no property `%s` for type `%s`", name, ed.Name()),
		logging.LMKProp,
		pos,
	)
	return nil, sem.ErrUndefined
}
