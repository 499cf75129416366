package walk

import (
	"fmt"

	"tarn/ctfe"
	"tarn/logging"
	"tarn/sem"
	"tarn/typing"
)

// ImplicitCast implements sem.Evaluator
func (w *Walker) ImplicitCast(c *ctfe.Const, dest typing.DataType, sc *sem.Scope, pos *logging.TextPosition) sem.Value {
	if kind := w.requireBase(dest, sc, pos); kind != sem.ErrNone {
		return sem.Fail(kind)
	}

	if conv, ok := ctfe.ImplicitConvert(c, dest); ok {
		return sem.Ok(conv)
	}

	w.logError(
		sc,
		fmt.Sprintf(
			"cannot implicitly convert expression `%s` of type `%s` to `%s`",
			c, typing.Repr(c.Type), typing.Repr(dest),
		),
		logging.LMKTyping,
		pos,
	)
	return sem.Fail(sem.ErrTypeMismatch)
}

// Cast implements sem.Evaluator
func (w *Walker) Cast(c *ctfe.Const, dest typing.DataType, sc *sem.Scope, pos *logging.TextPosition) sem.Value {
	if kind := w.requireBase(dest, sc, pos); kind != sem.ErrNone {
		return sem.Fail(kind)
	}

	if conv, ok := ctfe.Cast(c, dest); ok {
		return sem.Ok(conv)
	}

	w.logError(
		sc,
		fmt.Sprintf(
			"cannot cast expression `%s` of type `%s` to `%s`",
			c, typing.Repr(c.Type), typing.Repr(dest),
		),
		logging.LMKTyping,
		pos,
	)
	return sem.Fail(sem.ErrTypeMismatch)
}

// requireBase makes sure the representation of an enum destination type is
// known before converting to it
func (w *Walker) requireBase(dest typing.DataType, sc *sem.Scope, pos *logging.TextPosition) sem.ErrorKind {
	if et, ok := dest.(*typing.EnumType); ok && et.Info.BaseType() == nil {
		if _, kind := w.res.BaseType(et.Info.(*sem.EnumDecl), sc, pos); kind != sem.ErrNone {
			return kind
		}
	}

	if typing.IsError(typing.InnerType(dest)) {
		return sem.ErrPoisoned
	}

	return sem.ErrNone
}
