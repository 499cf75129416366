package walk

import (
	"fmt"

	"tarn/logging"
	"tarn/sem"
	"tarn/typing"
)

// operand is the result of walking an expression: a value, a type or a
// declaration that is not a value (a package, module or enum)
type operand struct {
	val  sem.Value
	typ  typing.DataType
	decl sem.Decl
}

func valueOperand(v sem.Value) operand {
	return operand{val: v}
}

func typeOperand(dt typing.DataType) operand {
	return operand{typ: dt}
}

func failOperand(kind sem.ErrorKind) operand {
	return operand{val: sem.Fail(kind)}
}

// isValue returns whether the operand is a (possibly failed) value
func (op operand) isValue() bool {
	return op.typ == nil && op.decl == nil
}

// valueOf converts an operand to a value reporting operands that are not values
func (w *Walker) valueOf(op operand, sc *sem.Scope, pos *logging.TextPosition) sem.Value {
	switch {
	case op.typ != nil:
		w.logError(sc, fmt.Sprintf("type `%s` is not an expression", typing.Repr(op.typ)), logging.LMKUsage, pos)
	case op.decl != nil:
		w.logError(sc, fmt.Sprintf("%s `%s` is not an expression", sem.KindName(op.decl), op.decl.Name()), logging.LMKUsage, pos)
	default:
		return op.val
	}

	return sem.Fail(sem.ErrEvaluation)
}

// walkSymbol produces the operand a declaration stands for requiring it if
// necessary
func (w *Walker) walkSymbol(d sem.Decl, sc *sem.Scope, pos *logging.TextPosition) operand {
	switch v := d.(type) {
	case *sem.EnumMember:
		if kind := w.res.Require(v); kind != sem.ErrNone {
			return failOperand(kind)
		}

		if v.Enum.Deprecated && sc.Parent != sem.Decl(v.Enum) {
			w.logWarning(sc, fmt.Sprintf("enum `%s` is deprecated", v.Enum.Name()), logging.LMKUsage, pos)
		}

		return valueOperand(sem.Ok(v.Value))
	case *sem.AliasDecl:
		if kind := w.res.Require(v); kind != sem.ErrNone {
			return failOperand(kind)
		}

		return w.walkSymbol(v.Target, sc, pos)
	case *sem.EnumDecl, *sem.Module, *sem.Package:
		return operand{decl: d}
	}

	logging.LogFatal(fmt.Sprintf("%s `%s` bound in a symbol table", sem.KindName(d), d.Name()))
	return operand{}
}

// lookup finds an unqualified name in the scope chain
func (w *Walker) lookup(name string, sc *sem.Scope, pos *logging.TextPosition) operand {
	if d, ok := sc.Lookup(name); ok {
		return w.walkSymbol(d, sc, pos)
	}

	w.logError(sc, fmt.Sprintf("undefined identifier `%s`", name), logging.LMKName, pos)
	return failOperand(sem.ErrUndefined)
}

// selectMember looks up a name inside a package, module or enum
func (w *Walker) selectMember(root sem.Decl, name string, sc *sem.Scope, pos *logging.TextPosition) operand {
	switch v := root.(type) {
	case *sem.Package:
		if d, ok := v.Search(name); ok {
			return w.walkSymbol(d, sc, pos)
		}

		w.logError(sc, fmt.Sprintf("package `%s` has no member named `%s`", v.Path, name), logging.LMKName, pos)
	case *sem.Module:
		if d, ok := v.SearchPublic(name, sc.Module); ok {
			return w.walkSymbol(d, sc, pos)
		}

		w.logError(sc, fmt.Sprintf("module `%s` has no visible symbol named `%s`", v.Path, name), logging.LMKName, pos)
	case *sem.EnumDecl:
		switch name {
		case "max", "min":
			return valueOperand(w.res.Extremum(v, name == "max", sc, pos))
		case "init":
			return valueOperand(w.res.Default(v, sc, pos))
		}

		em, kind := w.res.SearchEnum(v, name, sc, pos)
		if kind != sem.ErrNone {
			return failOperand(kind)
		}

		return w.walkSymbol(em, sc, pos)
	}

	return failOperand(sem.ErrUndefined)
}
