package walk

import (
	"fmt"

	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
)

// walkExpr walks an expression producing its operand
func (w *Walker) walkExpr(expr syntax.Expr, sc *sem.Scope) operand {
	switch v := expr.(type) {
	case *syntax.IntLit, *syntax.FloatLit, *syntax.BoolLit:
		return valueOperand(w.walkLiteral(v, sc))
	case *sem.ConstExpr:
		return valueOperand(sem.Ok(v.C))
	case *syntax.Identifier:
		return w.lookup(v.Name, sc, v.Pos)
	case *syntax.BuiltinType:
		return typeOperand(builtinType(v))
	case *syntax.DotExpr:
		return w.walkDotExpr(v, sc)
	case *syntax.UnaryExpr:
		return valueOperand(w.walkUnaryExpr(v, sc))
	case *syntax.BinaryExpr:
		return valueOperand(w.walkBinaryExpr(v, sc))
	case *syntax.CastExpr:
		return valueOperand(w.walkCastExpr(v, sc))
	}

	logging.LogFatal(fmt.Sprintf("unable to evaluate expression of type %T", expr))
	return operand{}
}

// walkDotExpr walks a `.` access: a member of a package, module or enum or a
// property of a type or value
func (w *Walker) walkDotExpr(de *syntax.DotExpr, sc *sem.Scope) operand {
	root := w.walkExpr(de.Root, sc)

	switch {
	case root.decl != nil:
		return w.selectMember(root.decl, de.Field, sc, de.FieldPos)
	case root.typ != nil:
		return valueOperand(w.walkTypeProperty(root.typ, de.Field, sc, de.FieldPos))
	case root.val.Failed():
		return root
	}

	// properties of a value are the properties of its type
	return valueOperand(w.walkTypeProperty(root.val.Const().Type, de.Field, sc, de.FieldPos))
}

// walkCastExpr walks a `cast(T) operand` expression
func (w *Walker) walkCastExpr(ce *syntax.CastExpr, sc *sem.Scope) sem.Value {
	dt, kind := w.ResolveType(ce.Type, sc)
	if kind != sem.ErrNone {
		return sem.Fail(kind)
	}

	operand := w.Evaluate(ce.Operand, sc)
	if operand.Failed() {
		return operand
	}

	return w.Cast(operand.Const(), dt, sc, ce.Position())
}
