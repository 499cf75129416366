package walk

import (
	"tarn/ctfe"
	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
)

// binaryOps maps operator tokens to the folding operators
var binaryOps = map[int]ctfe.Op{
	syntax.PLUS:   ctfe.OpAdd,
	syntax.MINUS:  ctfe.OpSub,
	syntax.STAR:   ctfe.OpMul,
	syntax.DIVIDE: ctfe.OpDiv,
	syntax.MOD:    ctfe.OpMod,
	syntax.LSHIFT: ctfe.OpShl,
	syntax.RSHIFT: ctfe.OpShr,
	syntax.AMP:    ctfe.OpAnd,
	syntax.PIPE:   ctfe.OpOr,
	syntax.BXOR:   ctfe.OpXor,
	syntax.EQ:     ctfe.OpEq,
	syntax.NEQ:    ctfe.OpNe,
	syntax.LT:     ctfe.OpLt,
	syntax.GT:     ctfe.OpGt,
	syntax.LTEQ:   ctfe.OpLe,
	syntax.GTEQ:   ctfe.OpGe,
	syntax.AND:    ctfe.OpLogAnd,
	syntax.OR:     ctfe.OpLogOr,
}

var unaryOps = map[int]ctfe.Op{
	syntax.MINUS: ctfe.OpNeg,
	syntax.PLUS:  ctfe.OpPos,
	syntax.COMPL: ctfe.OpCompl,
	syntax.NOT:   ctfe.OpNot,
}

// walkBinaryExpr folds a binary operator application.  Both operands are always
// evaluated: `&&` and `||` do not short-circuit semantic analysis.
func (w *Walker) walkBinaryExpr(be *syntax.BinaryExpr, sc *sem.Scope) sem.Value {
	op, ok := binaryOps[be.Op]
	if !ok {
		logging.LogFatal("unknown binary operator: " + syntax.OperatorString(be.Op))
	}

	lhs := w.Evaluate(be.Lhs, sc)
	rhs := w.Evaluate(be.Rhs, sc)

	// a pending operand takes precedence so the expression is retried
	switch {
	case lhs.NotReady():
		return lhs
	case rhs.NotReady():
		return rhs
	case lhs.Failed():
		return lhs
	case rhs.Failed():
		return rhs
	}

	c, err := ctfe.Binary(op, lhs.Const(), rhs.Const())
	if err != nil {
		w.logError(sc, err.Error(), logging.LMKConst, be.Position())
		return sem.Fail(sem.ErrEvaluation)
	}

	return sem.Ok(c)
}

// walkUnaryExpr folds a prefix operator application
func (w *Walker) walkUnaryExpr(ue *syntax.UnaryExpr, sc *sem.Scope) sem.Value {
	op, ok := unaryOps[ue.Op]
	if !ok {
		logging.LogFatal("unknown unary operator: " + syntax.OperatorString(ue.Op))
	}

	operand := w.Evaluate(ue.Operand, sc)
	if operand.Failed() {
		return operand
	}

	c, err := ctfe.Unary(op, operand.Const())
	if err != nil {
		w.logError(sc, err.Error(), logging.LMKConst, ue.Position())
		return sem.Fail(sem.ErrEvaluation)
	}

	return sem.Ok(c)
}
