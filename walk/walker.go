package walk

import (
	"tarn/sem"
	"tarn/syntax"
)

// Walker is the constant evaluator: it walks expressions and type labels
// folding them to compile-time constants.  It asks the resolver for every
// declaration it depends on so dependencies resolve on demand.
type Walker struct {
	res sem.Resolver
}

// NewWalker creates a new walker resolving dependencies through res
func NewWalker(res sem.Resolver) *Walker {
	return &Walker{res: res}
}

// Evaluate implements sem.Evaluator
func (w *Walker) Evaluate(expr syntax.Expr, sc *sem.Scope) sem.Value {
	return w.valueOf(w.walkExpr(expr, sc), sc, expr.Position())
}
