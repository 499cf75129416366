package walk

import (
	"tarn/ctfe"
	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
)

// walkLiteral folds a literal to a constant
func (w *Walker) walkLiteral(lit syntax.Expr, sc *sem.Scope) sem.Value {
	var (
		c   *ctfe.Const
		err error
	)

	switch v := lit.(type) {
	case *syntax.IntLit:
		c, err = ctfe.ParseIntLiteral(v.Value)
	case *syntax.FloatLit:
		c, err = ctfe.ParseFloatLiteral(v.Value)
	case *syntax.BoolLit:
		c = ctfe.NewBool(v.Value)
	}

	if err != nil {
		w.logError(sc, err.Error(), logging.LMKConst, lit.Position())
		return sem.Fail(sem.ErrEvaluation)
	}

	return sem.Ok(c)
}
