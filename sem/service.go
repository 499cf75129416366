package sem

import (
	"tarn/ctfe"
	"tarn/logging"
	"tarn/syntax"
	"tarn/typing"
)

// Outcome is the result of a call to Resolver.Resolve.  Every outcome other
// than OutcomeDeferred is progress.
type Outcome int

// Enumeration of outcomes
const (
	// OutcomeNoop means the declaration was already done
	OutcomeNoop Outcome = iota

	OutcomeResolved
	OutcomeDeferred
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeResolved:
		return "resolved"
	case OutcomeDeferred:
		return "deferred"
	default:
		return "errored"
	}
}

// Progress returns whether the outcome changed anything
func (o Outcome) Progress() bool {
	return o != OutcomeDeferred
}

// Resolver drives declarations through their pass states.  Diagnostics are
// reported in the log context of sc (or of the declaration when sc is nil).
type Resolver interface {
	// Resolve resolves a declaration in place.  A nil scope means the scope
	// captured on the declaration.
	Resolve(d Decl, sc *Scope) Outcome

	// Require resolves a dependency on demand and classifies the result:
	// ErrNone if it is usable, ErrNotReady if it is pending and ErrPoisoned if
	// it failed
	Require(d Decl) ErrorKind

	// Extremum computes the `.max` (max = true) or `.min` property of an enum
	Extremum(ed *EnumDecl, max bool, sc *Scope, pos *logging.TextPosition) Value

	// Default computes the `.init` property of an enum
	Default(ed *EnumDecl, sc *Scope, pos *logging.TextPosition) Value

	// BaseType computes only the base type of an enum
	BaseType(ed *EnumDecl, sc *Scope, pos *logging.TextPosition) (typing.DataType, ErrorKind)

	// SearchEnum looks up a member of an enum resolving the enum if necessary
	SearchEnum(ed *EnumDecl, name string, sc *Scope, pos *logging.TextPosition) (*EnumMember, ErrorKind)
}

// Evaluator is the constant evaluation service used by the resolver.  All of
// its methods report their own diagnostics: a failed Value never needs another
// one except for NotReady which is never reported.
type Evaluator interface {
	// Evaluate folds an expression to a constant
	Evaluate(expr syntax.Expr, sc *Scope) Value

	// ResolveType resolves a type label
	ResolveType(texpr syntax.TypeExpr, sc *Scope) (typing.DataType, ErrorKind)

	// ImplicitCast converts a constant to dest if it may be done implicitly
	ImplicitCast(c *ctfe.Const, dest typing.DataType, sc *Scope, pos *logging.TextPosition) Value

	// Cast explicitly converts a constant to dest
	Cast(c *ctfe.Const, dest typing.DataType, sc *Scope, pos *logging.TextPosition) Value
}

// Loader locates, parses and declares the module named by an import
type Loader interface {
	// LoadModule returns the module with the given package path and name as
	// seen from the importing module.  The error is already suitable for
	// display to the user.
	LoadModule(pkgs []string, name string, from *Module) (*Module, error)
}

// LogContextOf returns the log context diagnostics made in a scope should use
func LogContextOf(sc *Scope, d Decl) *logging.LogContext {
	if sc != nil && sc.Module != nil {
		return sc.Module.Ctx
	}

	if d != nil {
		return d.Base().Ctx
	}

	return nil
}
