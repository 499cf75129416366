package sem

import (
	"tarn/ctfe"
	"tarn/logging"
)

// ErrorKind classifies why a declaration or value failed to resolve
type ErrorKind int

// Enumeration of error kinds
const (
	ErrNone ErrorKind = iota

	// ErrNotReady signals that a dependency has not been resolved yet.  It is
	// never reported: it makes the dependent defer.
	ErrNotReady

	// ErrPoisoned marks a failure whose diagnostic was already reported for a
	// dependency
	ErrPoisoned

	ErrCircularReference
	ErrForwardReference
	ErrTypeMismatch
	ErrOverflow
	ErrPrecisionLoss
	ErrNameCollision
	ErrModuleLoad
	ErrUndefined
	ErrEvaluation
)

var errorKindNames = [...]string{
	"none",
	"not ready",
	"poisoned",
	"circular reference",
	"unresolved forward reference",
	"type mismatch",
	"overflow",
	"precision loss",
	"name collision",
	"module load failure",
	"undefined",
	"evaluation failure",
}

func (k ErrorKind) String() string {
	return errorKindNames[k]
}

// LogKind returns the message kind diagnostics of this error kind are logged as
func (k ErrorKind) LogKind() int {
	switch k {
	case ErrCircularReference, ErrForwardReference:
		return logging.LMKDef
	case ErrTypeMismatch:
		return logging.LMKTyping
	case ErrOverflow, ErrPrecisionLoss, ErrEvaluation:
		return logging.LMKConst
	case ErrNameCollision, ErrUndefined:
		return logging.LMKName
	case ErrModuleLoad:
		return logging.LMKImport
	}

	return logging.LMKUsage
}

// Value is the result of evaluating or querying a constant: either a constant
// or the kind of error that prevented one
type Value struct {
	c    *ctfe.Const
	kind ErrorKind
}

// Ok wraps a successfully computed constant
func Ok(c *ctfe.Const) Value {
	return Value{c: c}
}

// Fail creates a failed value
func Fail(kind ErrorKind) Value {
	return Value{kind: kind}
}

// Const returns the constant or nil if the value failed
func (v Value) Const() *ctfe.Const {
	return v.c
}

// Failed returns whether the value holds an error
func (v Value) Failed() bool {
	return v.c == nil
}

// Kind returns the error kind of a failed value
func (v Value) Kind() ErrorKind {
	if v.c == nil && v.kind == ErrNone {
		return ErrEvaluation
	}

	return v.kind
}

// NotReady returns whether the value failed only because a dependency is
// pending
func (v Value) NotReady() bool {
	return v.c == nil && v.kind == ErrNotReady
}

// Poisoned converts a failure of a dependency into the failure of its
// dependent: reported failures become ErrPoisoned, NotReady stays as is
func (v Value) Poisoned() Value {
	if v.NotReady() {
		return v
	}

	return Fail(ErrPoisoned)
}

// -----------------------------------------------------------------------------

// ConstExpr wraps an already evaluated constant so it can take part in
// synthesized expressions (eg. comparisons built by the resolver)
type ConstExpr struct {
	C   *ctfe.Const
	Pos *logging.TextPosition
}

func (ce *ConstExpr) Position() *logging.TextPosition {
	return ce.Pos
}
