package sem

import (
	"tarn/logging"
)

// PassState is the resolution state of a declaration
type PassState int

// Enumeration of pass states.  A declaration moves from Init to InProgress to
// Done.  Deferral moves an InProgress declaration back to Init; nothing leaves
// Done.
const (
	PassInit PassState = iota
	PassInProgress
	PassDone
)

func (ps PassState) String() string {
	switch ps {
	case PassInit:
		return "init"
	case PassInProgress:
		return "in-progress"
	default:
		return "done"
	}
}

// Visibility is the protection level of a declaration
type Visibility int

// Enumeration of visibilities
const (
	VisPrivate Visibility = iota
	VisPackage
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisPackage:
		return "package"
	default:
		return "public"
	}
}

// Decl is a declaration subject to resolution.  The set of declaration kinds
// is closed: EnumDecl, EnumMember, Import, AliasDecl, Module and Package.
type Decl interface {
	// Name returns the declared name (empty for anonymous declarations)
	Name() string

	// Position returns where the declaration's name appears
	Position() *logging.TextPosition

	// Base returns the state shared by all declarations
	Base() *DeclBase

	isDecl()
}

// DeclBase contains the resolution state common to all declarations
type DeclBase struct {
	name string
	pos  *logging.TextPosition

	// State is the declaration's pass state
	State PassState

	// Errors is set once a diagnostic has been reported for (or propagated
	// into) the declaration.  It is never cleared.
	Errors bool

	// failure is the first error kind the declaration was poisoned with
	failure ErrorKind

	// Scope is the resolution context captured for the declaration: set at
	// collection and replaced by a copy whenever the declaration is deferred
	Scope *Scope

	// Parent is the enclosing declaration (non-owning)
	Parent Decl

	Visibility Visibility
	Deprecated bool

	// Ctx is the log context of the file the declaration appears in
	Ctx *logging.LogContext

	// queued indicates that the declaration is on its module's deferred queue
	queued bool
}

func newDeclBase(name string, pos *logging.TextPosition, ctx *logging.LogContext) DeclBase {
	return DeclBase{name: name, pos: pos, Ctx: ctx, Visibility: VisPublic}
}

func (db *DeclBase) Name() string {
	return db.name
}

func (db *DeclBase) Position() *logging.TextPosition {
	return db.pos
}

func (db *DeclBase) Base() *DeclBase {
	return db
}

func (db *DeclBase) isDecl() {}

// Poison marks the declaration as errored and done.  Poisoning is idempotent:
// the first kind is kept.
func (db *DeclBase) Poison(kind ErrorKind) {
	if !db.Errors {
		db.failure = kind
	}

	db.Errors = true
	db.State = PassDone
}

// Failure returns the error kind the declaration was poisoned with or ErrNone
func (db *DeclBase) Failure() ErrorKind {
	return db.failure
}

// Resolved returns whether the declaration finished resolving without errors
func (db *DeclBase) Resolved() bool {
	return db.State == PassDone && !db.Errors
}

// ModuleOf returns the module that owns a declaration by walking its parents
func ModuleOf(d Decl) *Module {
	for d != nil {
		if m, ok := d.(*Module); ok {
			return m
		}

		d = d.Base().Parent
	}

	return nil
}

// KindName returns the user-facing name of a declaration's kind
func KindName(d Decl) string {
	switch d.(type) {
	case *EnumDecl:
		return "enum"
	case *EnumMember:
		return "enum member"
	case *Import:
		return "import"
	case *AliasDecl:
		return "alias"
	case *Module:
		return "module"
	case *Package:
		return "package"
	}

	return "declaration"
}
