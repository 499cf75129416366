package syntax

import (
	"strings"

	"tarn/logging"
)

// ASTNode represents a piece of the Abstract Syntax Tree (AST)
type ASTNode interface {
	// Position should span the entire ASTNode (meaningfully)
	Position() *logging.TextPosition
}

// File is the AST of a single source file
type File struct {
	Context *logging.LogContext

	// ModuleName is the dotted name from the `module` header: nil if the file
	// has no header
	ModuleName []string
	ModulePos  *logging.TextPosition

	Decls []Decl
}

// Attributes are the attributes preceding a declaration
type Attributes struct {
	// Visibility is one of PUBLIC, PRIVATE, PACKAGE or -1 if unspecified
	Visibility int

	Static     bool
	Deprecated bool
}

// Decl is a top level declaration
type Decl interface {
	ASTNode

	Attrs() Attributes
}

// DeclBase contains the fields common to all declarations
type DeclBase struct {
	Attributes Attributes
	Pos        *logging.TextPosition
}

// Attrs returns the declaration's attributes
func (db *DeclBase) Attrs() Attributes {
	return db.Attributes
}

// Position returns the position of the declaration's keyword and name
func (db *DeclBase) Position() *logging.TextPosition {
	return db.Pos
}

// ImportDecl is an `import` declaration
type ImportDecl struct {
	DeclBase

	// Alias renames the whole module: empty if absent
	Alias string

	Packages []string
	Module   string
	PathPos  *logging.TextPosition

	Binds []*ImportBind
}

// Path returns the dotted path of the imported module
func (id *ImportDecl) Path() string {
	return strings.Join(append(append([]string{}, id.Packages...), id.Module), ".")
}

// ImportBind is a selective import: `alias = name` or just `name`
type ImportBind struct {
	Name  string
	Alias string
	Pos   *logging.TextPosition
}

// EnumDecl is an `enum` declaration
type EnumDecl struct {
	DeclBase

	// Name is empty for an anonymous enum
	Name string

	// BaseType is nil if no base type is declared
	BaseType TypeExpr

	// Members is nil if the enum has no body (forward declaration)
	Members []*EnumMember
	HasBody bool
}

// EnumMember is a single member of an enum body
type EnumMember struct {
	// Type is nil unless an explicit member type is declared
	Type TypeExpr

	Name string
	Pos  *logging.TextPosition

	// Init is nil if the member has no initializer
	Init Expr
}

// Position returns the position of the member's name
func (em *EnumMember) Position() *logging.TextPosition {
	return em.Pos
}

// -----------------------------------------------------------------------------

// Expr is an expression.  Expressions can be built outside of the parser (eg.
// synthesized comparisons over already evaluated constants) so long as the
// evaluator knows how to handle them.
type Expr interface {
	ASTNode
}

// TypeExpr is a type label: either a builtin type or a (possibly qualified)
// name of a declared type
type TypeExpr interface {
	Expr
	typeExpr()
}

// BuiltinType is a type keyword such as `int`
type BuiltinType struct {
	Kind int
	Pos  *logging.TextPosition
}

func (bt *BuiltinType) Position() *logging.TextPosition { return bt.Pos }
func (bt *BuiltinType) typeExpr()                       {}

// NamedType is a dotted name referring to a declared type
type NamedType struct {
	Names []string
	Pos   *logging.TextPosition
}

func (nt *NamedType) Position() *logging.TextPosition { return nt.Pos }
func (nt *NamedType) typeExpr()                       {}

// String returns the dotted form of the name
func (nt *NamedType) String() string {
	return strings.Join(nt.Names, ".")
}

// IntLit is an integer literal (value includes prefix and suffix)
type IntLit struct {
	Value string
	Pos   *logging.TextPosition
}

func (il *IntLit) Position() *logging.TextPosition { return il.Pos }

// FloatLit is a floating literal (value includes suffix)
type FloatLit struct {
	Value string
	Pos   *logging.TextPosition
}

func (fl *FloatLit) Position() *logging.TextPosition { return fl.Pos }

// BoolLit is `true` or `false`
type BoolLit struct {
	Value bool
	Pos   *logging.TextPosition
}

func (bl *BoolLit) Position() *logging.TextPosition { return bl.Pos }

// Identifier is a bare name
type Identifier struct {
	Name string
	Pos  *logging.TextPosition
}

func (id *Identifier) Position() *logging.TextPosition { return id.Pos }

// DotExpr is a property or member access: `Root.Field`
type DotExpr struct {
	Root     Expr
	Field    string
	FieldPos *logging.TextPosition
}

func (de *DotExpr) Position() *logging.TextPosition {
	return logging.TextPositionFromRange(de.Root.Position(), de.FieldPos)
}

// UnaryExpr is a prefix operator application
type UnaryExpr struct {
	Op      int
	OpPos   *logging.TextPosition
	Operand Expr
}

func (ue *UnaryExpr) Position() *logging.TextPosition {
	return logging.TextPositionFromRange(ue.OpPos, ue.Operand.Position())
}

// BinaryExpr is an infix operator application
type BinaryExpr struct {
	Op       int
	Lhs, Rhs Expr
}

func (be *BinaryExpr) Position() *logging.TextPosition {
	return logging.TextPositionFromRange(be.Lhs.Position(), be.Rhs.Position())
}

// CastExpr is an explicit conversion: `cast(T) operand`
type CastExpr struct {
	Type    TypeExpr
	Operand Expr
	Pos     *logging.TextPosition
}

func (ce *CastExpr) Position() *logging.TextPosition {
	return logging.TextPositionFromRange(ce.Pos, ce.Operand.Position())
}
