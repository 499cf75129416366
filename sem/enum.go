package sem

import (
	"tarn/ctfe"
	"tarn/logging"
	"tarn/syntax"
	"tarn/typing"
)

// EnumDecl is an enumeration declaration
type EnumDecl struct {
	DeclBase

	// BaseTypeExpr is the declared base type: nil if absent
	BaseTypeExpr syntax.TypeExpr

	// Memtype is the resolved base type: nil until declared or inferred
	Memtype typing.DataType

	// Type is the enum's nominal type: nil for anonymous enums
	Type *typing.EnumType

	// Members is owned by the enum in declaration order: nil for an enum
	// declared without a body
	Members []*EnumMember

	// Table holds the members of a named enum
	Table *SymbolTable

	// MemberScope is the retained scope members are resolved in
	MemberScope *Scope

	// Module is the module declaring the enum (non-owning)
	Module *Module

	max, min, init *Value
	maxInUse       bool
	minInUse       bool
}

// NewEnumDecl creates an enum declaration.  Members are attached with
// AddMember.
func NewEnumDecl(name string, pos *logging.TextPosition, ctx *logging.LogContext, m *Module) *EnumDecl {
	ed := &EnumDecl{DeclBase: newDeclBase(name, pos, ctx), Module: m}
	if name != "" {
		ed.Type = &typing.EnumType{Name: name, ModName: m.Path, Info: ed}
		ed.Table = NewSymbolTable()
	}

	return ed
}

// AddMember appends a member to the enum's member list
func (ed *EnumDecl) AddMember(em *EnumMember) {
	em.Enum = ed
	em.Index = len(ed.Members)
	em.Parent = ed
	ed.Members = append(ed.Members, em)
}

// BaseType implements typing.EnumInfo
func (ed *EnumDecl) BaseType() typing.DataType {
	return ed.Memtype
}

// Anonymous returns whether the enum has no name
func (ed *EnumDecl) Anonymous() bool {
	return ed.Type == nil
}

// IsForward returns whether the enum is a bare forward declaration: `enum E;`
func (ed *EnumDecl) IsForward() bool {
	return ed.Members == nil && ed.BaseTypeExpr == nil
}

// NominalType returns the type member values carry: the enum type for a named
// enum and the base type for an anonymous one
func (ed *EnumDecl) NominalType() typing.DataType {
	if ed.Type != nil {
		return ed.Type
	}

	return ed.Memtype
}

// Pending returns the members that have not finished resolving
func (ed *EnumDecl) Pending() []*EnumMember {
	var pending []*EnumMember
	for _, em := range ed.Members {
		if em.State != PassDone {
			pending = append(pending, em)
		}
	}

	return pending
}

// IsReady returns whether the enum can be used as a base type: it is resolved,
// has members and its base type is known.  Members other than the first may
// still be pending.
func (ed *EnumDecl) IsReady() bool {
	return ed.Resolved() && ed.Memtype != nil && ed.Members != nil
}

// Search looks up a member of a named enum by name without resolving anything
func (ed *EnumDecl) Search(name string) (*EnumMember, bool) {
	if ed.Table == nil {
		return nil, false
	}

	if d, ok := ed.Table.Lookup(name); ok {
		em, ok := d.(*EnumMember)
		return em, ok
	}

	return nil, false
}

// Memo returns the memoized result of a `.max` (max = true) or `.min` query
func (ed *EnumDecl) Memo(max bool) *Value {
	if max {
		return ed.max
	}

	return ed.min
}

// SetMemo memoizes the result of a `.max` or `.min` query
func (ed *EnumDecl) SetMemo(max bool, v Value) *Value {
	if max {
		ed.max = &v
	} else {
		ed.min = &v
	}

	return &v
}

// InUse returns the in-progress flag guarding `.max` or `.min`
func (ed *EnumDecl) InUse(max bool) *bool {
	if max {
		return &ed.maxInUse
	}

	return &ed.minInUse
}

// DefaultMemo returns the memoized `.init` value
func (ed *EnumDecl) DefaultMemo() *Value {
	return ed.init
}

// SetDefaultMemo memoizes the `.init` value
func (ed *EnumDecl) SetDefaultMemo(v Value) *Value {
	ed.init = &v
	return &v
}

// Poison marks the enum as errored along with every cached property
func (ed *EnumDecl) Poison(kind ErrorKind) {
	ed.DeclBase.Poison(kind)

	poisoned := Fail(ErrPoisoned)
	for _, memo := range []**Value{&ed.max, &ed.min, &ed.init} {
		if *memo == nil || !(*memo).Failed() {
			v := poisoned
			*memo = &v
		}
	}
}

// PoisonMembers poisons every member that has not finished resolving
func (ed *EnumDecl) PoisonMembers() {
	for _, em := range ed.Members {
		if !em.Errors && em.State != PassDone {
			em.Poison(ErrPoisoned)
		}
	}
}

// -----------------------------------------------------------------------------

// EnumMember is a member of an enum
type EnumMember struct {
	DeclBase

	// Enum is the enclosing enum (non-owning)
	Enum  *EnumDecl
	Index int

	// TypeExpr is the explicitly declared member type: nil if absent
	TypeExpr syntax.TypeExpr
	DeclType typing.DataType

	// Init is the initializer: nil if absent
	Init syntax.Expr

	// Value is the member's value in the enum's representation and Original
	// the same value before the conversion to the nominal type.  Both are set
	// once when the member resolves.
	Value    *ctfe.Const
	Original *ctfe.Const
}

// NewEnumMember creates an enum member
func NewEnumMember(name string, pos *logging.TextPosition, ctx *logging.LogContext) *EnumMember {
	return &EnumMember{DeclBase: newDeclBase(name, pos, ctx)}
}

// IsFirst returns whether the member is the first of its enum
func (em *EnumMember) IsFirst() bool {
	return em.Index == 0
}

// Prev returns the preceding member: nil for the first member
func (em *EnumMember) Prev() *EnumMember {
	if em.Index == 0 {
		return nil
	}

	return em.Enum.Members[em.Index-1]
}

// SetValue records the resolved values of the member
func (em *EnumMember) SetValue(value, original *ctfe.Const) {
	em.Value = value
	em.Original = original
}
