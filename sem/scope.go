package sem

// StorageClass is a set of storage class flags carried by a scope
type StorageClass int

// Storage class flags
const (
	StcStatic StorageClass = 1 << iota
	StcDeprecated
)

// Scope is a node in the lexical scope chain.  Besides lookup, a scope carries
// the context declarations resolve in: the parent declaration, the default
// visibility and storage class of declarations and whether expressions are
// being evaluated at compile time.  Scopes captured for later resolution are
// copies so no later pass can change what a retried resolution observes.
type Scope struct {
	// Enclosing is the next scope out (non-owning)
	Enclosing *Scope

	// ScopeSym is the declaration owning Table: nil for scopes without a table
	ScopeSym Decl
	Table    *SymbolTable

	// Module is the module the scope belongs to
	Module *Module

	Parent     Decl
	Stc        StorageClass
	Visibility Visibility
	CTFE       bool
}

// NewModuleScope creates the root scope of a module
func NewModuleScope(m *Module) *Scope {
	return &Scope{
		ScopeSym:   m,
		Table:      m.Table,
		Module:     m,
		Parent:     m,
		Visibility: VisPublic,
	}
}

// Push creates a child scope for the members of sym.  The child inherits the
// context of its parent.
func (s *Scope) Push(sym Decl, table *SymbolTable) *Scope {
	return &Scope{
		Enclosing:  s,
		ScopeSym:   sym,
		Table:      table,
		Module:     s.Module,
		Parent:     sym,
		Stc:        s.Stc,
		Visibility: s.Visibility,
		CTFE:       s.CTFE,
	}
}

// WithAttrs returns a copy of the scope with a different visibility and
// storage class
func (s *Scope) WithAttrs(vis Visibility, stc StorageClass) *Scope {
	ns := *s
	ns.Visibility = vis
	ns.Stc = stc
	return &ns
}

// StartCTFE returns a copy of the scope in which expressions are evaluated at
// compile time
func (s *Scope) StartCTFE() *Scope {
	ns := *s
	ns.CTFE = true
	return &ns
}

// Copy clones the scope chain.  Symbol tables are shared: they belong to the
// declarations that own them, not to the context.
func (s *Scope) Copy() *Scope {
	if s == nil {
		return nil
	}

	ns := *s
	ns.Enclosing = s.Enclosing.Copy()
	return &ns
}

// Lookup searches the scope chain for a name.  Module scopes also search the
// public symbols of the modules imported by a plain import, in import order.
func (s *Scope) Lookup(name string) (Decl, bool) {
	for sc := s; sc != nil; sc = sc.Enclosing {
		if sc.Table != nil {
			if d, ok := sc.Table.Lookup(name); ok {
				return d, true
			}
		}

		if m, ok := sc.ScopeSym.(*Module); ok {
			if d, ok := m.SearchImported(name); ok {
				return d, true
			}
		}
	}

	return nil, false
}

// InsertionTable returns the closest symbol table of the scope chain: where
// declarations made in this scope are bound
func (s *Scope) InsertionTable() *SymbolTable {
	for sc := s; sc != nil; sc = sc.Enclosing {
		if sc.Table != nil {
			return sc.Table
		}
	}

	return nil
}
