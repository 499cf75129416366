package sem

// SymbolTable maps identifiers to declarations.  Iteration follows insertion
// order.
type SymbolTable struct {
	tab   map[string]Decl
	order []string
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{tab: make(map[string]Decl)}
}

// Insert binds name to d.  If name is already bound to a different
// declaration, the existing declaration is returned along with false.
// Re-inserting the declaration already bound (eg. a shared package node) is
// allowed.
func (st *SymbolTable) Insert(name string, d Decl) (Decl, bool) {
	if prev, ok := st.tab[name]; ok {
		return prev, prev == d
	}

	st.tab[name] = d
	st.order = append(st.order, name)
	return d, true
}

// Lookup finds the declaration bound to name
func (st *SymbolTable) Lookup(name string) (Decl, bool) {
	d, ok := st.tab[name]
	return d, ok
}

// Len returns the number of bound names
func (st *SymbolTable) Len() int {
	return len(st.order)
}

// Names returns the bound names in insertion order
func (st *SymbolTable) Names() []string {
	return append([]string(nil), st.order...)
}

// Decls returns the bound declarations in insertion order
func (st *SymbolTable) Decls() []Decl {
	decls := make([]Decl, len(st.order))
	for i, name := range st.order {
		decls[i] = st.tab[name]
	}

	return decls
}

// Replace rebinds an existing name to a new declaration
func (st *SymbolTable) Replace(name string, d Decl) {
	if _, ok := st.tab[name]; !ok {
		st.order = append(st.order, name)
	}

	st.tab[name] = d
}
