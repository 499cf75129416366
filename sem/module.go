package sem

import (
	"strings"

	"tarn/common"
	"tarn/logging"
	"tarn/syntax"
)

// Module is a single source file: the unit of loading and of deferred
// resolution
type Module struct {
	DeclBase

	// Packages is the package path of the module and Path the full dotted name
	Packages []string
	Path     string

	FilePath string
	AST      *syntax.File

	// Table holds every top level name declared or imported by the module
	Table *SymbolTable

	// Decls are the module's declarations in source order (imports included)
	Decls   []Decl
	Imports []*Import

	// RootScope is the module scope
	RootScope *Scope

	// Deferred is the queue of the module's declarations awaiting a retry
	Deferred *DeferredQueue

	// SrcRoot is the source directory the module was found in
	SrcRoot string

	// Pkg is the package containing the module (nil for top level modules)
	Pkg *Package
}

// NewModule creates a module with the given package path and name
func NewModule(pkgs []string, name, fpath string) *Module {
	path := common.JoinModulePath(pkgs, name)
	m := &Module{
		Packages: pkgs,
		Path:     path,
		FilePath: fpath,
		Table:    NewSymbolTable(),
		Deferred: &DeferredQueue{},
	}

	m.DeclBase = newDeclBase(name, nil, &logging.LogContext{ModuleName: path, FilePath: fpath})
	m.RootScope = NewModuleScope(m)
	return m
}

// AddDecl appends a top level declaration to the module
func (m *Module) AddDecl(d Decl) {
	d.Base().Parent = m
	m.Decls = append(m.Decls, d)

	if imp, ok := d.(*Import); ok {
		m.Imports = append(m.Imports, imp)
	}
}

// Search looks up a name in the module's own table
func (m *Module) Search(name string) (Decl, bool) {
	return m.Table.Lookup(name)
}

// SearchPublic looks up a name among the symbols the module exposes to the
// module from: its own visible declarations and the symbols re-exported by its
// public imports
func (m *Module) SearchPublic(name string, from *Module) (Decl, bool) {
	return m.searchPublic(name, from, make(map[*Module]bool))
}

func (m *Module) searchPublic(name string, from *Module, visited map[*Module]bool) (Decl, bool) {
	if visited[m] {
		return nil, false
	}

	visited[m] = true

	if d, ok := m.Table.Lookup(name); ok {
		switch d.(type) {
		case *Package, *Module:
			// package bindings made by imports are never re-exported
		default:
			if m.visibleTo(d, from) {
				return d, true
			}
		}
	}

	for _, imp := range m.Imports {
		if imp.Visibility == VisPublic && imp.ImportsAll() && imp.Resolved() && imp.Mod != nil {
			if d, ok := imp.Mod.searchPublic(name, from, visited); ok {
				return d, true
			}
		}
	}

	return nil, false
}

// SearchImported looks up a name in the modules this module imports with a
// plain import.  The first import (in source order) exposing the name wins.
func (m *Module) SearchImported(name string) (Decl, bool) {
	for _, imp := range m.Imports {
		if imp.ImportsAll() && imp.Resolved() && imp.Mod != nil && imp.Mod != m {
			if d, ok := imp.Mod.SearchPublic(name, m); ok {
				return d, true
			}
		}
	}

	return nil, false
}

// visibleTo decides whether a declaration of this module is visible to from
func (m *Module) visibleTo(d Decl, from *Module) bool {
	if from == m {
		return true
	}

	switch d.Base().Visibility {
	case VisPublic:
		return true
	case VisPackage:
		return from != nil && strings.Join(from.Packages, ".") == strings.Join(m.Packages, ".")
	}

	return false
}
