package sem

import (
	"strings"
)

// Package is a node of the package tree: a directory of modules.  Packages are
// owned by the PackageRegistry and shared by every import naming them.
type Package struct {
	DeclBase

	// Path is the full dotted name of the package
	Path string

	// Table holds the package's sub-packages and modules
	Table *SymbolTable

	// Mod is the package's own module (loaded from `package.tarn`) if any
	Mod *Module
}

func newPackage(name, path string, parent *Package) *Package {
	pkg := &Package{
		DeclBase: newDeclBase(name, nil, nil),
		Path:     path,
		Table:    NewSymbolTable(),
	}

	if parent != nil {
		pkg.Parent = parent
	}

	// packages have nothing to resolve
	pkg.State = PassDone
	return pkg
}

// Search looks up a sub-package or module of the package falling back on the
// public symbols of the package's own module
func (pkg *Package) Search(name string) (Decl, bool) {
	if d, ok := pkg.Table.Lookup(name); ok {
		return d, true
	}

	if pkg.Mod != nil {
		return pkg.Mod.SearchPublic(name, nil)
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// PackageRegistry owns the tree of packages and modules of a compilation
type PackageRegistry struct {
	// Table holds the top level packages and modules
	Table *SymbolTable
}

// NewPackageRegistry creates an empty package registry
func NewPackageRegistry() *PackageRegistry {
	return &PackageRegistry{Table: NewSymbolTable()}
}

// Resolve walks the package path pkgs creating packages as necessary.  It
// returns the leftmost package and the innermost one (both nil if pkgs is
// empty).  It fails if a name on the path is already bound to something that
// cannot become a package.
func (r *PackageRegistry) Resolve(pkgs []string) (*Package, *Package, bool) {
	var leftmost, parent *Package

	table := r.Table
	for i, name := range pkgs {
		path := strings.Join(pkgs[:i+1], ".")

		var pkg *Package
		switch d, _ := table.Lookup(name); v := d.(type) {
		case nil:
			pkg = newPackage(name, path, parent)
			table.Insert(name, pkg)
		case *Package:
			pkg = v
		case *Module:
			// a module named like a package becomes the package's module
			pkg = newPackage(name, path, parent)
			pkg.Mod = v
			table.Replace(name, pkg)
		default:
			return nil, nil, false
		}

		if leftmost == nil {
			leftmost = pkg
		}

		parent = pkg
		table = pkg.Table
	}

	return leftmost, parent, true
}

// AddModule registers a module in the package tree.  If a package of the same
// name exists, the module becomes that package's module.  It fails if another
// module is already registered under the same path.
func (r *PackageRegistry) AddModule(m *Module) bool {
	_, parent, ok := r.Resolve(m.Packages)
	if !ok {
		return false
	}

	table := r.Table
	if parent != nil {
		table = parent.Table
		m.Pkg = parent
	}

	switch d, _ := table.Lookup(m.Name()); v := d.(type) {
	case nil:
		table.Insert(m.Name(), m)
		return true
	case *Package:
		if v.Mod == nil || v.Mod == m {
			v.Mod = m
			return true
		}
	case *Module:
		return v == m
	}

	return false
}

// Lookup finds the package or module with the given dotted path
func (r *PackageRegistry) Lookup(path []string) (Decl, bool) {
	table := r.Table

	var d Decl
	for _, name := range path {
		if table == nil {
			return nil, false
		}

		next, ok := table.Lookup(name)
		if !ok {
			return nil, false
		}

		d = next
		table = nil
		if pkg, ok := next.(*Package); ok {
			table = pkg.Table
		}
	}

	if pkg, ok := d.(*Package); ok && pkg.Mod != nil {
		return pkg.Mod, true
	}

	return d, d != nil
}
