package sem

import (
	"errors"

	"tarn/common"
	"tarn/logging"
)

// ErrNotFound is returned by Import.Search when the imported module has no
// visible symbol by the given name
var ErrNotFound = errors.New("symbol not found")

// ErrImportNotResolved is returned by Import.Search when it is called before
// the import was resolved.  It indicates a bug in the caller, not in user code.
var ErrImportNotResolved = errors.New("import searched before it was resolved")

// Import is a module import declaration:
// `static import alias = pkg1.pkg2.mod : alias1 = name1, name2;`
type Import struct {
	DeclBase

	Packages []string
	ModName  string
	PathPos  *logging.TextPosition

	// Alias renames the whole module: empty if absent
	Alias string

	Static bool

	// Binds holds one alias declaration per selective import, owned by the
	// import
	Binds []*AliasDecl

	// Mod is the imported module and Pkg the leftmost package (or the module
	// itself when there are no packages).  Both are owned by the package
	// registry and set when the import resolves.
	Mod *Module
	Pkg Decl

	// Importer is the module containing the import (non-owning)
	Importer *Module
}

// NewImport creates an import declaration
func NewImport(pkgs []string, modName string, pos *logging.TextPosition, ctx *logging.LogContext, importer *Module) *Import {
	imp := &Import{
		DeclBase: newDeclBase(modName, pos, ctx),
		Packages: pkgs,
		ModName:  modName,
		Importer: importer,
	}

	// imports are private unless declared otherwise
	imp.Visibility = VisPrivate
	return imp
}

// AddBind synthesizes the alias declaration of a selective import
func (imp *Import) AddBind(name, alias string, pos *logging.TextPosition) *AliasDecl {
	ad := &AliasDecl{
		DeclBase:   newDeclBase(alias, pos, imp.Ctx),
		Import:     imp,
		SourceName: name,
	}

	ad.Parent = imp
	ad.Visibility = imp.Visibility
	imp.Binds = append(imp.Binds, ad)
	return ad
}

// Path returns the dotted path of the imported module
func (imp *Import) Path() string {
	return common.JoinModulePath(imp.Packages, imp.ModName)
}

// ImportsAll returns whether the import makes the imported module's symbols
// visible unqualified: only plain imports do
func (imp *Import) ImportsAll() bool {
	return !imp.Static && imp.Alias == "" && len(imp.Binds) == 0
}

// BindsPackage returns whether the import binds its leftmost package (or
// module) name in the importing scope
func (imp *Import) BindsPackage() bool {
	return imp.Alias == "" && len(imp.Binds) == 0
}

// Search performs a qualified lookup in the imported module
func (imp *Import) Search(name string) (Decl, error) {
	if imp.State != PassDone {
		return nil, ErrImportNotResolved
	}

	if imp.Mod == nil {
		return nil, ErrNotFound
	}

	if d, ok := imp.Mod.SearchPublic(name, imp.Importer); ok {
		return d, nil
	}

	return nil, ErrNotFound
}

// -----------------------------------------------------------------------------

// AliasDecl is a name bound by a selective import.  Its target is resolved
// lazily the first time the alias is used.
type AliasDecl struct {
	DeclBase

	// Import is the import owning the alias (non-owning)
	Import *Import

	SourceName string

	// Target is the aliased declaration once resolved
	Target Decl
}
