package mods

import (
	"os"
	"path/filepath"

	"tarn/common"

	"github.com/pelletier/go-toml"
)

// FindModuleRoot walks up from dir looking for a directory containing a module
// file
func FindModuleRoot(dir string) (string, bool) {
	dir = filepath.Clean(dir)

	for {
		if checkPath(dir) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// checkPath checks to see if a directory holds a module file naming a module.
// We only check the name here so we don't do the full unmarshal: this may not
// be a module at all in which case it is not an error.
func checkPath(abspath string) bool {
	mfPath := filepath.Join(abspath, common.ModuleFileName)

	finfo, err := os.Stat(mfPath)
	if err != nil || finfo.IsDir() {
		return false
	}

	tree, err := toml.LoadFile(mfPath)
	if err != nil {
		return false
	}

	name, ok := tree.Get("module.name").(string)
	return ok && name != ""
}

// GlobalImportRoot returns the global import directory: the `lib` directory of
// the Tarn installation.  It is empty if no installation is configured.
func GlobalImportRoot() string {
	if common.TarnPath == "" {
		return ""
	}

	return filepath.Join(common.TarnPath, "lib")
}

// ResolveImportRoots returns the directories searched for imported modules in
// priority order: the module's source directory, its import directories and
// finally the global import directory
func (man *Manifest) ResolveImportRoots() []string {
	roots := append([]string{man.SourceDir}, man.ImportDirs...)
	if global := GlobalImportRoot(); global != "" {
		roots = append(roots, global)
	}

	return roots
}

// FindSourceFile searches the import roots for the source file of the module
// named by a dotted import path.  For `a.b.c` the candidates in each root are
// `a/b/c.tarn` then `a/b/c/package.tarn`.  It returns the path to the file and
// the root it was found in.
func FindSourceFile(roots []string, pkgs []string, name string) (string, string, bool) {
	rel := filepath.Join(append(append([]string{}, pkgs...), name)...)

	for _, root := range roots {
		candidates := []string{
			filepath.Join(root, rel+common.SrcFileExtension),
			filepath.Join(root, rel, common.PackageFileName),
		}

		for _, cand := range candidates {
			if finfo, err := os.Stat(cand); err == nil && !finfo.IsDir() {
				return cand, root, true
			}
		}
	}

	return "", "", false
}
