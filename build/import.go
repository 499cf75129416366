package build

import (
	"fmt"

	"tarn/common"
	"tarn/logging"
	"tarn/mods"
	"tarn/resolve"
	"tarn/sem"
	"tarn/syntax"
)

// LoadModule implements sem.Loader.  It looks up an imported module by its
// dotted path, first in the source root of the importing module then in the
// compiler's import roots, loading and declaring it if it has not been loaded
// yet.
func (c *Compiler) LoadModule(pkgs []string, name string, from *sem.Module) (*sem.Module, error) {
	path := common.JoinModulePath(pkgs, name)
	if m, ok := c.modules[path]; ok {
		return m, nil
	}

	roots := c.roots
	if from != nil && from.SrcRoot != "" && from.SrcRoot != roots[0] {
		roots = append([]string{from.SrcRoot}, roots...)
	}

	fpath, root, ok := mods.FindSourceFile(roots, pkgs, name)
	if !ok {
		return nil, fmt.Errorf("unable to locate module `%s`", path)
	}

	m := sem.NewModule(pkgs, name, fpath)
	m.SrcRoot = root

	file, ok := syntax.ParseFile(fpath, m.Ctx)
	if !ok {
		return nil, fmt.Errorf("module `%s` contains errors", path)
	}

	if !c.addModule(m, file) {
		return nil, fmt.Errorf("module `%s` could not be declared", path)
	}

	return m, nil
}

// addModule registers a parsed module with the compiler and declares its
// contents
func (c *Compiler) addModule(m *sem.Module, file *syntax.File) bool {
	if !checkModuleHeader(m, file) {
		return false
	}

	if !c.registry.AddModule(m) {
		logging.LogCompileError(
			m.Ctx,
			fmt.Sprintf("module `%s` conflicts with another module of the same path", m.Path),
			logging.LMKImport,
			file.ModulePos,
		)
		return false
	}

	c.modules[m.Path] = m
	c.order = append(c.order, m)

	return resolve.Declare(m, file)
}
