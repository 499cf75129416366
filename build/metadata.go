package build

import (
	"fmt"
	"strings"

	"tarn/logging"
	"tarn/mods"
	"tarn/sem"
	"tarn/syntax"
)

// checkModuleHeader validates the `module` header at the top of a file
// against the module path derived from the file's location.  Files without a
// header are always valid.
func checkModuleHeader(m *sem.Module, file *syntax.File) bool {
	for _, name := range append(append([]string{}, m.Packages...), m.Name()) {
		if !mods.IsValidIdentifier(name) {
			logging.LogCompileError(
				m.Ctx,
				fmt.Sprintf("file path %s does not name a valid module: `%s` is not an identifier", m.FilePath, name),
				logging.LMKImport,
				nil,
			)
			return false
		}
	}

	if file.ModuleName == nil {
		return true
	}

	if header := strings.Join(file.ModuleName, "."); header != m.Path {
		logging.LogCompileError(
			m.Ctx,
			fmt.Sprintf("module header `%s` does not match the module path `%s` of its file", header, m.Path),
			logging.LMKImport,
			file.ModulePos,
		)
		return false
	}

	return true
}
