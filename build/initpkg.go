package build

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tarn/common"
	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
)

// sourceFile is a source file found under a source directory along with the
// module path derived from its location
type sourceFile struct {
	pkgs []string
	name string
	path string
}

// parsedFile is the result of parsing a source file: file is nil if parsing
// failed
type parsedFile struct {
	mod  *sem.Module
	file *syntax.File
}

// initSources loads and parses every source file under a source directory,
// declaring each one as a module.  Files are parsed concurrently.  It returns
// the declared modules and whether initialization succeeded.
func (c *Compiler) initSources(srcDir string) ([]*sem.Module, bool) {
	finfo, err := os.Stat(srcDir)
	if err != nil {
		logging.LogConfigError("Module", fmt.Sprintf("unable to load source directory %s: %s", srcDir, err.Error()))
		return nil, false
	}

	if !finfo.IsDir() {
		logging.LogConfigError("Module", "the source directory must be a directory not a file")
		return nil, false
	}

	srcFiles, err := findSourceFiles(srcDir)
	if err != nil {
		logging.LogConfigError("Module", fmt.Sprintf("error walking directory %s: %s", srcDir, err.Error()))
		return nil, false
	}

	if len(srcFiles) == 0 {
		logging.LogConfigError("Module", "unable to load a module that contains no Tarn source files")
		return nil, false
	}

	fchan := make(chan parsedFile)
	for _, sf := range srcFiles {
		m := sem.NewModule(sf.pkgs, sf.name, sf.path)
		m.SrcRoot = srcDir
		go initFile(fchan, m)
	}

	parsed := make(map[string]parsedFile)
	for range srcFiles {
		pf := <-fchan
		parsed[pf.mod.FilePath] = pf
	}

	// declare in the order the files were found
	var srcMods []*sem.Module
	for _, sf := range srcFiles {
		pf := parsed[sf.path]
		if pf.file == nil {
			continue
		}

		if prev, loaded := c.modules[pf.mod.Path]; loaded {
			logging.LogCompileError(
				pf.mod.Ctx,
				fmt.Sprintf("module `%s` is also defined by %s", pf.mod.Path, prev.FilePath),
				logging.LMKImport,
				pf.file.ModulePos,
			)
			continue
		}

		if c.addModule(pf.mod, pf.file) {
			srcMods = append(srcMods, pf.mod)
		}
	}

	return srcMods, logging.ShouldProceed()
}

// initFile parses a file concurrently writing the result to fchan.  If the
// file fails to parse, an appropriate error will be logged and the result will
// have no file.
func initFile(fchan chan parsedFile, m *sem.Module) {
	file, ok := syntax.ParseFile(m.FilePath, m.Ctx)
	if !ok {
		file = nil
	}

	fchan <- parsedFile{mod: m, file: file}
}

// findSourceFiles walks a source directory collecting its source files.  The
// module path of a file is its path relative to the directory: the package
// file of a directory names the module of the directory itself.
func findSourceFiles(srcDir string) ([]sourceFile, error) {
	var srcFiles []sourceFile

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != srcDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != common.SrcFileExtension {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		segments := strings.Split(filepath.ToSlash(strings.TrimSuffix(rel, common.SrcFileExtension)), "/")
		if d.Name() == common.PackageFileName {
			segments = segments[:len(segments)-1]

			// the package file of the source root has no module path
			if len(segments) == 0 {
				return nil
			}
		}

		srcFiles = append(srcFiles, sourceFile{
			pkgs: segments[:len(segments)-1],
			name: segments[len(segments)-1],
			path: path,
		})
		return nil
	})

	return srcFiles, err
}
