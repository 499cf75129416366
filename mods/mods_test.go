package mods

import (
	"os"
	"path/filepath"
	"testing"

	"tarn/common"

	"github.com/nalgeon/be"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	be.True(t, IsValidIdentifier("geo"))
	be.True(t, IsValidIdentifier("_geo2"))
	be.True(t, !IsValidIdentifier(""))
	be.True(t, !IsValidIdentifier("2geo"))
	be.True(t, !IsValidIdentifier("geo-shapes"))
}

func TestInitThenLoad(t *testing.T) {
	dir := t.TempDir()

	be.Err(t, InitModule("geo", dir), nil)

	man, err := LoadModule(dir)
	be.Err(t, err, nil)
	be.Equal(t, man.Name, "geo")
	be.Equal(t, man.Root, dir)
	be.Equal(t, man.SourceDir, filepath.Join(dir, "src"))
	be.Equal(t, man.Version, common.TarnVersion)

	finfo, err := os.Stat(man.SourceDir)
	be.Err(t, err, nil)
	be.True(t, finfo.IsDir())

	// a module can only be initialized once
	be.Err(t, InitModule("geo", dir), "already exists")
}

func TestInitInvalidName(t *testing.T) {
	be.Err(t, InitModule("1geo", t.TempDir()), "valid identifier")
}

func TestLoadModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, common.ModuleFileName), `
[module]
name = "geo"
source-dir = "code"
import-dirs = ["../shared", "/opt/tarn"]
log-level = "warn"
tarn-version = "`+common.TarnVersion+`"
`)

	man, err := LoadModule(dir)
	be.Err(t, err, nil)
	be.Equal(t, man.SourceDir, filepath.Join(dir, "code"))
	be.Equal(t, man.ImportDirs, []string{filepath.Join(filepath.Dir(dir), "shared"), "/opt/tarn"})
	be.Equal(t, man.LogLevel, "warn")
}

func TestLoadModuleErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"no table", `name = "geo"`, "missing the [module] table"},
		{"no name", "[module]\ntarn-version = \"0.1.0\"", "missing module name"},
		{"bad name", "[module]\nname = \"a.b\"", "valid identifier"},
		{"bad log level", "[module]\nname = \"geo\"\nlog-level = \"loud\"", "not a valid log level"},
		{"bad toml", "[module\nname = 1", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, common.ModuleFileName), c.content)

			_, err := LoadModule(dir)
			be.True(t, err != nil)
			if c.want != "" {
				be.Err(t, err, c.want)
			}
		})
	}

	_, err := LoadModule(t.TempDir())
	be.True(t, os.IsNotExist(err))
}

func TestFindModuleRoot(t *testing.T) {
	dir := t.TempDir()
	be.Err(t, InitModule("geo", dir), nil)

	nested := filepath.Join(dir, "src", "shapes")
	be.Err(t, os.MkdirAll(nested, 0755), nil)

	root, ok := FindModuleRoot(nested)
	be.True(t, ok)
	be.Equal(t, root, dir)

	_, ok = FindModuleRoot(t.TempDir())
	be.True(t, !ok)
}

func TestFindSourceFile(t *testing.T) {
	src, shared, global := t.TempDir(), t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "geo", "shapes.tarn"), "")
	writeFile(t, filepath.Join(src, "geo", "package.tarn"), "")
	writeFile(t, filepath.Join(shared, "geo", "shapes", "package.tarn"), "")
	writeFile(t, filepath.Join(shared, "util.tarn"), "")
	writeFile(t, filepath.Join(global, "lib", "std", "math.tarn"), "")

	old := common.TarnPath
	common.TarnPath = global
	defer func() { common.TarnPath = old }()

	man := &Manifest{SourceDir: src, ImportDirs: []string{shared}}
	roots := man.ResolveImportRoots()
	be.Equal(t, roots, []string{src, shared, filepath.Join(global, "lib")})

	// the source root wins over the import directories
	path, root, ok := FindSourceFile(roots, []string{"geo"}, "shapes")
	be.True(t, ok)
	be.Equal(t, path, filepath.Join(src, "geo", "shapes.tarn"))
	be.Equal(t, root, src)

	// a package directory is imported through its package file
	path, _, ok = FindSourceFile(roots, nil, "geo")
	be.True(t, ok)
	be.Equal(t, path, filepath.Join(src, "geo", "package.tarn"))

	path, root, ok = FindSourceFile(roots, nil, "util")
	be.True(t, ok)
	be.Equal(t, root, shared)

	path, _, ok = FindSourceFile(roots, []string{"std"}, "math")
	be.True(t, ok)
	be.Equal(t, path, filepath.Join(global, "lib", "std", "math.tarn"))

	_, _, ok = FindSourceFile(roots, []string{"std"}, "io")
	be.True(t, !ok)
}
