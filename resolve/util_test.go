package resolve

import (
	"fmt"
	"strings"
	"testing"

	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
)

// memLoader loads modules from in-memory sources keyed by dotted path
type memLoader struct {
	sources  map[string]string
	mods     map[string]*sem.Module
	registry *sem.PackageRegistry
}

func (ml *memLoader) LoadModule(pkgs []string, name string, from *sem.Module) (*sem.Module, error) {
	path := strings.Join(append(append([]string{}, pkgs...), name), ".")
	if m, ok := ml.mods[path]; ok {
		return m, nil
	}

	src, ok := ml.sources[path]
	if !ok {
		return nil, fmt.Errorf("no module named `%s`", path)
	}

	m := sem.NewModule(pkgs, name, strings.ReplaceAll(path, ".", "/")+".tarn")
	ml.mods[path] = m
	ml.registry.AddModule(m)

	file, ok := syntax.ParseString(src, m.Ctx)
	if !ok {
		return nil, fmt.Errorf("module `%s` has syntax errors", path)
	}

	Declare(m, file)
	return m, nil
}

type fixture struct {
	t      *testing.T
	loader *memLoader
	res    *Resolver
}

func newFixture(t *testing.T, sources map[string]string) *fixture {
	t.Helper()
	logging.Initialize("", "silent")

	reg := sem.NewPackageRegistry()
	ml := &memLoader{sources: sources, mods: make(map[string]*sem.Module), registry: reg}
	return &fixture{t: t, loader: ml, res: NewResolver(ml, reg)}
}

// load loads a module without resolving it
func (f *fixture) load(path string) *sem.Module {
	f.t.Helper()

	names := strings.Split(path, ".")
	m, err := f.loader.LoadModule(names[:len(names)-1], names[len(names)-1], nil)
	if err != nil {
		f.t.Fatal(err)
	}

	return m
}

// analyze loads and fully resolves a module
func (f *fixture) analyze(path string) *sem.Module {
	f.t.Helper()

	m := f.load(path)
	f.res.ResolveModule(m)
	f.res.RunDeferred()
	return m
}

// analyzeSource analyzes a single module named `app`
func analyzeSource(t *testing.T, src string) (*fixture, *sem.Module) {
	t.Helper()

	f := newFixture(t, map[string]string{"app": src})
	return f, f.analyze("app")
}

func enumOf(t *testing.T, m *sem.Module, name string) *sem.EnumDecl {
	t.Helper()

	d, ok := m.Search(name)
	if !ok {
		t.Fatalf("no declaration named %s", name)
	}

	return d.(*sem.EnumDecl)
}

func memberOf(t *testing.T, ed *sem.EnumDecl, name string) *sem.EnumMember {
	t.Helper()

	em, ok := ed.Search(name)
	if !ok {
		t.Fatalf("enum %s has no member %s", ed.Name(), name)
	}

	return em
}

// intValue returns the value of a resolved integral member
func intValue(t *testing.T, em *sem.EnumMember) int64 {
	t.Helper()

	if em.Value == nil {
		t.Fatalf("member %s has no value (errors: %v)", em.Name(), em.Errors)
	}

	return em.Value.Int().Int64()
}

// errorMessages returns the text of every error logged so far
func errorMessages() []string {
	var msgs []string
	for _, cm := range logging.Default().Errors() {
		msgs = append(msgs, cm.Message)
	}

	return msgs
}
