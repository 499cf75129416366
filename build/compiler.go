package build

import (
	"sort"

	"tarn/logging"
	"tarn/mods"
	"tarn/resolve"
	"tarn/sem"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of the Tarn compiler
type Compiler struct {
	// manifest is the configuration of the module being built
	manifest *mods.Manifest

	// roots are the directories searched for imported modules in priority
	// order
	roots []string

	// registry is the package tree shared by every loaded module
	registry *sem.PackageRegistry

	// modules maps the dotted path of every loaded module to the module.
	// order lists them in the order they were loaded.
	modules map[string]*sem.Module
	order   []*sem.Module

	res *resolve.Resolver
}

// NewCompiler creates a new compiler for the module described by a manifest
func NewCompiler(man *mods.Manifest) *Compiler {
	c := &Compiler{
		manifest: man,
		roots:    man.ResolveImportRoots(),
		registry: sem.NewPackageRegistry(),
		modules:  make(map[string]*sem.Module),
	}

	c.res = resolve.NewResolver(c, c.registry)
	return c
}

// Analyze runs the analysis portion of the compilation algorithm: it loads
// every source file of the module, declares and resolves them along with the
// modules they import.  It returns whether analysis was successful.
func (c *Compiler) Analyze() bool {
	logging.BeginPhase("Parsing")
	srcMods, ok := c.initSources(c.manifest.SourceDir)
	logging.EndPhase(ok)

	if !ok {
		return false
	}

	logging.BeginPhase("Resolving")

	// modules are resolved in a deterministic order so diagnostics are stable
	sort.Slice(srcMods, func(i, j int) bool {
		return srcMods[i].Path < srcMods[j].Path
	})

	for _, m := range srcMods {
		c.res.ResolveModule(m)
	}

	// modules loaded on demand are resolved as well: their declarations may
	// not all be reached through imports
	for i := 0; i < len(c.order); i++ {
		c.res.ResolveModule(c.order[i])
	}

	c.res.RunDeferred()

	success := logging.ShouldProceed()
	logging.EndPhase(success)
	return success
}

// Modules returns every loaded module in load order
func (c *Compiler) Modules() []*sem.Module {
	return c.order
}

// Module returns the loaded module with the given dotted path
func (c *Compiler) Module(path string) (*sem.Module, bool) {
	m, ok := c.modules[path]
	return m, ok
}

// Registry returns the package registry of the compilation
func (c *Compiler) Registry() *sem.PackageRegistry {
	return c.registry
}
