package generate

import (
	"fmt"
	"io"

	"tarn/sem"

	"github.com/llir/llvm/ir"
)

// NOTE: We use `llir/llvm` which provides all the infrastructure necessary to
// generate LLVM IR source text without binding to the LLVM libraries.  The
// source text can then be fed to `opt` and `llc`.

// Generator is responsible for lowering analyzed modules into a single LLVM
// module.  Every member of a named enum becomes an immutable global holding
// the member's value.
type Generator struct {
	// llModule is the LLVM module being built by this generator
	llModule *ir.Module

	// globals is a map of all the globally defined values by name
	globals map[string]*ir.Global
}

// NewGenerator creates a new generator
func NewGenerator() *Generator {
	return &Generator{
		llModule: ir.NewModule(),
		globals:  make(map[string]*ir.Global),
	}
}

// Generate lowers the given modules to an LLVM module
func Generate(mods []*sem.Module) *ir.Module {
	return NewGenerator().Generate(mods)
}

// Generate adds the globals of the given modules to the generator's module
func (g *Generator) Generate(mods []*sem.Module) *ir.Module {
	for _, m := range mods {
		g.generateModule(m)
	}

	return g.llModule
}

// Global returns the global generated for an enum member by its name
func (g *Generator) Global(name string) (*ir.Global, bool) {
	glob, ok := g.globals[name]
	return glob, ok
}

// WriteTo writes the LLVM source text of the generated module to w
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	return g.llModule.WriteTo(w)
}

// generateModule generates the globals of a single module.  Declarations that
// failed to resolve are skipped.
func (g *Generator) generateModule(m *sem.Module) {
	for _, d := range m.Decls {
		ed, ok := d.(*sem.EnumDecl)
		if !ok || ed.Anonymous() || !ed.Resolved() {
			continue
		}

		for _, em := range ed.Members {
			if !em.Resolved() || em.Value == nil {
				continue
			}

			g.generateMember(m, ed, em)
		}
	}
}

// generateMember emits the global of an enum member
func (g *Generator) generateMember(m *sem.Module, ed *sem.EnumDecl, em *sem.EnumMember) {
	name := fmt.Sprintf("%s.%s.%s", m.Path, ed.Name(), em.Name())

	glob := g.llModule.NewGlobalDef(name, em.Value.Value)
	glob.Immutable = true
	g.globals[name] = glob
}
