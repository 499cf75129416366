package cmd

import (
	"fmt"
	"os"

	"tarn/generate"
	"tarn/logging"
	"tarn/sem"
	"tarn/typing"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"
)

// execDumpCommand analyzes a module and prints a table of every enum member
// it declares or imports
func execDumpCommand(result *olive.ArgParseResult, loglevel string) {
	man, ok := loadManifest(result)
	if !ok {
		return
	}

	c, _ := analyze(man, loglevel)

	if err := pterm.DefaultTable.WithHasHeader().WithData(memberTable(c.Modules())).Render(); err != nil {
		logging.PrintErrorMessage("Output Error", err)
	}
}

// execEmitCommand analyzes a module and writes the LLVM IR of its enum
// constants to a file or to the standard output
func execEmitCommand(result *olive.ArgParseResult, loglevel string) {
	man, ok := loadManifest(result)
	if !ok {
		return
	}

	c, ok := analyze(man, loglevel)
	if !ok {
		return
	}

	llModule := generate.Generate(c.Modules())

	out := os.Stdout
	if path, ok := result.Arguments["output"]; ok {
		f, err := os.Create(path.(string))
		if err != nil {
			logging.PrintErrorMessage("Output Error", err)
			return
		}
		defer f.Close()

		out = f
	}

	if _, err := llModule.WriteTo(out); err != nil {
		logging.PrintErrorMessage("Output Error", err)
	}
}

// memberTable builds the rows of the dump table: one per enum member
func memberTable(modules []*sem.Module) pterm.TableData {
	data := pterm.TableData{{"Module", "Enum", "Member", "Type", "Value", "Status"}}

	for _, m := range modules {
		for _, d := range m.Decls {
			ed, ok := d.(*sem.EnumDecl)
			if !ok {
				continue
			}

			enumName := ed.Name()
			if ed.Anonymous() {
				enumName = "<anonymous>"
			}

			for _, em := range ed.Members {
				data = append(data, memberRow(m, enumName, em))
			}
		}
	}

	return data
}

// memberRow renders the row of a single enum member
func memberRow(m *sem.Module, enumName string, em *sem.EnumMember) []string {
	if !em.Resolved() || em.Value == nil {
		status := "pending"
		if em.Errors {
			status = fmt.Sprintf("error (%s)", em.Failure())
		}

		return []string{m.Path, enumName, em.Name(), "", "", status}
	}

	return []string{m.Path, enumName, em.Name(), typing.Repr(em.Value.Type), em.Value.String(), "ok"}
}
