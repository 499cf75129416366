package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tarn/build"
	"tarn/common"
	"tarn/logging"
	"tarn/mods"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `tarn` application
func Execute() {
	if !initTarnPath() {
		return
	}

	result, err := olive.ParseArgs(newCLI(), os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	loglevel := cliLogLevel(result)

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult, loglevel)
	case "dump":
		execDumpCommand(subResult, loglevel)
	case "emit":
		execEmitCommand(subResult, loglevel)
	case "mod":
		execModCommand(subResult)
	case "version":
		logging.PrintInfoMessage("Tarn Version", common.TarnVersion)
	}
}

// newCLI sets up the argument parser and all its extended commands and
// arguments
func newCLI() *olive.Command {
	cli := olive.NewCLI("tarn", "tarn is a tool for analyzing Tarn modules", true)

	// no default value: an absent log level defers to the module file
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	checkCmd := cli.AddSubcommand("check", "analyze a module and report errors", true)
	checkCmd.AddPrimaryArg("module-path", "the path to the module to check", true)
	checkCmd.AddFlag("watch", "w", "check the module again whenever one of its files changes")

	dumpCmd := cli.AddSubcommand("dump", "analyze a module and print the value of every enum member", true)
	dumpCmd.AddPrimaryArg("module-path", "the path to the module to dump", true)

	emitCmd := cli.AddSubcommand("emit", "analyze a module and emit its enum constants as LLVM IR", true)
	emitCmd.AddPrimaryArg("module-path", "the path to the module to emit", true)
	emitCmd.AddStringArg("output", "o", "the file to write the LLVM IR to", false)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the Tarn version", false)

	return cli
}

// cliLogLevel returns the log level given on the command line or "" if there
// was none
func cliLogLevel(result *olive.ArgParseResult) string {
	if ll, ok := result.Arguments["loglevel"].(string); ok {
		return ll
	}

	return ""
}

// effectiveLogLevel picks the log level of an analysis: the command line wins
// over the module file which wins over the default verbose level
func effectiveLogLevel(cliLevel string, man *mods.Manifest) string {
	switch {
	case cliLevel != "":
		return cliLevel
	case man.LogLevel != "":
		return man.LogLevel
	}

	return "verbose"
}

// execCheckCommand executes the check subcommand and handles all errors
func execCheckCommand(result *olive.ArgParseResult, loglevel string) {
	man, ok := loadManifest(result)
	if !ok {
		return
	}

	if result.HasFlag("watch") {
		if err := watchModule(man, func() { analyze(man, loglevel) }); err != nil {
			logging.PrintErrorMessage("Watch Error", err)
		}

		return
	}

	analyze(man, loglevel)
}

// execModCommand executes the `mod` subcommand and its subcommands.  It handles
// all errors related to this command
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modName, workDir); err != nil {
			logging.PrintErrorMessage("Module Init Error", err)
		}
	}
}

// -----------------------------------------------------------------------------

// loadManifest loads the manifest of the module enclosing the module path
// given on the command line
func loadManifest(result *olive.ArgParseResult) (*mods.Manifest, bool) {
	moduleRelPath, _ := result.PrimaryArg()

	modulePath, err := filepath.Abs(moduleRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return nil, false
	}

	root, ok := mods.FindModuleRoot(modulePath)
	if !ok {
		logging.PrintErrorMessage("Module Load Error", fmt.Errorf("no %s found in %s or its parents", common.ModuleFileName, modulePath))
		return nil, false
	}

	man, err := mods.LoadModule(root)
	if err != nil {
		logging.PrintErrorMessage("Module Load Error", err)
		return nil, false
	}

	return man, true
}

// analyze initializes the logger and runs analysis on a module.  The log level
// of the module file applies unless one was given on the command line.
func analyze(man *mods.Manifest, loglevel string) (*build.Compiler, bool) {
	logging.Initialize(man.Root, effectiveLogLevel(loglevel, man))
	if logging.Default().LogLevel >= logging.LogLevelVerbose {
		logging.DisplayCompileHeader(man.Name)
	}

	c := build.NewCompiler(man)
	ok := c.Analyze()

	logging.Default().Finish()
	return c, ok
}

// initTarnPath initializes the global Tarn path from the environment if it is
// set.  Without it, there is no global import directory.
func initTarnPath() bool {
	if tarnPath, ok := os.LookupEnv("TARN_PATH"); ok {
		finfo, err := os.Stat(tarnPath)

		if err != nil {
			logging.PrintErrorMessage("Config Error", fmt.Errorf("error loading tarn_path: %s", err.Error()))
			return false
		}

		if !finfo.IsDir() {
			logging.PrintErrorMessage("Config Error", errors.New("error loading tarn_path: must point to a directory"))
			return false
		}

		common.TarnPath = tarnPath
	}

	return true
}
