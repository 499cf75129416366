package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"tarn/common"
	"tarn/logging"

	"github.com/pelletier/go-toml"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents a Tarn module as it is encoded in TOML
type tomlModule struct {
	Name       string   `toml:"name"`
	SourceDir  string   `toml:"source-dir,omitempty"`
	ImportDirs []string `toml:"import-dirs,omitempty"`
	LogLevel   string   `toml:"log-level,omitempty"`
	Version    string   `toml:"tarn-version"`
}

// logLevels are the log levels a module file may select
var logLevels = map[string]bool{
	"silent":  true,
	"error":   true,
	"warn":    true,
	"verbose": true,
}

// LoadModule loads and validates the module file of the module whose root
// directory is `path`.  Relative directories in the module file are made
// absolute relative to the module root.
func LoadModule(path string) (*Manifest, error) {
	f, err := os.Open(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, err
	}

	if tmf.Module == nil {
		return nil, fmt.Errorf("module file at %s is missing the [module] table", path)
	}

	man := &Manifest{Root: path}
	if err := validateModule(man, tmf.Module); err != nil {
		return nil, err
	}

	man.Name = tmf.Module.Name
	man.LogLevel = tmf.Module.LogLevel
	man.Version = tmf.Module.Version

	man.SourceDir = path
	if tmf.Module.SourceDir != "" {
		man.SourceDir = absFrom(path, tmf.Module.SourceDir)
	}

	for _, dir := range tmf.Module.ImportDirs {
		man.ImportDirs = append(man.ImportDirs, absFrom(path, dir))
	}

	return man, nil
}

// validateModule checks that the module contents are valid
func validateModule(man *Manifest, mod *tomlModule) error {
	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", man.Root)
	}

	if !IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if mod.LogLevel != "" && !logLevels[mod.LogLevel] {
		return fmt.Errorf("`%s` is not a valid log level", mod.LogLevel)
	}

	if mod.Version != common.TarnVersion {
		logging.PrintWarningMessage(
			"Module",
			fmt.Sprintf("version of module `%s` (v%s) does not match current tarn version (v%s)", mod.Name, mod.Version, common.TarnVersion),
		)
	}

	return nil
}

// absFrom makes a path from the module file absolute
func absFrom(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}
