package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tarn/common"

	"github.com/pelletier/go-toml"
)

// InitModule creates a new module with the given name at the given path along
// with its source directory
func InitModule(name, path string) error {
	modFilePath := filepath.Join(path, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("module file error: %s", err.Error())
	}

	if !IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	mod := &tomlModule{
		Name:      name,
		SourceDir: "src",
		Version:   common.TarnVersion,
	}

	if err := os.MkdirAll(filepath.Join(path, mod.SourceDir), 0755); err != nil {
		return fmt.Errorf("error creating source directory: %s", err.Error())
	}

	f, err := os.Create(modFilePath)
	if err != nil {
		return fmt.Errorf("error creating module file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlModuleFile{Module: mod}); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}
