package mods

// Manifest represents a module's configuration as loaded from its module file.
// The module file marks the root of a Tarn project: every source file under
// the source directory is part of the project.
type Manifest struct {
	// Name is the name of the module
	Name string

	// Root is the path to the directory containing the module file
	Root string

	// SourceDir is the absolute path to the directory holding the module's
	// source files.  Dotted import paths are resolved relative to it.
	SourceDir string

	// ImportDirs is a list of absolute paths to directories in which to check
	// for imports outside of the module and the global import directory
	ImportDirs []string

	// LogLevel is the default log level for builds of this module: empty if
	// the module file does not specify one
	LogLevel string

	// Version is the version of Tarn the module was created with
	Version string
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, package name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
