package common

import "strings"

// JoinModulePath builds the dotted path of a module from its package segments
// and its final name (eg. `std.io.file`)
func JoinModulePath(pkgs []string, name string) string {
	if len(pkgs) == 0 {
		return name
	}

	return strings.Join(pkgs, ".") + "." + name
}
