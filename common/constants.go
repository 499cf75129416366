package common

const (
	SrcFileExtension = ".tarn"
	ModuleFileName   = "tarn-mod.toml"
	TarnVersion      = "0.1.0"

	// PackageFileName is the file that stands in for a package directory
	// when the package itself is imported as a module
	PackageFileName = "package" + SrcFileExtension
)

// TarnPath is the path to the Tarn installation directory
var TarnPath = ""
