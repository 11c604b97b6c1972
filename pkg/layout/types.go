package layout

// Table describes where installations keep their files and how artifacts are named.
// It is data, not logic: the defaults are embedded from layouts.yaml.
type Table struct {
	Fallback    map[string][]string `yaml:"fallback"`     // OS name (or "default") -> install roots
	LibDirs     []string            `yaml:"lib_dirs"`     // Relative library dirs, may contain {multiarch}
	IncludeDirs []string            `yaml:"include_dirs"` // Relative include dirs
	Artifacts   Artifacts           `yaml:"artifacts"`
	SystemLibs  map[string][]string `yaml:"system_libs"` // OS name -> extra libs for static links
}

// Artifacts holds file name patterns; {name} is replaced with the library name
type Artifacts struct {
	Static  []string `yaml:"static"`
	Dynamic []string `yaml:"dynamic"`
}
