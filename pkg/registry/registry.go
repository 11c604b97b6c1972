package registry

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed packages.toml
var defaultData string

// Entry describes one library and the packages that provide its headers
type Entry struct {
	Name     string            `toml:"name"`
	Libs     []string          `toml:"libs"`
	Backends map[string]string `toml:"backends"`
}

// Registry provides lookup into the package table
type Registry struct {
	entries map[string]*Entry
}

// New returns the registry built from the embedded table
func New() *Registry {
	r, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("registry: embedded packages.toml: %v", err))
	}
	return r
}

// Parse decodes a registry table
func Parse(data string) (*Registry, error) {
	var raw map[string]Entry
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("registry: failed to parse table: %w", err)
	}

	entries := make(map[string]*Entry, len(raw))
	for key, e := range raw {
		if e.Name == "" {
			e.Name = key
		}
		entry := e
		entries[key] = &entry
	}
	return &Registry{entries: entries}, nil
}

// Load returns the entry for a library
func (r *Registry) Load(name string) (*Entry, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("registry: package '%s' not found", name)
	}
	return entry, nil
}

// Resolve takes a canonical library name and a backend,
// returns the backend-specific package name.
// e.g. Resolve("openssl", "apt") -> "libssl-dev"
func (r *Registry) Resolve(name string, backend string) (string, error) {
	entry, err := r.Load(name)
	if err != nil {
		return "", err
	}

	pkgName, ok := entry.Backends[backend]
	if !ok {
		return "", fmt.Errorf("registry: package '%s' has no entry for backend '%s'", name, backend)
	}

	return pkgName, nil
}

// DefaultLibs returns the link libraries of a library, or nil when unknown
func (r *Registry) DefaultLibs(name string) []string {
	entry, err := r.Load(name)
	if err != nil {
		return nil
	}
	out := make([]string, len(entry.Libs))
	copy(out, entry.Libs)
	return out
}

// installers are shown in this order, after the host distro's own
var installers = []struct {
	backend string
	label   string
	command string
}{
	{"apt", "Ubuntu / Debian", "sudo apt-get install %s"},
	{"pacman", "Arch Linux", "sudo pacman -S %s"},
	{"dnf", "Fedora", "sudo dnf install %s"},
	{"apk", "Alpine", "sudo apk add %s"},
	{"zypper", "openSUSE", "sudo zypper install %s"},
	{"brew", "macOS", "brew install %s"},
}

var distroBackends = map[string]string{
	"ubuntu":   "apt",
	"debian":   "apt",
	"fedora":   "dnf",
	"arch":     "pacman",
	"alpine":   "apk",
	"opensuse": "zypper",
}

// BackendForDistro returns the package manager of a linux distribution
func BackendForDistro(distro string) (string, bool) {
	b, ok := distroBackends[distro]
	return b, ok
}

// InstallHint renders install commands for the development package of name,
// listing the host distro's package manager first.
func (r *Registry) InstallHint(name, distro string) string {
	entry, err := r.Load(name)
	if err != nil {
		return ""
	}

	preferred, _ := BackendForDistro(distro)
	ordered := make([]int, len(installers))
	for i := range installers {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return installers[ordered[a]].backend == preferred && installers[ordered[b]].backend != preferred
	})

	var b strings.Builder
	for _, idx := range ordered {
		inst := installers[idx]
		pkg, ok := entry.Backends[inst.backend]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "    # On %s\n    %s\n", inst.label, fmt.Sprintf(inst.command, pkg))
	}
	return b.String()
}
