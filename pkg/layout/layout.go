package layout

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed layouts.yaml
var defaultData []byte

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Parse(defaultData)
})

// Default returns the embedded table
func Default() *Table {
	t, err := defaultTable()
	if err != nil {
		panic(fmt.Sprintf("layout: embedded layouts.yaml: %v", err))
	}
	return t
}

// Parse decodes a layout table from YAML
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing layout table: %w", err)
	}
	if len(t.Artifacts.Static) == 0 || len(t.Artifacts.Dynamic) == 0 {
		return nil, fmt.Errorf("layout table: artifact patterns are required")
	}
	if len(t.LibDirs) == 0 {
		t.LibDirs = []string{"lib"}
	}
	if len(t.IncludeDirs) == 0 {
		t.IncludeDirs = []string{"include"}
	}
	return &t, nil
}

// Roots returns the fallback install roots for an OS, OS-specific entries first
func (t *Table) Roots(goos string) []string {
	var roots []string
	seen := make(map[string]bool)
	for _, key := range []string{goos, "default"} {
		if goos == "windows" && key == "default" {
			continue
		}
		for _, r := range t.Fallback[key] {
			if !seen[r] {
				seen[r] = true
				roots = append(roots, r)
			}
		}
	}
	return roots
}

// StaticNames returns the file names of a statically linkable artifact for lib
func (t *Table) StaticNames(lib string) []string {
	return expand(t.Artifacts.Static, lib)
}

// DynamicNames returns the file names of a dynamically linkable artifact for lib
func (t *Table) DynamicNames(lib string) []string {
	return expand(t.Artifacts.Dynamic, lib)
}

// SystemLibsFor returns the extra libraries a static link needs on goos
func (t *Table) SystemLibsFor(goos string) []string {
	return t.SystemLibs[goos]
}

// LibDir picks the library directory under root. A candidate that holds an
// artifact for probeLib wins; otherwise the first existing candidate is used.
func (t *Table) LibDir(root, multiarch, probeLib string) (string, bool) {
	var first string
	for _, rel := range t.LibDirs {
		if strings.Contains(rel, "{multiarch}") {
			if multiarch == "" {
				continue
			}
			rel = strings.ReplaceAll(rel, "{multiarch}", multiarch)
		}
		dir := filepath.Join(root, filepath.FromSlash(rel))
		if !dirExists(dir) {
			continue
		}
		if first == "" {
			first = dir
		}
		if probeLib != "" && t.hasArtifact(dir, probeLib) {
			return dir, true
		}
	}
	return first, first != ""
}

// IncludeDir picks the include directory under root that holds openssl headers
func (t *Table) IncludeDir(root string) (string, bool) {
	for _, rel := range t.IncludeDirs {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		if dirExists(filepath.Join(dir, "openssl")) {
			return dir, true
		}
	}
	return "", false
}

func (t *Table) hasArtifact(dir, lib string) bool {
	names := append(t.StaticNames(lib), t.DynamicNames(lib)...)
	for _, name := range names {
		if fileExists(filepath.Join(dir, name)) {
			return true
		}
		// Versioned shared objects only (libssl.so.3)
		if matches, _ := filepath.Glob(filepath.Join(dir, name+".*")); len(matches) > 0 {
			return true
		}
	}
	return false
}

func expand(patterns []string, lib string) []string {
	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, strings.ReplaceAll(p, "{name}", lib))
	}
	return names
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
