package core

import (
	"fmt"
	"os"
)

// Location is the resolved pair of library and header directories
type Location struct {
	LibDir     string // Directory containing linkable artifacts
	IncludeDir string // Directory containing openssl/*.h
	Source     string // Strategy that produced it (vendored, override, pkg-config, ...)
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("lib=%s include=%s (%s)", l.LibDir, l.IncludeDir, l.Source)
}

// Check verifies both directories exist
func (l Location) Check() error {
	for _, dir := range []string{l.LibDir, l.IncludeDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return &Error{Op: "locate", Dir: dir, Err: ErrMissingDir}
		}
	}
	return nil
}
