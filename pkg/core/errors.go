package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates no strategy located the library
	ErrNotFound = errors.New("library not found")

	// ErrMissingDir indicates a located directory does not exist on disk
	ErrMissingDir = errors.New("directory does not exist")

	// ErrProbe indicates the preprocessor could not expand the probe source
	ErrProbe = errors.New("header probe failed")

	// ErrMalformedVersion indicates the version macro matched neither format
	ErrMalformedVersion = errors.New("malformed version")

	// ErrUnsupportedVersion indicates a version outside the supported range
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrNoArtifacts indicates neither static nor dynamic artifacts are complete
	ErrNoArtifacts = errors.New("no usable library artifacts")

	// ErrVendorUnsupported indicates the target cannot be built from vendored source
	ErrVendorUnsupported = errors.New("target not supported for vendoring")
)

// Error wraps an error with the context needed to act on it
type Error struct {
	Op   string // Operation that failed
	Dir  string // Directory involved, if any
	Hint string // Remediation text
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Dir != "" {
		fmt.Fprintf(&b, "%s %s: %v", e.Op, e.Dir, e.Err)
	} else {
		fmt.Fprintf(&b, "%s: %v", e.Op, e.Err)
	}
	if e.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(e.Hint))
		b.WriteString("\n")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
