package osslprobe

import "github.com/arc-language/osslprobe/pkg/core"

// Errors returned by Configure; test with errors.Is
var (
	ErrNotFound           = core.ErrNotFound
	ErrMissingDir         = core.ErrMissingDir
	ErrProbe              = core.ErrProbe
	ErrMalformedVersion   = core.ErrMalformedVersion
	ErrUnsupportedVersion = core.ErrUnsupportedVersion
	ErrNoArtifacts        = core.ErrNoArtifacts
	ErrVendorUnsupported  = core.ErrVendorUnsupported
)

// Error carries the failed operation, directory and remediation text
type Error = core.Error
