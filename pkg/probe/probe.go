package probe

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
)

//go:embed expando.c.in
var source []byte

// Source returns the probe program
func Source() []byte {
	out := make([]byte, len(source))
	copy(out, source)
	return out
}

// Run preprocesses the probe against includeDirs and extracts the result.
// installHint is appended to the error when the headers cannot be read.
func Run(ctx context.Context, exp core.Expander, includeDirs []string, installHint string) (*Output, error) {
	expanded, err := exp.Expand(ctx, Source(), includeDirs)
	if err != nil {
		return nil, &core.Error{
			Op:   "probe headers",
			Dir:  strings.Join(includeDirs, ", "),
			Err:  fmt.Errorf("%w: %v", core.ErrProbe, err),
			Hint: failureHint(installHint),
		}
	}
	return Extract(expanded)
}

func failureHint(installHint string) string {
	var b strings.Builder
	b.WriteString(`Failed to find OpenSSL development headers.

You can try fixing this setting the OPENSSL_DIR environment variable
pointing to your OpenSSL installation or installing OpenSSL headers package
specific to your distribution:

`)
	if installHint != "" {
		b.WriteString(installHint)
	} else {
		b.WriteString("    # see your distribution's documentation for the OpenSSL development package\n")
	}
	b.WriteString(`
If the headers are installed in a non-standard location, set
OPENSSL_INCLUDE_DIR (or <TARGET>_OPENSSL_INCLUDE_DIR when cross compiling).`)
	return b.String()
}
