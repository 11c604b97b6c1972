package locate

import (
	"fmt"
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
)

func (l *Locator) notFound() error {
	var b strings.Builder
	b.WriteString(`Could not find the directory of the OpenSSL installation, and the build
cannot continue without it. If OpenSSL is installed but was not found,
set the OPENSSL_DIR environment variable to its installation prefix, or
OPENSSL_LIB_DIR and OPENSSL_INCLUDE_DIR to its library and header
directories.

Make sure the OpenSSL development package is installed as well.
`)
	if l.Hint != "" {
		b.WriteString("\n")
		b.WriteString(l.Hint)
	}
	fmt.Fprintf(&b, "\n$HOST = %s\n$TARGET = %s\n", l.Host, l.Target)
	for _, name := range l.Env.Seen() {
		if v, ok := l.Env.Lookup(name); ok {
			fmt.Fprintf(&b, "%s = %s\n", name, v)
		} else {
			fmt.Fprintf(&b, "%s unset\n", name)
		}
	}

	return &core.Error{
		Op:   "locate",
		Err:  fmt.Errorf("%w: %s for target %s", core.ErrNotFound, Library, l.Target),
		Hint: b.String(),
	}
}
