package probe

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/version"
)

// Sentinel prefixes written by expando.c
const (
	LegacyPrefix = "OSSLPROBE_VERSION_OPENSSL_"
	ModernPrefix = "OSSLPROBE_VERSION_NEW_OPENSSL_"
	ConfPrefix   = "OSSLPROBE_CONF_"
)

// Output is what the preprocessed probe tells us about the headers
type Output struct {
	Version version.Raw
	Flags   *FlagSet
}

// Extract scans preprocessed probe text. Lines are trimmed; anything that is
// not a sentinel (line markers, blank lines, compiler noise) is ignored.
func Extract(expanded []byte) (*Output, error) {
	out := &Output{Flags: NewFlagSet()}

	sc := bufio.NewScanner(bytes.NewReader(expanded))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, ModernPrefix):
			out.Version = version.Raw{Format: version.FormatModern, Text: line[len(ModernPrefix):]}
		case strings.HasPrefix(line, LegacyPrefix):
			out.Version = version.Raw{Format: version.FormatLegacy, Text: line[len(LegacyPrefix):]}
		case strings.HasPrefix(line, ConfPrefix):
			out.Flags.Add(line[len(ConfPrefix):])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading preprocessor output: %w", err)
	}

	if out.Version.Format == 0 {
		return nil, &core.Error{
			Op:  "extract version",
			Err: fmt.Errorf("%w: no version sentinel in preprocessor output", core.ErrMalformedVersion),
			Hint: `openssl/opensslv.h was found but defines neither OPENSSL_VERSION_NUMBER
nor OPENSSL_VERSION_MAJOR. Point OPENSSL_DIR at a real OpenSSL installation.`,
		}
	}
	return out, nil
}
