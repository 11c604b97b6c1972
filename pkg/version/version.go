package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
)

// Number is a release packed into the OPENSSL_VERSION_NUMBER layout
type Number uint64

// Format identifies which textual form a raw version came in
type Format int

const (
	// FormatLegacy is the hex literal form, e.g. 0x1010107fL
	FormatLegacy Format = iota + 1
	// FormatModern is the underscored triple form, e.g. 3_0_2
	FormatModern
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatModern:
		return "modern"
	default:
		return "unknown"
	}
}

// Raw is version text as read from the probe, tagged with its format
type Raw struct {
	Format Format
	Text   string
}

// Decode dispatches on the format tag
func (r Raw) Decode() (Number, error) {
	switch r.Format {
	case FormatLegacy:
		return DecodeLegacy(r.Text)
	case FormatModern:
		return DecodeModern(r.Text)
	default:
		return 0, malformed(r.Text, "no version format")
	}
}

// DecodeLegacy parses a string that looks like "0x100020cfL"
func DecodeLegacy(text string) (Number, error) {
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		return 0, malformed(text, "missing 0x prefix")
	}
	digits := strings.TrimRightFunc(text[2:], func(r rune) bool {
		return !isHexDigit(r)
	})
	if digits == "" {
		return 0, malformed(text, "no hex digits")
	}

	n, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, malformed(text, err.Error())
	}
	return Number(n), nil
}

// DecodeModern parses a string that looks like "3_0_0"
func DecodeModern(text string) (Number, error) {
	parts := strings.Split(text, "_")
	if len(parts) != 3 {
		return 0, malformed(text, "expected major_minor_patch")
	}

	limits := [3]uint64{0xffff, 0xff, 0xffff}
	var fields [3]uint64
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return 0, malformed(text, err.Error())
		}
		if v > limits[i] {
			return 0, malformed(text, fmt.Sprintf("component %d out of range", v))
		}
		fields[i] = v
	}

	return Pack(fields[0], fields[1], fields[2]), nil
}

// Pack builds a Number from a major/minor/patch triple
func Pack(major, minor, patch uint64) Number {
	return Number(major<<28 | minor<<20 | patch<<4)
}

// ParseHex reads the form written by Hex
func ParseHex(text string) (Number, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(text, "0x"), 16, 64)
	if err != nil {
		return 0, malformed(text, err.Error())
	}
	return Number(n), nil
}

// Major returns the major release
func (n Number) Major() uint64 { return uint64(n) >> 28 }

// Minor returns the minor release
func (n Number) Minor() uint64 { return (uint64(n) >> 20) & 0xff }

// Hex returns the lower-case hex form without prefix (30000020)
func (n Number) Hex() string {
	return strconv.FormatUint(uint64(n), 16)
}

// String renders 1.1.1c for legacy releases and 3.0.2 for modern ones
func (n Number) String() string {
	if n.Major() >= 3 {
		patch := (uint64(n) >> 4) & 0xffff
		return fmt.Sprintf("%d.%d.%d", n.Major(), n.Minor(), patch)
	}

	fix := (uint64(n) >> 12) & 0xff
	letter := (uint64(n) >> 4) & 0xff
	s := fmt.Sprintf("%d.%d.%d", n.Major(), n.Minor(), fix)
	if letter > 0 && letter <= 26 {
		s += string(rune('a' + letter - 1))
	}
	return s
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func malformed(text, reason string) error {
	return &core.Error{
		Op:  "decode version",
		Err: fmt.Errorf("%w: %q: %s", core.ErrMalformedVersion, text, reason),
		Hint: `The version macro in openssl/opensslv.h did not expand to a known form.
The headers are probably damaged or belong to an unrelated library.`,
	}
}
