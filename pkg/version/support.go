package version

import (
	"fmt"

	"github.com/arc-language/osslprobe/pkg/core"
)

// Line is a supported major release series
type Line string

const (
	Line111 Line = "111"
	Line300 Line = "300"
)

// Range bounds
const (
	MinSupported Number = 0x1_01_01_00_0
	Line3Start   Number = 0x3_00_00_00_0
	TooNew       Number = 0x4_00_00_00_0
)

// Tier is a capability unlocked at a threshold version
type Tier struct {
	Name      string
	Threshold Number
}

// Tiers newest first. A tier is enabled when the version is at or above its
// threshold, independently of every other tier.
var Tiers = []Tier{
	{Name: "ossl300", Threshold: 0x3_00_00_00_0},
	{Name: "ossl111c", Threshold: 0x1_01_01_03_0},
	{Name: "ossl111b", Threshold: 0x1_01_01_02_0},
	{Name: "ossl111", Threshold: 0x1_01_01_00_0},
}

// Classify places n in a supported line or fails
func Classify(n Number) (Line, error) {
	switch {
	case n >= TooNew:
		return "", unsupported(n)
	case n >= Line3Start:
		return Line300, nil
	case n >= MinSupported:
		return Line111, nil
	default:
		return "", unsupported(n)
	}
}

// Enabled returns the tiers n satisfies, newest first
func Enabled(n Number) []Tier {
	var out []Tier
	for _, t := range Tiers {
		if n >= t.Threshold {
			out = append(out, t)
		}
	}
	return out
}

// TierNames returns the names of the tiers n satisfies
func TierNames(n Number) []string {
	tiers := Enabled(n)
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = t.Name
	}
	return names
}

func unsupported(n Number) error {
	return &core.Error{
		Op:  "check version",
		Err: fmt.Errorf("%w: found OpenSSL %s (0x%s)", core.ErrUnsupportedVersion, n, n.Hex()),
		Hint: `This package is only compatible with OpenSSL 1.1.1 or OpenSSL 3.x,
but a different version of OpenSSL was found. The build is now aborting
due to this version mismatch.`,
	}
}
