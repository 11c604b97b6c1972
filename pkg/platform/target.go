package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Target is a parsed target triple (arch-vendor-os[-env])
type Target struct {
	Triple string
	Arch   string // x86_64, aarch64, i686, ...
	Vendor string // unknown, apple, pc, ...
	OS     string // linux, darwin, windows, freebsd, ...
	Env    string // gnu, msvc, musl, android, ... (may be empty)
}

var knownOS = []string{
	"linux", "darwin", "windows", "freebsd", "netbsd", "openbsd",
	"dragonfly", "illumos", "solaris", "ios", "android",
}

// ParseTarget splits a triple into its components
func ParseTarget(triple string) (Target, error) {
	parts := strings.Split(triple, "-")
	if len(parts) < 2 || parts[0] == "" {
		return Target{}, fmt.Errorf("invalid target triple: %q", triple)
	}

	t := Target{Triple: triple, Arch: parts[0]}
	rest := parts[1:]

	osIdx := -1
	for i, p := range rest {
		if contains(knownOS, p) {
			osIdx = i
			break
		}
	}
	if osIdx < 0 {
		return Target{}, fmt.Errorf("invalid target triple %q: unknown operating system", triple)
	}

	if osIdx > 0 {
		t.Vendor = strings.Join(rest[:osIdx], "-")
	}
	t.OS = rest[osIdx]
	if osIdx+1 < len(rest) {
		t.Env = strings.Join(rest[osIdx+1:], "-")
	}

	return t, nil
}

// goTriples maps GOOS/GOARCH to the triple the C toolchain knows the target by
var goTriples = map[string]string{
	"linux/amd64":     "x86_64-unknown-linux-gnu",
	"linux/arm64":     "aarch64-unknown-linux-gnu",
	"linux/386":       "i686-unknown-linux-gnu",
	"linux/arm":       "armv7-unknown-linux-gnueabihf",
	"linux/riscv64":   "riscv64gc-unknown-linux-gnu",
	"linux/ppc64le":   "powerpc64le-unknown-linux-gnu",
	"linux/s390x":     "s390x-unknown-linux-gnu",
	"linux/ppc64":     "powerpc64-unknown-linux-gnu",
	"linux/loong64":   "loongarch64-unknown-linux-gnu",
	"linux/mips64le":  "mips64el-unknown-linux-gnuabi64",
	"darwin/amd64":    "x86_64-apple-darwin",
	"darwin/arm64":    "aarch64-apple-darwin",
	"windows/amd64":   "x86_64-pc-windows-gnu",
	"windows/386":     "i686-pc-windows-gnu",
	"windows/arm64":   "aarch64-pc-windows-gnullvm",
	"freebsd/amd64":   "x86_64-unknown-freebsd",
	"freebsd/arm64":   "aarch64-unknown-freebsd",
	"netbsd/amd64":    "x86_64-unknown-netbsd",
	"openbsd/amd64":   "x86_64-unknown-openbsd",
	"dragonfly/amd64": "x86_64-unknown-dragonfly",
	"android/arm64":   "aarch64-linux-android",
	"illumos/amd64":   "x86_64-unknown-illumos",
}

// FromGo returns the target for a GOOS/GOARCH pair
func FromGo(goos, goarch string) (Target, error) {
	triple, ok := goTriples[goos+"/"+goarch]
	if !ok {
		return Target{}, fmt.Errorf("unsupported GOOS/GOARCH: %s/%s", goos, goarch)
	}
	return ParseTarget(triple)
}

// Host returns the target of the running toolchain
func Host() (Target, error) {
	return FromGo(runtime.GOOS, runtime.GOARCH)
}

// GOOS returns the Go operating system name for the target
func (t Target) GOOS() string {
	switch {
	case t.Env == "android":
		return "android"
	default:
		return t.OS
	}
}

// IsWindows reports whether the target is any windows flavour
func (t Target) IsWindows() bool {
	return t.OS == "windows"
}

// IsMSVC reports whether the target uses the MSVC toolchain
func (t Target) IsMSVC() bool {
	return t.OS == "windows" && t.Env == "msvc"
}

// IsDarwin reports whether the target is macOS
func (t Target) IsDarwin() bool {
	return t.OS == "darwin"
}

// Multiarch returns the Debian multiarch directory name (x86_64-linux-gnu),
// or "" when the target does not use one.
func (t Target) Multiarch() string {
	if t.OS != "linux" || t.Env == "android" {
		return ""
	}
	arch := t.Arch
	switch arch {
	case "i686", "i586":
		arch = "i386"
	case "armv7":
		arch = "arm"
	case "riscv64gc":
		arch = "riscv64"
	}
	env := t.Env
	if env == "" {
		env = "gnu"
	}
	return arch + "-linux-" + env
}

// String returns the triple
func (t Target) String() string {
	return t.Triple
}
