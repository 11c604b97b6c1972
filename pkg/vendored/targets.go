package vendored

// configureTargets maps target triples to OpenSSL Configure targets
var configureTargets = map[string]string{
	"aarch64-apple-darwin":          "darwin64-arm64-cc",
	"aarch64-linux-android":         "android-arm64",
	"aarch64-pc-windows-msvc":       "VC-WIN64-ARM",
	"aarch64-unknown-freebsd":       "BSD-generic64",
	"aarch64-unknown-linux-gnu":     "linux-aarch64",
	"aarch64-unknown-linux-musl":    "linux-aarch64",
	"armv7-unknown-linux-gnueabihf": "linux-armv4",
	"i686-pc-windows-gnu":           "mingw",
	"i686-pc-windows-msvc":          "VC-WIN32",
	"i686-unknown-linux-gnu":        "linux-elf",
	"powerpc64le-unknown-linux-gnu": "linux-ppc64le",
	"riscv64gc-unknown-linux-gnu":   "linux64-riscv64",
	"s390x-unknown-linux-gnu":       "linux64-s390x",
	"x86_64-apple-darwin":           "darwin64-x86_64-cc",
	"x86_64-linux-android":          "android-x86_64",
	"x86_64-pc-windows-gnu":         "mingw64",
	"x86_64-pc-windows-msvc":        "VC-WIN64A",
	"x86_64-unknown-dragonfly":      "BSD-x86_64",
	"x86_64-unknown-freebsd":        "BSD-x86_64",
	"x86_64-unknown-illumos":        "solaris64-x86_64-gcc",
	"x86_64-unknown-linux-gnu":      "linux-x86_64",
	"x86_64-unknown-linux-musl":     "linux-x86_64",
	"x86_64-unknown-netbsd":         "BSD-x86_64",
	"x86_64-unknown-openbsd":        "BSD-x86_64",
}

// ConfigureTarget returns the Configure target for a triple
func ConfigureTarget(triple string) (string, bool) {
	t, ok := configureTargets[triple]
	return t, ok
}
