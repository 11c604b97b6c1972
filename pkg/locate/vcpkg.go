package locate

import (
	"context"
	"log"
	"path/filepath"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/platform"
)

// Vcpkg looks under VCPKG_ROOT/installed/<triplet>
type Vcpkg struct {
	Root     string
	Triplets []string
	Logger   *log.Logger
}

// Name returns the querier name
func (v *Vcpkg) Name() string {
	return "vcpkg"
}

// Query returns the first triplet that has openssl headers and a lib dir
func (v *Vcpkg) Query(_ context.Context, _ string) (core.Location, bool, error) {
	for _, triplet := range v.Triplets {
		dir := filepath.Join(v.Root, "installed", triplet)
		inc := filepath.Join(dir, "include")
		lib := filepath.Join(dir, "lib")
		if hasHeaders(inc) && dirExists(lib) {
			return core.Location{LibDir: lib, IncludeDir: inc, Source: "vcpkg " + triplet}, true, nil
		}
		v.Logger.Printf("vcpkg: nothing in %s", dir)
	}
	return core.Location{}, false, nil
}

func vcpkgTriplets(target platform.Target) []string {
	arch := map[string]string{
		"x86_64":  "x64",
		"i686":    "x86",
		"i586":    "x86",
		"aarch64": "arm64",
	}[target.Arch]
	if arch == "" {
		return nil
	}
	base := arch + "-windows"
	return []string{base, base + "-static-md", base + "-static"}
}
