package locate

import (
	"context"
	"log"
	"path/filepath"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/platform"
)

const (
	// BrewPrefixIntel is the Homebrew prefix on Intel Macs
	BrewPrefixIntel = "/usr/local"

	// BrewPrefixARM is the Homebrew prefix on Apple Silicon
	BrewPrefixARM = "/opt/homebrew"
)

// Brew looks for keg-only OpenSSL formulae under the Homebrew prefixes
type Brew struct {
	Prefixes []string
	Logger   *log.Logger
	run      runFunc
}

// NewBrew returns a Brew querier, native prefix first
func NewBrew(host platform.Target, logger *log.Logger) *Brew {
	prefixes := []string{BrewPrefixIntel, BrewPrefixARM}
	if host.Arch == "aarch64" {
		prefixes = []string{BrewPrefixARM, BrewPrefixIntel}
	}
	return &Brew{Prefixes: prefixes, Logger: logger}
}

// Name returns the querier name
func (b *Brew) Name() string {
	return "brew"
}

// Query checks <prefix>/opt/<formula> for each formula, newest first, then
// asks brew itself.
func (b *Brew) Query(ctx context.Context, name string) (core.Location, bool, error) {
	formulae := []string{name + "@3", name + "@1.1", name}

	for _, prefix := range b.Prefixes {
		for _, f := range formulae {
			if loc, ok := kegLocation(filepath.Join(prefix, "opt", f)); ok {
				return loc, true, nil
			}
		}
	}

	run := b.run
	if run == nil {
		if !platform.CommandExists("brew") {
			return core.Location{}, false, nil
		}
		run = runCommand
	}
	for _, f := range formulae {
		prefix, err := run(ctx, "brew", "--prefix", f)
		if err != nil {
			b.Logger.Printf("brew: %v", err)
			continue
		}
		if loc, ok := kegLocation(prefix); ok {
			return loc, true, nil
		}
	}
	return core.Location{}, false, ctx.Err()
}

func kegLocation(prefix string) (core.Location, bool) {
	inc := filepath.Join(prefix, "include")
	lib := filepath.Join(prefix, "lib")
	if !hasHeaders(inc) || !dirExists(lib) {
		return core.Location{}, false
	}
	return core.Location{LibDir: lib, IncludeDir: inc, Source: "brew " + prefix}, true
}
