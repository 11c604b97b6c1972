package locate

import (
	"context"
	"log"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/platform"
)

// PkgConfig asks pkg-config for the libdir and includedir variables
type PkgConfig struct {
	Binary string
	Logger *log.Logger
	run    runFunc
}

// Name returns the querier name
func (p *PkgConfig) Name() string {
	return "pkg-config"
}

// Query runs pkg-config. A missing binary or unknown package is not an error.
func (p *PkgConfig) Query(ctx context.Context, name string) (core.Location, bool, error) {
	run := p.run
	if run == nil {
		if !platform.CommandExists(p.Binary) {
			p.Logger.Printf("%s not installed", p.Binary)
			return core.Location{}, false, nil
		}
		run = runCommand
	}

	libDir, err := run(ctx, p.Binary, "--variable=libdir", name)
	if err != nil {
		p.Logger.Printf("pkg-config: %v", err)
		return core.Location{}, false, ctx.Err()
	}
	incDir, err := run(ctx, p.Binary, "--variable=includedir", name)
	if err != nil {
		p.Logger.Printf("pkg-config: %v", err)
		return core.Location{}, false, ctx.Err()
	}
	if libDir == "" || incDir == "" {
		return core.Location{}, false, nil
	}

	return core.Location{LibDir: libDir, IncludeDir: incDir, Source: p.Name()}, true, nil
}
