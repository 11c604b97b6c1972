// Package locate finds the library and header directories of the OpenSSL
// installation to build against.
package locate

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/env"
	"github.com/arc-language/osslprobe/pkg/layout"
	"github.com/arc-language/osslprobe/pkg/platform"
)

// Library is the name queried from package systems
const Library = "openssl"

// Locator runs the discovery strategies in order; the first success wins
type Locator struct {
	Target platform.Target
	Host   platform.Target
	Env    *env.Env

	Vendored bool
	Builder  core.Builder

	// Queriers are asked in order after the overrides: pkg-config first,
	// then whatever package manager the platform has.
	Queriers []core.Querier

	Table      *layout.Table
	ExtraRoots []string // tried before the table's fallback roots
	Hint       string   // install commands appended to the not-found error
	Logger     *log.Logger
}

// Options configures New
type Options struct {
	Target     platform.Target
	Host       platform.Target
	Env        *env.Env
	Vendored   bool
	Builder    core.Builder
	ExtraRoots []string
	Hint       string
	Logger     *log.Logger
}

// New creates a Locator with the default queriers for the target
func New(opts Options) *Locator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	l := &Locator{
		Target:     opts.Target,
		Host:       opts.Host,
		Env:        opts.Env,
		Vendored:   opts.Vendored,
		Builder:    opts.Builder,
		Table:      layout.Default(),
		ExtraRoots: opts.ExtraRoots,
		Hint:       opts.Hint,
		Logger:     logger,
	}
	l.Queriers = DefaultQueriers(opts.Target, opts.Host, opts.Env, logger)
	return l
}

// Locate returns a location whose directories both exist
func (l *Locator) Locate(ctx context.Context) (core.Location, error) {
	loc, err := l.locate(ctx)
	if err != nil {
		return core.Location{}, err
	}
	if err := loc.Check(); err != nil {
		return core.Location{}, err
	}
	l.Logger.Printf("Located OpenSSL: %s", loc)
	return loc, nil
}

func (l *Locator) locate(ctx context.Context) (core.Location, error) {
	if l.wantVendored() {
		if l.Builder == nil {
			return core.Location{}, &core.Error{
				Op:  "locate",
				Err: fmt.Errorf("%w: no vendored builder configured", core.ErrVendorUnsupported),
			}
		}
		l.Logger.Printf("Building vendored OpenSSL for %s", l.Target)
		loc, err := l.Builder.Build(ctx, l.Target.Triple)
		if err != nil {
			return core.Location{}, err
		}
		loc.Source = "vendored"
		return loc, nil
	}

	libDir, hasLib := l.nonEmpty(env.OpenSSLLibDir)
	incDir, hasInc := l.nonEmpty(env.OpenSSLIncludeDir)
	if hasLib && hasInc {
		return core.Location{LibDir: libDir, IncludeDir: incDir, Source: "override"}, nil
	}

	var loc core.Location
	if root, ok := l.nonEmpty(env.OpenSSLDir); ok {
		loc = core.Location{
			LibDir:     filepath.Join(root, "lib"),
			IncludeDir: filepath.Join(root, "include"),
			Source:     "OPENSSL_DIR",
		}
	} else {
		found, err := l.discover(ctx)
		if err != nil {
			return core.Location{}, err
		}
		loc = found
	}

	// A lone override replaces its half of whatever was found
	if hasLib {
		loc.LibDir = libDir
	}
	if hasInc {
		loc.IncludeDir = incDir
	}
	return loc, nil
}

func (l *Locator) wantVendored() bool {
	if !l.Vendored {
		return false
	}
	v, ok := l.Env.Get(env.OpenSSLNoVendor)
	return !ok || v == "0"
}

func (l *Locator) nonEmpty(name string) (string, bool) {
	v, ok := l.Env.Get(name)
	return v, ok && v != ""
}

func (l *Locator) discover(ctx context.Context) (core.Location, error) {
	for _, q := range l.Queriers {
		loc, ok, err := q.Query(ctx, Library)
		if err != nil {
			return core.Location{}, err
		}
		if ok {
			l.Logger.Printf("%s found %s", q.Name(), loc)
			if loc.Source == "" {
				loc.Source = q.Name()
			}
			return loc, nil
		}
		l.Logger.Printf("%s did not find %s", q.Name(), Library)
	}

	if loc, ok := l.fallback(); ok {
		return loc, nil
	}
	return core.Location{}, l.notFound()
}

// fallback tries conventional install roots; the first root with both an
// include/openssl directory and a library directory wins.
func (l *Locator) fallback() (core.Location, bool) {
	roots := append(append([]string(nil), l.ExtraRoots...), l.Table.Roots(l.Target.GOOS())...)
	for _, root := range roots {
		inc, ok := l.Table.IncludeDir(root)
		if !ok {
			continue
		}
		lib, ok := l.Table.LibDir(root, l.Target.Multiarch(), "crypto")
		if !ok {
			continue
		}
		return core.Location{LibDir: lib, IncludeDir: inc, Source: "fallback " + root}, true
	}
	return core.Location{}, false
}
