// osslprobe.go
package osslprobe

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/emit"
	"github.com/arc-language/osslprobe/pkg/env"
	"github.com/arc-language/osslprobe/pkg/linkmode"
	"github.com/arc-language/osslprobe/pkg/locate"
	"github.com/arc-language/osslprobe/pkg/platform"
	"github.com/arc-language/osslprobe/pkg/probe"
	"github.com/arc-language/osslprobe/pkg/registry"
	"github.com/arc-language/osslprobe/pkg/vendored"
	"github.com/arc-language/osslprobe/pkg/version"
)

// Re-export types for convenience
type (
	Config    = core.Config
	Location  = core.Location
	Facts     = emit.Facts
	Directive = emit.Directive
	Artifact  = linkmode.Artifact
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Options configures a Prober. Zero fields fall back to the real system.
type Options struct {
	Config   *Config
	Target   string         // Target triple; empty uses Config.Target, then the host
	Lookup   env.LookupFunc // Environment; defaults to os.LookupEnv
	Expander core.Expander  // Preprocessor; defaults to the target's C compiler
	Builder  core.Builder   // Vendored builder; defaults to building from source
	Queriers []core.Querier // Package system queries; defaults per target
	Logger   *log.Logger
}

// Prober runs the discovery pipeline for one target
type Prober struct {
	opts     Options
	config   *Config
	host     platform.Target
	target   platform.Target
	registry *registry.Registry
	logger   *log.Logger
}

// Result is the outcome of a successful run
type Result struct {
	Host       platform.Target
	Target     platform.Target
	Facts      Facts
	Directives []Directive
}

// New validates the options and resolves host and target
func New(opts Options) (*Prober, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}

	triple := opts.Target
	if triple == "" {
		triple = cfg.Target
	}
	host, target, err := resolveTargets(triple, logger)
	if err != nil {
		return nil, err
	}

	return &Prober{
		opts:     opts,
		config:   cfg,
		host:     host,
		target:   target,
		registry: registry.New(),
		logger:   logger,
	}, nil
}

// hostTarget detects the build host; replaced in tests
var hostTarget = platform.Host

// resolveTargets returns the host and the target for triple. A host missing
// from the triple table is taken to be the explicit target.
func resolveTargets(triple string, logger *log.Logger) (host, target platform.Target, err error) {
	host, hostErr := hostTarget()
	if triple == "" {
		return host, host, hostErr
	}

	target, err = platform.ParseTarget(triple)
	if err != nil {
		return platform.Target{}, platform.Target{}, err
	}
	if hostErr != nil {
		logger.Printf("%v; assuming host %s", hostErr, target)
		host = target
	}
	return host, target, nil
}

// Target returns the target being probed
func (p *Prober) Target() platform.Target {
	return p.target
}

// Configure locates the library, probes its headers, checks the version,
// decides the link mode and returns the directives. Any failure is final.
func (p *Prober) Configure(ctx context.Context) (*Result, error) {
	e := env.New(p.target.Triple, p.opts.Lookup, p.logger)
	p.logger.Printf("Probing OpenSSL for %s (host %s)", p.target, p.host)

	hint := p.registry.InstallHint(locate.Library, platform.DetectDistro())

	builder := p.opts.Builder
	if builder == nil {
		builder = vendored.NewBuilder(p.config.VendorDir, e, p.logger)
	}
	locator := locate.New(locate.Options{
		Target:     p.target,
		Host:       p.host,
		Env:        e,
		Vendored:   p.config.Vendored,
		Builder:    builder,
		ExtraRoots: p.config.FallbackDirs,
		Hint:       hint,
		Logger:     p.logger,
	})
	if p.opts.Queriers != nil {
		locator.Queriers = p.opts.Queriers
	}

	loc, err := locator.Locate(ctx)
	if err != nil {
		return nil, err
	}

	expander := p.opts.Expander
	if expander == nil {
		expander = probe.NewCC(p.target, e, p.logger)
	}
	out, err := probe.Run(ctx, expander, []string{loc.IncludeDir}, hint)
	if err != nil {
		return nil, err
	}

	n, err := out.Version.Decode()
	if err != nil {
		return nil, err
	}
	line, err := version.Classify(n)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("OpenSSL %s (0x%s, %s format), line %s", n, n.Hex(), out.Version.Format, line)

	libs := linkmode.Libs(e, p.registry.DefaultLibs(locate.Library), line, p.target)
	plan, err := linkmode.NewResolver(p.config.LinkPolicy, p.logger).Resolve(loc.LibDir, libs, e, p.target)
	if err != nil {
		return nil, err
	}

	facts := emit.Facts{
		Location: loc,
		Plan:     plan,
		Flags:    out.Flags.Names(),
		Version:  n,
		Line:     line,
		Tiers:    version.TierNames(n),
		EnvNames: e.Seen(),
	}
	return &Result{
		Host:       p.host,
		Target:     p.target,
		Facts:      facts,
		Directives: emit.Emit(facts),
	}, nil
}

// Inspect runs Configure and lists the artifacts in the located library dir
func (p *Prober) Inspect(ctx context.Context) (*Result, []Artifact, error) {
	res, err := p.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}
	arts, err := linkmode.NewResolver(p.config.LinkPolicy, p.logger).Inspect(res.Facts.Location.LibDir, res.Facts.Plan.Libs)
	if err != nil {
		return nil, nil, err
	}
	return res, arts, nil
}
