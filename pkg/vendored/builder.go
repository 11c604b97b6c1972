// Package vendored builds OpenSSL from source for a target triple.
package vendored

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/env"
	"github.com/arc-language/osslprobe/pkg/platform"
)

// Builder configures and compiles a static OpenSSL with its own build system
type Builder struct {
	Dir    string // Work root; each target builds in Dir/<triple>
	Env    *env.Env
	Logger *log.Logger

	run      func(ctx context.Context, dir, name string, args ...string) error
	clone    func(ctx context.Context, url, ref, dest string) error
	download func(ctx context.Context, url, path string) error
}

// NewBuilder creates a builder working under dir
func NewBuilder(dir string, e *env.Env, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	b := &Builder{Dir: dir, Env: e, Logger: logger}
	b.run = b.runCommand
	b.clone = b.gitClone
	b.download = NewClient().Download
	return b
}

// Build produces <Dir>/<target>/install/{lib,include}. An existing install
// is reused.
func (b *Builder) Build(ctx context.Context, target string) (core.Location, error) {
	configTarget, ok := ConfigureTarget(target)
	if !ok {
		return core.Location{}, &core.Error{
			Op:   "vendor",
			Err:  fmt.Errorf("%w: %s", core.ErrVendorUnsupported, target),
			Hint: "Build OpenSSL for this target yourself and point OPENSSL_DIR at it.",
		}
	}

	work := filepath.Join(b.Dir, target)
	install := filepath.Join(work, "install")
	loc := core.Location{
		LibDir:     filepath.Join(install, "lib"),
		IncludeDir: filepath.Join(install, "include"),
		Source:     "vendored",
	}
	if fileExists(filepath.Join(loc.IncludeDir, "openssl", "opensslv.h")) {
		b.Logger.Printf("Reusing vendored build in %s", install)
		return loc, nil
	}

	value, _ := b.Env.Get(env.OpenSSLSrc)
	ref, _ := b.Env.Get(env.OpenSSLSrcRef)
	src := ParseSource(value, ref)

	if err := os.MkdirAll(work, 0o755); err != nil {
		return core.Location{}, fmt.Errorf("creating %s: %w", work, err)
	}
	srcDir, err := b.fetch(ctx, src, work)
	if err != nil {
		return core.Location{}, &core.Error{Op: "vendor fetch", Dir: src.Location, Err: err}
	}

	buildDir := filepath.Join(work, "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return core.Location{}, fmt.Errorf("creating %s: %w", buildDir, err)
	}

	makeTool := "make"
	if tgt, err := platform.ParseTarget(target); err == nil && tgt.IsMSVC() {
		makeTool = "nmake"
	}

	steps := [][]string{
		{"perl", filepath.Join(srcDir, "Configure"), configTarget,
			"no-shared", "no-tests",
			"--prefix=" + install,
			"--openssldir=" + filepath.Join(install, "ssl"),
			"--libdir=lib"},
		{makeTool},
		{makeTool, "install_sw"},
	}
	for _, step := range steps {
		if err := b.run(ctx, buildDir, step[0], step[1:]...); err != nil {
			return core.Location{}, &core.Error{Op: "vendor build", Dir: buildDir, Err: err}
		}
	}

	return loc, nil
}

func (b *Builder) runCommand(ctx context.Context, dir, name string, args ...string) error {
	b.Logger.Printf("Running %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = b.Logger.Writer()
	cmd.Stderr = b.Logger.Writer()
	if cc, ok := b.Env.Get(env.CC); ok && cc != "" {
		cmd.Env = append(os.Environ(), "CC="+cc)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
