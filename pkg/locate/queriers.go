package locate

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/env"
	"github.com/arc-language/osslprobe/pkg/platform"
)

// DefaultQueriers returns pkg-config followed by the package manager probe
// that applies to the target, if any.
func DefaultQueriers(target, host platform.Target, e *env.Env, logger *log.Logger) []core.Querier {
	var qs []core.Querier

	cross := target.Triple != host.Triple
	allowCross := false
	if cross {
		v, ok := e.Get(env.PkgConfigAllowCross)
		allowCross = ok && v != "0"
	}
	if !cross || allowCross {
		binary := "pkg-config"
		if v, ok := e.Get(env.PkgConfig); ok && v != "" {
			binary = v
		}
		qs = append(qs, &PkgConfig{Binary: binary, Logger: logger})
	} else {
		logger.Printf("Skipping pkg-config: cross compiling %s -> %s", host, target)
	}

	switch {
	case target.IsDarwin() && !cross:
		qs = append(qs, NewBrew(host, logger))
	case target.IsMSVC():
		if root, ok := e.Get(env.VcpkgRoot); ok && root != "" {
			qs = append(qs, &Vcpkg{Root: root, Triplets: vcpkgTriplets(target), Logger: logger})
		}
	case target.OS == "linux":
		cflags, _ := e.Get(env.NixCFlagsCompile)
		ldflags, _ := e.Get(env.NixLDFlags)
		if cflags != "" || ldflags != "" {
			qs = append(qs, &Nix{CFlags: cflags, LDFlags: ldflags, Logger: logger})
		}
	}
	return qs
}

// runFunc runs a command and returns its trimmed stdout
type runFunc func(ctx context.Context, name string, args ...string) (string, error)

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// hasHeaders reports whether dir/openssl exists
func hasHeaders(dir string) bool {
	return dirExists(filepath.Join(dir, "openssl"))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
