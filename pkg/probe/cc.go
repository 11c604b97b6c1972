// cc.go
package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arc-language/osslprobe/pkg/env"
	"github.com/arc-language/osslprobe/pkg/platform"
)

// CC runs the target's C preprocessor
type CC struct {
	Compiler string   // cc, clang, cl, ...
	MSVC     bool     // cl.exe style flags
	Flags    []string // extra flags, usually from CFLAGS
	Logger   *log.Logger
}

// NewCC picks the compiler for target from CC/CFLAGS, defaulting to cc (cl for msvc)
func NewCC(target platform.Target, e *env.Env, logger *log.Logger) *CC {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	c := &CC{Compiler: "cc", Logger: logger}
	if target.IsMSVC() {
		c.Compiler = "cl"
	}
	if v, ok := e.Get(env.CC); ok && strings.TrimSpace(v) != "" {
		c.Compiler = strings.TrimSpace(v)
	}
	c.MSVC = isCL(c.Compiler)

	if v, ok := e.Get(env.CFlags); ok {
		c.Flags = strings.Fields(v)
	}
	return c
}

// Expand writes source to a temporary file and preprocesses it
func (c *CC) Expand(ctx context.Context, source []byte, includeDirs []string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "osslprobe-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "expando.c")
	if err := os.WriteFile(src, source, 0o644); err != nil {
		return nil, fmt.Errorf("writing probe source: %w", err)
	}

	args := c.args(src, includeDirs)
	c.Logger.Printf("Running %s %s", c.Compiler, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, c.Compiler, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", c.Compiler, err)
		}
		return nil, fmt.Errorf("%s: %w\n%s", c.Compiler, err, msg)
	}
	return stdout.Bytes(), nil
}

func (c *CC) args(src string, includeDirs []string) []string {
	var args []string
	if c.MSVC {
		args = append(args, "/nologo", "/EP")
		for _, d := range includeDirs {
			args = append(args, "/I"+d)
		}
	} else {
		args = append(args, "-E")
		for _, d := range includeDirs {
			args = append(args, "-I"+d)
		}
	}
	args = append(args, c.Flags...)
	return append(args, src)
}

func isCL(compiler string) bool {
	base := strings.ToLower(filepath.Base(compiler))
	return base == "cl" || base == "cl.exe" || base == "clang-cl" || base == "clang-cl.exe"
}
