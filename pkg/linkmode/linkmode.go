// Package linkmode decides whether the located library is linked statically
// or dynamically, and which libraries make up the link.
package linkmode

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/env"
	"github.com/arc-language/osslprobe/pkg/layout"
	"github.com/arc-language/osslprobe/pkg/platform"
)

// Kind is the link kind applied to every library
type Kind string

const (
	Dylib  Kind = "dylib"
	Static Kind = "static"
)

// Plan is the complete link decision
type Plan struct {
	Kind       Kind
	Libs       []string
	Artifacts  []string // Paths of the chosen artifacts, when they exist on disk
	SystemLibs []string // Always linked as dylib
}

// Resolver makes link decisions against a layout table
type Resolver struct {
	Table  *layout.Table
	Policy string // core.PolicyDynamic or core.PolicyStatic
	Logger *log.Logger
}

// NewResolver returns a resolver using the embedded layout table
func NewResolver(policy string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if policy == "" {
		policy = core.PolicyDynamic
	}
	return &Resolver{Table: layout.Default(), Policy: policy, Logger: logger}
}

// Resolve builds the plan for libs in dir. OPENSSL_STATIC short-circuits the
// directory scan.
func (r *Resolver) Resolve(dir string, libs []string, e *env.Env, target platform.Target) (Plan, error) {
	override, _ := e.Get(env.OpenSSLStatic)

	kind, err := r.Kind(dir, libs, override)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Kind: kind,
		Libs: append([]string(nil), libs...),
	}
	for _, lib := range libs {
		if path, ok := r.artifact(dir, lib, kind); ok {
			plan.Artifacts = append(plan.Artifacts, path)
		}
	}
	if kind == Static && target.IsWindows() {
		plan.SystemLibs = append([]string(nil), r.Table.SystemLibsFor("windows")...)
	}

	r.Logger.Printf("Link plan: %s %v (system %v)", plan.Kind, plan.Libs, plan.SystemLibs)
	return plan, nil
}

// Kind picks the link kind. override is the value of OPENSSL_STATIC: "0"
// means dynamic, any other non-empty value static, empty means inspect dir.
func (r *Resolver) Kind(dir string, libs []string, override string) (Kind, error) {
	switch {
	case override == "0":
		return Dylib, nil
	case override != "":
		return Static, nil
	}

	canStatic, canDylib := true, true
	for _, lib := range libs {
		if _, ok := r.artifact(dir, lib, Static); !ok {
			canStatic = false
		}
		if _, ok := r.artifact(dir, lib, Dylib); !ok {
			canDylib = false
		}
	}
	r.Logger.Printf("Artifacts in %s: static=%t dylib=%t", dir, canStatic, canDylib)

	switch {
	case canStatic && canDylib:
		if r.Policy == core.PolicyStatic {
			return Static, nil
		}
		return Dylib, nil
	case canStatic:
		return Static, nil
	case canDylib:
		return Dylib, nil
	default:
		return "", &core.Error{
			Op:  "resolve link mode",
			Dir: dir,
			Err: fmt.Errorf("%w for %s", core.ErrNoArtifacts, strings.Join(libs, ", ")),
			Hint: `Neither a static nor a dynamic build of every library was found in the
library directory. Set OPENSSL_LIB_DIR to the directory holding them, or
OPENSSL_STATIC to force a link kind.`,
		}
	}
}

func (r *Resolver) artifact(dir, lib string, kind Kind) (string, bool) {
	names := r.Table.DynamicNames(lib)
	if kind == Static {
		names = r.Table.StaticNames(lib)
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}
