// Package emit turns probe results into build directives and renders them
// for the tools that consume them.
package emit

import (
	"strings"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/linkmode"
	"github.com/arc-language/osslprobe/pkg/version"
)

// Directive keys
const (
	KeyLinkSearch  = "link-search"
	KeyInclude     = "include"
	KeyLinkLib     = "link-lib"
	KeyTag         = "tag"
	KeyConf        = "conf"
	KeyVersionNum  = "version_number"
	KeyVersion     = "version"
	KeyRerunIfEnv  = "rerun-if-env-changed"
	ConfTagPrefix  = "osslconf_"
	StreamPrefix   = "osslprobe:"
	nativeSearchKw = "native="
)

// Directive is one key=value fact
type Directive struct {
	Key   string
	Value string
}

// String renders the stream form, osslprobe:key=value
func (d Directive) String() string {
	return StreamPrefix + d.Key + "=" + d.Value
}

// Facts is everything the pipeline learned
type Facts struct {
	Location core.Location
	Plan     linkmode.Plan
	Flags    []string
	Version  version.Number
	Line     version.Line
	Tiers    []string
	EnvNames []string
}

// Emit lists the directives for f in their fixed order
func Emit(f Facts) []Directive {
	var ds []Directive
	add := func(key, value string) {
		ds = append(ds, Directive{Key: key, Value: value})
	}

	add(KeyLinkSearch, nativeSearchKw+f.Location.LibDir)
	add(KeyInclude, f.Location.IncludeDir)
	for _, lib := range f.Plan.Libs {
		add(KeyLinkLib, string(f.Plan.Kind)+"="+lib)
	}
	for _, lib := range f.Plan.SystemLibs {
		add(KeyLinkLib, string(linkmode.Dylib)+"="+lib)
	}
	for _, flag := range f.Flags {
		add(KeyTag, ConfTagPrefix+flag)
	}
	add(KeyConf, strings.Join(f.Flags, ","))
	for _, tier := range f.Tiers {
		add(KeyTag, tier)
	}
	add(KeyVersionNum, f.Version.Hex())
	add(KeyVersion, string(f.Line))
	for _, name := range f.EnvNames {
		add(KeyRerunIfEnv, name)
	}
	return ds
}

// Tags returns the build tags among ds, in order
func Tags(ds []Directive) []string {
	return Values(ds, KeyTag)
}

// Values returns every value of key, in order
func Values(ds []Directive, key string) []string {
	var out []string
	for _, d := range ds {
		if d.Key == key {
			out = append(out, d.Value)
		}
	}
	return out
}

// Value returns the first value of key
func Value(ds []Directive, key string) (string, bool) {
	for _, d := range ds {
		if d.Key == key {
			return d.Value, true
		}
	}
	return "", false
}
