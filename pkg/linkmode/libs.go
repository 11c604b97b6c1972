package linkmode

import (
	"strings"

	"github.com/arc-language/osslprobe/pkg/env"
	"github.com/arc-language/osslprobe/pkg/platform"
	"github.com/arc-language/osslprobe/pkg/version"
)

// Libs returns the libraries to link. OPENSSL_LIBS is a colon separated
// list; set but empty means link nothing. Otherwise defaults apply, with the
// lib prefix that 1.1.x import libraries carry on msvc.
func Libs(e *env.Env, defaults []string, line version.Line, target platform.Target) []string {
	if v, ok := e.Get(env.OpenSSLLibs); ok {
		var libs []string
		for _, l := range strings.Split(v, ":") {
			if l = strings.TrimSpace(l); l != "" {
				libs = append(libs, l)
			}
		}
		return libs
	}

	libs := make([]string, len(defaults))
	for i, l := range defaults {
		if line == version.Line111 && target.IsMSVC() && !strings.HasPrefix(l, "lib") {
			l = "lib" + l
		}
		libs[i] = l
	}
	return libs
}
