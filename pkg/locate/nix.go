package locate

import (
	"context"
	"log"
	"path"
	"strings"

	"zombiezen.com/go/nix"

	"github.com/arc-language/osslprobe/pkg/core"
)

// NixStoreDir is where Nix keeps store objects
const NixStoreDir = "/nix/store"

// Nix reads the include and library paths a nix shell injects through
// NIX_CFLAGS_COMPILE and NIX_LDFLAGS.
type Nix struct {
	CFlags  string
	LDFlags string
	Logger  *log.Logger
}

// Name returns the querier name
func (n *Nix) Name() string {
	return "nix"
}

// Query picks the first include and library dirs inside a store object
// named after the library.
func (n *Nix) Query(_ context.Context, name string) (core.Location, bool, error) {
	inc := n.find(flagPaths(n.CFlags, "-isystem", "-I"), name)
	lib := n.find(flagPaths(n.LDFlags, "", "-L"), name)
	if inc == "" || lib == "" {
		return core.Location{}, false, nil
	}
	return core.Location{LibDir: lib, IncludeDir: inc, Source: "nix"}, true, nil
}

func (n *Nix) find(paths []string, name string) string {
	for _, p := range paths {
		sp, ok := storeObject(p)
		if !ok {
			continue
		}
		storePath, err := nix.ParseStorePath(sp)
		if err != nil {
			n.Logger.Printf("nix: %s: %v", sp, err)
			continue
		}
		// openssl-3.0.13, openssl-3.0.13-dev
		if strings.HasPrefix(storePath.Name(), name+"-") {
			return p
		}
	}
	return ""
}

// storeObject trims p to the store object that contains it
func storeObject(p string) (string, bool) {
	rest, ok := strings.CutPrefix(path.Clean(p), NixStoreDir+"/")
	if !ok || rest == "" {
		return "", false
	}
	base, _, _ := strings.Cut(rest, "/")
	return NixStoreDir + "/" + base, true
}

// flagPaths extracts the arguments of the given flags, either attached
// (-I/foo) or as the following word (-isystem /foo).
func flagPaths(flags, separate, attached string) []string {
	var out []string
	fields := strings.Fields(flags)
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		switch {
		case separate != "" && f == separate:
			if i+1 < len(fields) {
				out = append(out, fields[i+1])
				i++
			}
		case strings.HasPrefix(f, attached) && len(f) > len(attached):
			out = append(out, f[len(attached):])
		}
	}
	return out
}
