package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/arc-language/osslprobe/pkg/linkmode"
)

var cgoTemplate = template.Must(template.New("cgo").Parse(`// Code generated by osslprobe. DO NOT EDIT.

package {{.Package}}

/*
#cgo CFLAGS: {{.CFlags}}
#cgo LDFLAGS: {{.LDFlags}}
*/
import "C"

// VersionNumber is the OPENSSL_VERSION_NUMBER of the headers built against
const VersionNumber = 0x{{.Version}}

// VersionLine is the supported release line
const VersionLine = {{printf "%q" .Line}}

// Tags are the build tags the probe derived
var Tags = []string{ {{- range .Tags}}{{printf "%q" .}}, {{end -}} }

// ConfigFlags are the OPENSSL_NO_* macros the headers define
var ConfigFlags = []string{ {{- range .Flags}}{{printf "%q" .}}, {{end -}} }
`))

type cgoData struct {
	Package string
	CFlags  string
	LDFlags string
	Version string
	Line    string
	Tags    []string
	Flags   []string
}

// RenderCgo writes a gofmt'ed Go file for package pkg carrying the cgo flags
// and constants described by f.
func RenderCgo(w io.Writer, pkg string, f Facts) error {
	data := cgoData{
		Package: pkg,
		CFlags:  cgoJoin(cflagArgs(f)),
		LDFlags: cgoJoin(ldflagArgs(f)),
		Version: f.Version.Hex(),
		Line:    string(f.Line),
		Tags:    Tags(Emit(f)),
		Flags:   f.Flags,
	}

	var buf bytes.Buffer
	if err := cgoTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering cgo file: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting cgo file: %w", err)
	}
	_, err = w.Write(src)
	return err
}

// RenderEnv writes shell exports for CGO_CFLAGS, CGO_LDFLAGS and OSSLPROBE_TAGS
func RenderEnv(w io.Writer, f Facts) error {
	vars := [][2]string{
		{"CGO_CFLAGS", CFlags(f)},
		{"CGO_LDFLAGS", LDFlags(f)},
		{"OSSLPROBE_TAGS", strings.Join(Tags(Emit(f)), ",")},
	}
	for _, v := range vars {
		if _, err := fmt.Fprintf(w, "export %s=%s\n", v[0], shellQuote(v[1])); err != nil {
			return err
		}
	}
	return nil
}

// CFlags returns the compiler flags for f
func CFlags(f Facts) string {
	return strings.Join(cflagArgs(f), " ")
}

// LDFlags returns the linker flags for f. Static links name the archives
// directly so the linker cannot pick a shared object instead.
func LDFlags(f Facts) string {
	return strings.Join(ldflagArgs(f), " ")
}

func cflagArgs(f Facts) []string {
	return []string{"-I" + f.Location.IncludeDir}
}

func ldflagArgs(f Facts) []string {
	args := []string{"-L" + f.Location.LibDir}
	if f.Plan.Kind == linkmode.Static && len(f.Plan.Artifacts) == len(f.Plan.Libs) {
		args = append(args, f.Plan.Artifacts...)
	} else {
		for _, lib := range f.Plan.Libs {
			args = append(args, "-l"+lib)
		}
	}
	for _, lib := range f.Plan.SystemLibs {
		args = append(args, "-l"+lib)
	}
	return args
}

// cgoJoin joins args for a #cgo line. cgo splits on spaces and treats
// quotes and backslashes specially, so such arguments are single-quoted
// with quote and backslash escaped.
func cgoJoin(args []string) string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = cgoQuote(a)
	}
	return strings.Join(out, " ")
}

func cgoQuote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\r'\"\\") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(arg) + "'"
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
