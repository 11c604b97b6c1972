// internal/cli/probe.go
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/emit"
)

var (
	probeFormat string
	probeOutput string
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print build directives",
	Long: `Locate OpenSSL, probe its headers and print the directives for the build.

Formats:
  stream  one osslprobe:key=value line per directive (default)
  env     shell exports of CGO_CFLAGS, CGO_LDFLAGS and OSSLPROBE_TAGS
  cgo     a Go source file with #cgo flags and version constants`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringVarP(&probeFormat, "format", "f", "", "output format: stream, env, cgo (default from config)")
	probeCmd.Flags().StringVarP(&probeOutput, "output", "o", "", "write to file instead of stdout")
}

func runProbe(cmd *cobra.Command, args []string) error {
	format := probeFormat
	if format == "" {
		format = config.Format
	}
	return probeTo(cmd, format, probeOutput)
}

// probeTo runs the pipeline and renders the result in format to path, or stdout
func probeTo(cmd *cobra.Command, format, path string) error {
	p, sync, err := newProber()
	if err != nil {
		return err
	}
	defer sync()

	res, err := p.Configure(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case core.FormatStream, "":
		return emit.WriteStream(w, res.Directives)
	case core.FormatEnv:
		return emit.RenderEnv(w, res.Facts)
	case core.FormatCgo:
		return emit.RenderCgo(w, config.Package, res.Facts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
