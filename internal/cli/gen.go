// internal/cli/gen.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/osslprobe/pkg/core"
)

var (
	genOutput  string
	genPackage string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a Go file with cgo flags and version constants",
	Long: `Generate a Go source file for a cgo binding package. Typical use:

  //go:generate osslprobe gen -o openssl_cgo.go -p openssl`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "openssl_cgo.go", "output file")
	genCmd.Flags().StringVarP(&genPackage, "package", "p", "", "package name (default from config)")
}

func runGen(cmd *cobra.Command, args []string) error {
	if genPackage != "" {
		config.Package = genPackage
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if err := probeTo(cmd, core.FormatCgo, genOutput); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", genOutput)
	return nil
}
