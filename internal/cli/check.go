// internal/cli/check.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/osslprobe/pkg/ossl"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load libssl and run the one-time initialisation",
	Long: `Load the OpenSSL shared library the host would use at run time and call
OPENSSL_init_ssl once. Set OSSLPROBE_LIBSSL to test a specific library.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ossl.Init(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ OpenSSL initialised (options 0x%x)\n", ossl.Options())
		return nil
	},
}
