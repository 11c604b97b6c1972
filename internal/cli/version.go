// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the osslprobe release
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "osslprobe version %s\n", Version)
		fmt.Fprintln(cmd.OutOrStdout(), "OpenSSL build configuration for cgo bindings")
		fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/arc-language/osslprobe")
	},
}
