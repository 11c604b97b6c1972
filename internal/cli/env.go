// internal/cli/env.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arc-language/osslprobe/pkg/core"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print shell exports for cgo",
	Long: `Print CGO_CFLAGS, CGO_LDFLAGS and OSSLPROBE_TAGS as shell exports:

  eval "$(osslprobe env)"
  go build -tags "$OSSLPROBE_TAGS" ./...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return probeTo(cmd, core.FormatEnv, "")
	},
}
