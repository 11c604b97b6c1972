// internal/cli/inspect.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the located installation and its artifacts",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, sync, err := newProber()
	if err != nil {
		return err
	}
	defer sync()

	res, arts, err := p.Inspect(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	f := res.Facts
	fmt.Fprintf(out, "Host:     %s\n", res.Host)
	fmt.Fprintf(out, "Target:   %s\n", res.Target)
	fmt.Fprintf(out, "Source:   %s\n", f.Location.Source)
	fmt.Fprintf(out, "Include:  %s\n", f.Location.IncludeDir)
	fmt.Fprintf(out, "Lib:      %s\n", f.Location.LibDir)
	fmt.Fprintf(out, "Version:  %s (0x%s, line %s)\n", f.Version, f.Version.Hex(), f.Line)
	fmt.Fprintf(out, "Tiers:    %v\n", f.Tiers)
	fmt.Fprintf(out, "Link:     %s %v\n", f.Plan.Kind, f.Plan.Libs)
	if len(f.Plan.SystemLibs) > 0 {
		fmt.Fprintf(out, "System:   %v\n", f.Plan.SystemLibs)
	}
	if len(f.Flags) > 0 {
		fmt.Fprintf(out, "Disabled: %v\n", f.Flags)
	}

	fmt.Fprintf(out, "\nArtifacts:\n")
	for _, a := range arts {
		if a.Members > 0 {
			fmt.Fprintf(out, "  %-7s %s (%d bytes, %d objects)\n", a.Kind, a.Path, a.Size, a.Members)
		} else {
			fmt.Fprintf(out, "  %-7s %s (%d bytes)\n", a.Kind, a.Path, a.Size)
		}
	}
	return nil
}
