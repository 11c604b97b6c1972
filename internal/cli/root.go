// internal/cli/root.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arc-language/osslprobe"
	"github.com/arc-language/osslprobe/pkg/core"
)

var (
	cfgFile    string
	target     string
	vendored   bool
	debug      bool
	linkPolicy string
	config     *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "osslprobe",
	Short: "Locate and describe the OpenSSL to build against",
	Long: `osslprobe - OpenSSL build configuration

Finds the OpenSSL installation for a target (or builds a vendored one),
reads its version and configuration from the headers, and prints the
link and build-tag directives a cgo binding needs.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// A config that fails to load would silently change link decisions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/osslprobe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&target, "target", "", "target triple (default is the host)")
	rootCmd.PersistentFlags().BoolVar(&vendored, "vendored", false, "build OpenSSL from source instead of using an installed one")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&linkPolicy, "link-policy", "", "link kind when both are available (dynamic, static)")

	// Add commands
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() error {
	cfg, err := core.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Override config with flags
	if target != "" {
		cfg.Target = target
	}
	if vendored {
		cfg.Vendored = true
	}
	if debug {
		cfg.Debug = true
	}
	if linkPolicy != "" {
		cfg.LinkPolicy = linkPolicy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	config = cfg
	return nil
}

// newLogger builds the zap logger: human readable when debugging, otherwise
// JSON warnings and errors only.
func newLogger() (*zap.Logger, error) {
	if config.Debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

// newProber wires the pipeline to the zap logger. The returned func flushes it.
func newProber() (*osslprobe.Prober, func(), error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	sync := func() { _ = logger.Sync() }

	p, err := osslprobe.New(osslprobe.Options{
		Config: config,
		Logger: zap.NewStdLog(logger.Named("osslprobe")),
	})
	if err != nil {
		sync()
		return nil, nil, err
	}
	logger.Debug("configured",
		zap.String("target", p.Target().Triple),
		zap.Bool("vendored", config.Vendored),
		zap.String("link_policy", config.LinkPolicy))
	return p, sync, nil
}
