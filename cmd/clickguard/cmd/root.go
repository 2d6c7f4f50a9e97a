package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/clickguard/internal/config"
	"github.com/oshokin/clickguard/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// logLevel overrides the log level from the configuration.
	logLevel string

	// rootCmd represents the base command of the click guard tool.
	rootCmd = &cobra.Command{
		Use:   "clickguard",
		Short: "Guard UI elements against rapid repeated clicks.",
		Long: `Wires UI elements to click guards described by a YAML configuration.

Elements listed in the same group share one guard: once any of them accepts a click,
every click on the group is ignored until the watch period ends.

Use "simulate" to replay the configured click script on a simulated clock,
or "run" to click elements interactively on the real clock.`,
		SilenceUsage: true,
	}
)

// Execute runs the clickguard CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "", "override the log level from the configuration")

	rootCmd.AddCommand(simulateCmd, runCmd, initCmd)
}
