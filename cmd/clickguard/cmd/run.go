package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/clickguard/internal/service/console"
)

// runCmd starts an interactive session.
//
//nolint:gochecknoglobals // Cobra commands are declared at package level.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Click guarded elements interactively.",
	Long: `Starts an interactive session on the real clock.

Commands are read from standard input, one per line:
  click <element> [count]
  rest <group>
  status
  help
  quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return console.Run(ctx, &console.Options{
			ConfigPath: cfgPath,
			LogLevel:   logLevel,
			In:         cmd.InOrStdin(),
			Out:        cmd.OutOrStdout(),
		})
	},
}
