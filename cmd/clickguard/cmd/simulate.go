package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/clickguard/internal/service/simulator"
)

// simulateCmd replays the click script of the configuration.
//
//nolint:gochecknoglobals // Cobra commands are declared at package level.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay the configured click script on a simulated clock.",
	Long: `Replays the "script" section of the configuration on a simulated clock and prints,
for every element, how many clicks it received and how many got past its guard.

Watch periods are honoured exactly, so the result does not depend on the speed of this machine.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		result, err := simulator.Run(ctx, &simulator.Options{
			ConfigPath: cfgPath,
			LogLevel:   logLevel,
		})
		if err != nil {
			return err
		}

		simulator.Render(cmd.OutOrStdout(), result)

		return nil
	},
}
