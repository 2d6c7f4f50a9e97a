package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/clickguard/internal/config"
)

var (
	// force allows overwriting an existing configuration file.
	//nolint:gochecknoglobals // Cobra flags are bound to package-level variables.
	force bool

	// errConfigExists is returned when init would overwrite a file without --force.
	errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

	// initCmd writes a default configuration file.
	//nolint:gochecknoglobals // Cobra commands are declared at package level.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(cfgPath); err == nil && !force {
				return fmt.Errorf("%s: %w", cfgPath, errConfigExists)
			}

			if err := config.Save(cfgPath, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration written to", cfgPath)

			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
}
