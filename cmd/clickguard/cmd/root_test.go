package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

// TestCommands_InitSimulateRun writes a default configuration and uses it from the other subcommands.
//
//nolint:paralleltest // Subcommands share package-level flag variables.
func TestCommands_InitSimulateRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clickguard.yaml")

	out, err := execute(t, "", "init", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, path)

	_, err = execute(t, "", "init", "--config", path)
	require.ErrorIs(t, err, errConfigExists)

	_, err = execute(t, "", "init", "--config", path, "--force")
	require.NoError(t, err)

	out, err = execute(t, "", "simulate", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "ELEMENT")
	require.Contains(t, out, "confirm")

	out, err = execute(t, "click pay 2\nquit\n", "run", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "pay: accepted\npay: ignored\n")
}
