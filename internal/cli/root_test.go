package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findSubcommand returns the registered subcommand with the given name,
// or nil when absent.
func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

// TestNewRootCommand_Subcommands verifies that every documented subcommand
// is registered.
func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"launch", "doctor", "status", "stop"} {
		assert.NotNil(t, findSubcommand(root, name), "subcommand %q should be registered", name)
	}
}

// TestNewRootCommand_IgnoresExtraArgs verifies that stray positional
// arguments are accepted: whatever a shell shortcut appends must not
// change behavior or trigger a usage error.
func TestNewRootCommand_IgnoresExtraArgs(t *testing.T) {
	root := NewRootCommand()
	require.NotNil(t, root.Args)

	assert.NoError(t, root.Args(root, []string{}))
	assert.NoError(t, root.Args(root, []string{"unexpected", "arguments", "8080"}))
}

// TestNewRootCommand_GlobalFlags verifies the persistent flags shared by
// all subcommands.
func TestNewRootCommand_GlobalFlags(t *testing.T) {
	root := NewRootCommand()

	assert.NotNil(t, root.PersistentFlags().Lookup("json"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

// TestLaunchFlags_OnRootAndSubcommand verifies that the launch mode flags
// are available both on the bare binary and on the explicit subcommand.
func TestLaunchFlags_OnRootAndSubcommand(t *testing.T) {
	root := NewRootCommand()
	assert.NotNil(t, root.Flags().Lookup("watch"))
	assert.NotNil(t, root.Flags().Lookup("container"))

	launchCmd := findSubcommand(root, "launch")
	require.NotNil(t, launchCmd)
	assert.NotNil(t, launchCmd.Flags().Lookup("watch"))
	assert.NotNil(t, launchCmd.Flags().Lookup("container"))
}

// TestNewRootCommand_Version verifies that build metadata ends up in the
// --version output.
func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand()
	assert.Contains(t, root.Version, Version)
	assert.Contains(t, root.Version, Commit)
}
