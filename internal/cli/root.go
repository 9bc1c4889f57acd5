// Package cli implements the cobra-based CLI commands for lumina-launcher.
//
// Each subcommand (launch, doctor, status, stop) is defined in its own
// file within this package. This file defines the root command that serves
// as the parent for all subcommands and handles global flags.
//
// Invoking the binary with no subcommand runs launch: double-clicking the
// launcher must start the server, which is the tool's whole reason to
// exist. Extra positional arguments are accepted and ignored for the same
// reason — whatever a shell shortcut or file association appends must not
// change behavior.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumina-media/launcher/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// The launch command ignores it: its console lines are a fixed
	// contract consumed by humans watching a terminal window.
	jsonOutput bool

	// verbose enables debug-level logging on stderr.
	verbose bool

	// configPath is an explicit configuration file path. Empty means the
	// conventional names (lumina.jsonc, lumina.yaml, ...) are probed in
	// the launcher directory.
	configPath string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	launchFlags := &launchOptions{}

	rootCmd := &cobra.Command{
		Use:   "lumina-launcher",
		Short: "Start the LUMINA Media Downloader local server",
		Long: `lumina-launcher starts the LUMINA Media Downloader local web server.

It verifies that the Python runtime is installed, spawns the colocated
server script with the configured port (default 8000), and keeps the
terminal open until the server stops and the user has read its output.

Run with no arguments to launch the server. Subcommands provide
diagnostics (doctor) and container-mode management (status, stop).`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Stray positional arguments are tolerated and ignored: invoking
		// the launcher with extra arguments must have no effect.
		Args: cobra.ArbitraryArgs,

		// PersistentPreRun configures logging before any command logic.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},

		// The bare binary launches the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), launchFlags)
		},
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a lumina configuration file")

	// The root command mirrors the launch command's flags so that both
	// "lumina-launcher" and "lumina-launcher launch" accept them.
	bindLaunchFlags(rootCmd, launchFlags)

	rootCmd.AddCommand(NewLaunchCommand())
	rootCmd.AddCommand(NewDoctorCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewStopCommand())

	return rootCmd
}

// configureLogging wires logrus according to the global flags. Logs go to
// stderr so stdout stays reserved for the console contract and command
// output.
func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			// Errors the launch flow already rendered on the console
			// (e.g. the missing-runtime block) carry only their exit code.
			if !cliErr.IsReported() {
				printError(cliErr.Message, cliErr.Err)
			}
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
