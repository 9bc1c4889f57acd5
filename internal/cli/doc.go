// Package cli implements the cobra commands for lumina-launcher.
//
// The bare binary runs launch: banner, Python probe, spawn the server,
// wait, pause. Subcommands add diagnostics (doctor) and container-mode
// management (status, stop). Global flags: --json, --verbose, --config.
//
// Errors returned by commands are *model.CLIError values carrying the
// exit code; Execute translates them for the OS.
package cli
