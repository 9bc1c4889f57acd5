// Package model defines the domain types and value objects for the
// lumina-launcher CLI.
//
// This package contains pure data structures with no external dependencies.
// The central type is LaunchSpec, the fully resolved description of one
// server launch. ServerInstance represents a containerized server and is
// reconstructed from Docker container labels at runtime — there are no
// persistent state files.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
