// Package pyruntime implements the Python runtime prerequisite probe for
// the lumina-launcher CLI.
//
// The probe runs "<binary> --version" with output suppressed and keeps
// only the success/failure signal. A failed probe maps to exit code 1
// (model.ExitMissingRuntime) — the single classified error the launcher
// owns. Everything past a successful probe is the server's responsibility.
package pyruntime
