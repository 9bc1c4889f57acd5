// Package model defines the domain types for the lumina-launcher CLI.
//
// All entities in this package represent the small amount of state the
// launcher deals with: the launch specification (interpreter, script,
// port), the lifecycle state of a managed server, and the exit codes the
// CLI surfaces to the calling shell.
//
// Key design decision: in container mode all state is persisted via Docker
// container labels, so ServerInstance is a transient representation
// reconstructed from Docker API queries at runtime. In local mode there is
// no persistent state at all.
package model

import (
	"fmt"
	"strconv"
	"time"
)

// ServerStatus represents the lifecycle state of a managed server.
// The state transitions are:
//
//	[Spawned] → Running → Exited
//
// In local mode a server is only ever observed as Running (while the
// launcher blocks on it) or Exited. In container mode the status is
// mapped from the Docker container state.
type ServerStatus string

const (
	// StatusRunning indicates the server process or container is running.
	StatusRunning ServerStatus = "running"

	// StatusExited indicates the server has stopped, whether cleanly,
	// via a crash, or because the user stopped it.
	StatusExited ServerStatus = "exited"
)

// String returns the string representation of ServerStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (s ServerStatus) String() string {
	return string(s)
}

// IsValid checks whether the ServerStatus value is one of the
// predefined valid states.
func (s ServerStatus) IsValid() bool {
	switch s {
	case StatusRunning, StatusExited:
		return true
	default:
		return false
	}
}

// StatusFromDockerState maps a Docker container state string (as returned
// by the container list API, e.g. "running", "exited", "created", "paused")
// to a ServerStatus. Anything that is not actively running is reported as
// exited, because from the launcher's point of view the server is either
// serving on its port or it is not.
func StatusFromDockerState(state string) ServerStatus {
	if state == "running" {
		return StatusRunning
	}
	return StatusExited
}

// LaunchMode selects how the server process is started.
type LaunchMode string

const (
	// ModeLocal spawns the server as a direct child process using the
	// host's Python interpreter. This is the default and matches the
	// original launcher behavior exactly.
	ModeLocal LaunchMode = "local"

	// ModeContainer runs the server inside a Docker container with the
	// launcher directory bind-mounted, for hosts without a Python install.
	ModeContainer LaunchMode = "container"
)

// String returns the string representation of LaunchMode.
func (m LaunchMode) String() string {
	return string(m)
}

// IsValid checks whether the LaunchMode value is one of the
// predefined valid modes.
func (m LaunchMode) IsValid() bool {
	switch m {
	case ModeLocal, ModeContainer:
		return true
	default:
		return false
	}
}

// DefaultPort is the TCP port the LUMINA server listens on unless the
// configuration overrides it. The launcher performs no availability probe
// on this port — it is handed to the child verbatim.
const DefaultPort = 8000

// LaunchSpec is the fully resolved description of one server launch.
// It is assembled from defaults and the optional configuration file, and
// consumed exactly once per launcher invocation.
type LaunchSpec struct {
	// Python is the interpreter binary used for the runtime probe and the
	// local spawn. There is no fallback search: if this binary's version
	// query fails, the launch is aborted.
	Python string `json:"python" yaml:"python"`

	// Script is the server entry point, resolved relative to BaseDir.
	// Its existence is NOT checked before a local spawn — a missing script
	// fails in the child, whose output reaches the console unfiltered.
	Script string `json:"script" yaml:"script"`

	// Port is the TCP port passed to the server as its single positional
	// argument and printed in the browser URL. Changing it changes exactly
	// those two things.
	Port int `json:"port" yaml:"port"`

	// Image is the container image used in container mode.
	Image string `json:"image" yaml:"image"`

	// BaseDir is the directory the launcher resolved itself into. It is
	// the working directory of the spawned server, so relative references
	// inside the server resolve the same way regardless of where the
	// launcher itself was invoked from.
	BaseDir string `json:"baseDir" yaml:"baseDir"`

	// Pause controls whether the launcher blocks on a key press before
	// exiting, giving the user a chance to read trailing output when the
	// terminal window would otherwise close immediately.
	Pause bool `json:"pause" yaml:"pause"`
}

// Validate checks whether the LaunchSpec has usable field values.
// It is called once after configuration resolution, before any side effect.
func (s *LaunchSpec) Validate() error {
	if s.Python == "" {
		return fmt.Errorf("launch spec: python interpreter must not be empty")
	}
	if s.Script == "" {
		return fmt.Errorf("launch spec: server script must not be empty")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("launch spec: port %d out of range (1-65535)", s.Port)
	}
	return nil
}

// URL returns the browser URL the user is told to open. The server always
// binds locally, so the host part is fixed.
func (s *LaunchSpec) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.Port)
}

// PortArg returns the port formatted as the single positional argument
// handed to the server process.
func (s *LaunchSpec) PortArg() string {
	return strconv.Itoa(s.Port)
}

// ServerInstance holds runtime information about a containerized server.
// This data is fetched dynamically from the Docker API, not persisted.
type ServerInstance struct {
	// ContainerID is the unique Docker container identifier.
	ContainerID string `json:"containerId"`

	// ContainerName is the human-readable Docker container name.
	ContainerName string `json:"containerName"`

	// Port is the published host port, parsed back from container labels.
	Port int `json:"port"`

	// Script is the server entry point the container was started with.
	Script string `json:"script"`

	// Status is the launcher's view of the container state.
	Status ServerStatus `json:"status"`

	// CreatedAt is the timestamp the container was created by the launcher.
	CreatedAt time.Time `json:"createdAt"`
}

// ExitCode defines the CLI exit codes surfaced to the calling shell.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully. The launch
	// command returns this even when the child server crashed: the child's
	// exit code is never forwarded as the launcher's own.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the configuration file could not be read
	// or contained invalid values.
	ExitConfigError ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	// Only container-mode commands can return this.
	ExitDockerNotRunning ExitCode = 3

	// ExitServerScriptNotFound indicates the server entry point is missing.
	// Only doctor and the container-mode pre-check return this; the local
	// launch path deliberately spawns without checking and lets the child
	// report the failure itself.
	ExitServerScriptNotFound ExitCode = 4
)

// ExitMissingRuntime is returned when the Python runtime probe fails.
// The launch contract pins this to 1, so it shares its value with
// ExitGeneralError; it has its own name because the missing-runtime path
// is the one classified error the launcher owns.
const ExitMissingRuntime ExitCode = 1

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// Reported creates a CLIError that carries only an exit code, for failures
// whose full remediation text has already been written to the console.
// The CLI layer exits with the code without printing anything further.
func Reported(code ExitCode) *CLIError {
	return &CLIError{Code: code}
}

// IsReported reports whether the error is a bare exit-code carrier whose
// message has already been shown to the user.
func (e *CLIError) IsReported() bool {
	return e.Message == "" && e.Err == nil
}
