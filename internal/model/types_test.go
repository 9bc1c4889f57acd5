package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLaunchSpecValidate_Defaults verifies that a spec built from the
// documented defaults passes validation.
func TestLaunchSpecValidate_Defaults(t *testing.T) {
	spec := &LaunchSpec{
		Python:  "python3",
		Script:  "server.py",
		Port:    DefaultPort,
		BaseDir: "/opt/lumina",
		Pause:   true,
	}

	require.NoError(t, spec.Validate())
}

// TestLaunchSpecValidate_PortRange verifies that out-of-range ports are
// rejected. The port is handed to the child verbatim, so this is the only
// place an impossible port can be caught.
func TestLaunchSpecValidate_PortRange(t *testing.T) {
	spec := &LaunchSpec{Python: "python3", Script: "server.py", Port: 0}
	err := spec.Validate()
	assert.Error(t, err, "port 0 should be rejected")
	assert.Contains(t, err.Error(), "out of range")

	spec.Port = 65536
	assert.Error(t, spec.Validate(), "port 65536 should be rejected")

	spec.Port = 65535
	assert.NoError(t, spec.Validate(), "port 65535 is the highest valid port")
}

// TestLaunchSpecValidate_MissingFields verifies that an empty interpreter
// or script name fails validation before any side effect can happen.
func TestLaunchSpecValidate_MissingFields(t *testing.T) {
	spec := &LaunchSpec{Script: "server.py", Port: 8000}
	assert.Error(t, spec.Validate(), "empty interpreter should be rejected")

	spec = &LaunchSpec{Python: "python3", Port: 8000}
	assert.Error(t, spec.Validate(), "empty script should be rejected")
}

// TestLaunchSpecURL verifies that the printed URL tracks the configured
// port and nothing else: changing the port literal must change only the
// child argument and the URL.
func TestLaunchSpecURL(t *testing.T) {
	spec := &LaunchSpec{Python: "python3", Script: "server.py", Port: 8000}
	assert.Equal(t, "http://localhost:8000", spec.URL())
	assert.Equal(t, "8000", spec.PortArg())

	spec.Port = 9090
	assert.Equal(t, "http://localhost:9090", spec.URL())
	assert.Equal(t, "9090", spec.PortArg())
}

// TestServerStatus_Valid verifies the enum helpers for ServerStatus.
func TestServerStatus_Valid(t *testing.T) {
	assert.True(t, StatusRunning.IsValid())
	assert.True(t, StatusExited.IsValid())
	assert.False(t, ServerStatus("paused").IsValid())
	assert.Equal(t, "running", StatusRunning.String())
}

// TestStatusFromDockerState verifies the mapping from Docker container
// states to the launcher's two-state view. Every non-running Docker state
// collapses to exited.
func TestStatusFromDockerState(t *testing.T) {
	assert.Equal(t, StatusRunning, StatusFromDockerState("running"))
	assert.Equal(t, StatusExited, StatusFromDockerState("exited"))
	assert.Equal(t, StatusExited, StatusFromDockerState("created"))
	assert.Equal(t, StatusExited, StatusFromDockerState("paused"))
	assert.Equal(t, StatusExited, StatusFromDockerState(""))
}

// TestLaunchMode_Valid verifies the enum helpers for LaunchMode.
func TestLaunchMode_Valid(t *testing.T) {
	assert.True(t, ModeLocal.IsValid())
	assert.True(t, ModeContainer.IsValid())
	assert.False(t, LaunchMode("remote").IsValid())
}

// TestCLIError_Unwrap verifies that CLIError participates in Go's error
// wrapping conventions and renders both message and cause.
func TestCLIError_Unwrap(t *testing.T) {
	underlying := assert.AnError
	err := WrapCLIError(ExitConfigError, "failed to load config", underlying)

	assert.Equal(t, ExitConfigError, err.Code)
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "failed to load config")

	bare := NewCLIError(ExitMissingRuntime, "python not found")
	assert.Nil(t, bare.Unwrap())
	assert.Equal(t, "python not found", bare.Error())
}

// TestReported verifies the bare exit-code carrier used for failures whose
// message already reached the console.
func TestReported(t *testing.T) {
	err := Reported(ExitMissingRuntime)
	assert.True(t, err.IsReported())
	assert.Equal(t, ExitMissingRuntime, err.Code)

	assert.False(t, NewCLIError(ExitGeneralError, "boom").IsReported())
	assert.False(t, WrapCLIError(ExitGeneralError, "", assert.AnError).IsReported())
}

// TestExitCodes verifies the documented exit code table. The missing
// runtime case is pinned to 1 by the launch contract.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitCode(0), ExitSuccess)
	assert.Equal(t, ExitCode(1), ExitGeneralError)
	assert.Equal(t, ExitCode(1), ExitMissingRuntime)
	assert.Equal(t, ExitCode(2), ExitConfigError)
	assert.Equal(t, ExitCode(3), ExitDockerNotRunning)
	assert.Equal(t, ExitCode(4), ExitServerScriptNotFound)
}
