// Package cli — doctor.go implements the "lumina-launcher doctor" command.
//
// Doctor is a non-mutating environment report: it runs the same Python
// probe as launch, checks that the server script exists, reports whether
// the configured port currently looks free, and whether Docker is
// available for container mode.
//
// The port check is informational only. The launch path never probes the
// port — the server's own bind failure is the authoritative signal — so
// doctor saying "in use" may simply mean the server is already running.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumina-media/launcher/internal/config"
	"github.com/lumina-media/launcher/internal/docker"
	"github.com/lumina-media/launcher/internal/launcher"
	"github.com/lumina-media/launcher/internal/model"
	"github.com/lumina-media/launcher/internal/port"
	"github.com/lumina-media/launcher/internal/pyruntime"
)

// NewDoctorCommand creates the "doctor" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment the server needs",
		Long: `Check the launcher's environment without starting anything.

Reports the Python runtime, the server script, the configured port, and
Docker availability (needed only for --container mode).

Examples:
  lumina-launcher doctor
  lumina-launcher doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

// doctorReport is the outcome of all environment checks. It doubles as
// the --json output shape.
type doctorReport struct {
	// Runtime checks.
	PythonBinary  string `json:"pythonBinary"`
	PythonOK      bool   `json:"pythonOk"`
	PythonVersion string `json:"pythonVersion,omitempty"`

	// Script check.
	ScriptPath string `json:"scriptPath"`
	ScriptOK   bool   `json:"scriptOk"`

	// Port check (informational).
	Port     int  `json:"port"`
	PortFree bool `json:"portFree"`

	// Docker check (optional capability).
	DockerOK bool `json:"dockerOk"`
}

// runDoctor executes all checks and renders the report. The exit code
// reflects only the two hard prerequisites: the runtime and the script.
func runDoctor(ctx context.Context) error {
	baseDir, err := launcher.SelfDir()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve launcher directory", err)
	}

	spec, err := config.Resolve(baseDir, configPath)
	if err != nil {
		return err
	}

	report := &doctorReport{
		PythonBinary: spec.Python,
		ScriptPath:   filepath.Join(spec.BaseDir, spec.Script),
		Port:         spec.Port,
	}

	if version, probeErr := pyruntime.New(spec.Python).Probe(ctx); probeErr == nil {
		report.PythonOK = true
		report.PythonVersion = version
	}

	if _, statErr := os.Stat(report.ScriptPath); statErr == nil {
		report.ScriptOK = true
	}

	report.PortFree = port.NewScanner().IsAvailable(spec.Port)

	report.DockerOK = dockerAvailable(ctx)

	if IsJSONOutput() {
		printDoctorJSON(report)
	} else {
		printDoctorText(report)
	}

	// Hard prerequisites determine the exit code; the report above is the
	// user-facing explanation, so the error itself stays silent.
	if !report.PythonOK {
		return model.Reported(model.ExitMissingRuntime)
	}
	if !report.ScriptOK {
		return model.Reported(model.ExitServerScriptNotFound)
	}
	return nil
}

// dockerAvailable reports whether a Docker daemon answers a ping. Any
// failure — no socket, no daemon, timeout — counts as unavailable.
func dockerAvailable(ctx context.Context) bool {
	cli, err := docker.NewClient()
	if err != nil {
		return false
	}
	defer func() { _ = cli.Close() }()
	return cli.Ping(ctx) == nil
}

// printDoctorJSON renders the report as indented JSON on stdout.
func printDoctorJSON(report *doctorReport) {
	data, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(data))
}

// printDoctorText renders the report as a human-readable checklist.
func printDoctorText(report *doctorReport) {
	fmt.Println("LUMINA environment report")
	fmt.Println()

	if report.PythonOK {
		fmt.Printf("  [OK]   Python runtime: %s (%s)\n", report.PythonVersion, report.PythonBinary)
	} else {
		fmt.Printf("  [FAIL] Python runtime: %s is not installed or not in PATH\n", report.PythonBinary)
		fmt.Printf("         Download: %s\n", pyruntime.DownloadURL)
	}

	if report.ScriptOK {
		fmt.Printf("  [OK]   Server script: %s\n", report.ScriptPath)
	} else {
		fmt.Printf("  [FAIL] Server script: %s not found\n", report.ScriptPath)
	}

	if report.PortFree {
		fmt.Printf("  [OK]   Port %d: free\n", report.Port)
	} else {
		fmt.Printf("  [WARN] Port %d: in use (the server may already be running)\n", report.Port)
	}

	if report.DockerOK {
		fmt.Println("  [OK]   Docker: available (optional, for --container mode)")
	} else {
		fmt.Println("  [WARN] Docker: not available (optional, for --container mode)")
	}
}
