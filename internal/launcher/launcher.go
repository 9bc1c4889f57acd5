// Package launcher implements the sequential startup flow of the LUMINA
// local server: banner, runtime probe, spawn, wait, pause.
//
// The flow is deliberately linear with a single branch:
//
//	{Start} → {Probe} → ({Fail, Pause, Halt(1)} | {Launch} → {WaitChild} → {Pause} → {Exit(0)})
//
// Everything past the spawn is the child's responsibility: the launcher
// neither inspects nor forwards the child's exit code, and a crash simply
// leaves the child's own output on the console for the user to read during
// the final pause.
package launcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lumina-media/launcher/internal/model"
	"github.com/lumina-media/launcher/internal/pyruntime"
)

// Prober is the runtime prerequisite check. It is satisfied by
// *pyruntime.Runtime and by test doubles.
type Prober interface {
	// Probe returns the runtime's version string, or an error when the
	// runtime is absent or unusable.
	Probe(ctx context.Context) (string, error)
}

// Runner spawns the server process and blocks until it exits.
// It is satisfied by ExecRunner (direct child process), by the watch
// package's restarting supervisor, and by test doubles.
type Runner interface {
	// Run starts the server described by spec with the given output
	// streams and returns once the server has exited, for any reason.
	Run(ctx context.Context, spec *model.LaunchSpec, stdout, stderr io.Writer) error
}

// stopGracePeriod is how long a cancelled server gets to shut down after
// SIGTERM before it is hard-killed. Matches the Docker daemon's default
// grace period, so local and container stops feel the same.
const stopGracePeriod = 10 * time.Second

// ExecRunner runs the server as a direct child process of the launcher.
// This is the default Runner and reproduces the original launch behavior.
type ExecRunner struct{}

// Run spawns "<python> <script> <port>" with the launcher directory as the
// child's working directory and blocks until the child exits.
//
// The script's existence is intentionally not checked first: a missing
// script fails inside the child, whose error output reaches the console
// unfiltered. The launcher owns only the runtime prerequisite check.
func (ExecRunner) Run(ctx context.Context, spec *model.LaunchSpec, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, spec.Python, spec.Script, spec.PortArg())

	// The child resolves its own relative references (the script itself,
	// web assets, download directories) against the launcher directory,
	// no matter where the launcher was invoked from.
	cmd.Dir = spec.BaseDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Stdin = os.Stdin

	// On cancellation (a watch-mode restart, or the launcher being torn
	// down) the server is asked to stop with SIGTERM first, so it can
	// finish in-flight work and run its shutdown handlers. WaitDelay
	// escalates to a hard kill if the signal is ignored.
	cmd.Cancel = func() error {
		if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
			// Signal delivery is not supported on every platform
			// (Windows); fall back to the hard kill directly.
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = stopGracePeriod

	log.WithFields(log.Fields{
		"python": spec.Python,
		"script": spec.Script,
		"port":   spec.PortArg(),
		"dir":    spec.BaseDir,
	}).Debug("spawning server process")

	return cmd.Run()
}

// Launcher orchestrates one launch. All collaborators are injectable so
// the full console contract can be exercised in tests without a real
// interpreter, server, or terminal.
type Launcher struct {
	// Spec is the resolved launch specification.
	Spec *model.LaunchSpec

	// Prober performs the runtime prerequisite check.
	Prober Prober

	// Runner spawns and waits for the server process.
	Runner Runner

	// Stdout receives the user-facing contract lines: banner, info lines,
	// error block, and pause prompt. Diagnostics go to logrus instead.
	Stdout io.Writer

	// Stderr is handed to the child process for its own error output.
	Stderr io.Writer

	// Stdin is read for the final key-press pause.
	Stdin io.Reader
}

// New creates a Launcher with the production collaborators: a pyruntime
// probe for the spec's interpreter, a direct process runner, and the
// process's standard streams.
func New(spec *model.LaunchSpec) *Launcher {
	return &Launcher{
		Spec:   spec,
		Prober: pyruntime.New(spec.Python),
		Runner: ExecRunner{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// Run executes the launch sequence.
//
// On probe failure it prints the three-line error block plus a blank line,
// pauses, and returns a CLIError with ExitMissingRuntime — the server is
// never spawned. On success it prints the two info lines, runs the server
// to completion, pauses, and returns nil regardless of how the child
// exited: the child's exit code is never the launcher's.
func (l *Launcher) Run(ctx context.Context) error {
	// Anchor the process working directory at the launcher's own directory
	// before anything else, so even code paths that ignore Spec.BaseDir
	// (or the child inheriting the cwd) resolve relative paths correctly.
	if err := os.Chdir(l.Spec.BaseDir); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to enter launcher directory %s", l.Spec.BaseDir), err)
	}

	l.printBanner()

	if _, err := l.Prober.Probe(ctx); err != nil {
		l.printMissingRuntime()
		l.pause()
		log.WithError(err).Debug("runtime probe failed, launch aborted")
		// The remediation block above is the user-facing report; the
		// returned error only carries the exit code.
		return model.Reported(model.ExitMissingRuntime)
	}

	fmt.Fprintln(l.Stdout, "Starting local server...")
	fmt.Fprintf(l.Stdout, "Open your browser at: %s\n", l.Spec.URL())
	fmt.Fprintln(l.Stdout)

	if err := l.Runner.Run(ctx, l.Spec, l.Stdout, l.Stderr); err != nil {
		// Opaque by design: the child's failure already reached the
		// console through its own streams. Record it for --verbose runs
		// and move on to the pause so the user can read the output.
		log.WithError(err).Debug("server process exited with error")
	}

	l.pause()
	return nil
}

// printBanner writes the fixed product banner.
func (l *Launcher) printBanner() {
	PrintBanner(l.Stdout)
}

// PrintBanner writes the fixed product banner to w. Exposed so container
// mode can open with the same title block as a local launch.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "   LUMINA Media Downloader")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w)
}

// printMissingRuntime writes the fatal error block: three lines plus a
// trailing blank line, matching the documented console contract.
func (l *Launcher) printMissingRuntime() {
	fmt.Fprintf(l.Stdout, "[ERROR] %s is not installed or not in PATH.\n", l.Spec.Python)
	fmt.Fprintln(l.Stdout, "Please install Python 3 and run the launcher again.")
	fmt.Fprintf(l.Stdout, "Download: %s\n", pyruntime.DownloadURL)
	fmt.Fprintln(l.Stdout)
}

// pause blocks until the user presses Enter, so the terminal window does
// not close before trailing output can be read. Disabled via the "pause"
// configuration key; a closed stdin (EOF) unblocks immediately.
func (l *Launcher) pause() {
	if !l.Spec.Pause {
		return
	}
	fmt.Fprint(l.Stdout, "Press Enter to exit...")
	// ReadString returns on the first newline or on EOF; either way the
	// launcher has given the user their chance to read the screen.
	_, _ = bufio.NewReader(l.Stdin).ReadString('\n')
	fmt.Fprintln(l.Stdout)
}

// SelfDir resolves the directory containing the launcher executable.
// Symlinks are resolved so that a launcher invoked through a symlink in
// PATH still anchors at its real install directory, next to server.py.
func SelfDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate launcher executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		// Fall back to the unresolved path; a broken symlink chain is not
		// worth failing the launch over.
		resolved = exe
	}
	return filepath.Dir(resolved), nil
}
