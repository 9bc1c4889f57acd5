// Package pyruntime probes the host for the Python runtime the LUMINA
// server needs.
//
// The probe is an existence/availability check only: it runs the
// configured interpreter with --version, discards the output from the
// user's point of view, and keeps just the success/failure signal (plus
// the version string for diagnostic display in doctor). There is no
// fallback interpreter search — exactly one binary is probed, and a
// failure is fatal and non-retried.
package pyruntime

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lumina-media/launcher/internal/model"
)

// DownloadURL is the remediation link printed when the probe fails.
const DownloadURL = "https://www.python.org/downloads/"

// probeTimeout bounds the version query. A healthy interpreter answers in
// milliseconds; anything slower than this is as good as absent.
const probeTimeout = 10 * time.Second

// Runtime represents one candidate Python interpreter, identified by the
// binary name (or path) that will be resolved through the execution PATH.
type Runtime struct {
	// Binary is the interpreter executable, e.g. "python3" or "python".
	Binary string
}

// New creates a Runtime for the given interpreter binary.
func New(binary string) *Runtime {
	return &Runtime{Binary: binary}
}

// Probe runs the interpreter's version query and reports whether the
// runtime is usable. The query's console output is suppressed — it is
// captured into memory and only the trimmed version string is returned,
// for display by diagnostic commands.
//
// Returns a model.CLIError with ExitMissingRuntime when the binary cannot
// be found, cannot be executed, or exits nonzero.
func (r *Runtime) Probe(ctx context.Context) (string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	// CombinedOutput captures stdout and stderr together. Older Python 2
	// interpreters print their version banner to stderr, newer ones to
	// stdout, so only the combined stream is reliable.
	cmd := exec.CommandContext(probeCtx, r.Binary, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.WithError(err).WithField("binary", r.Binary).Debug("runtime probe failed")
		return "", model.WrapCLIError(
			model.ExitMissingRuntime,
			fmt.Sprintf("%s is not installed or not on PATH", r.Binary),
			err,
		)
	}

	version := strings.TrimSpace(string(output))
	log.WithFields(log.Fields{
		"binary":  r.Binary,
		"version": version,
	}).Debug("runtime probe succeeded")
	return version, nil
}
