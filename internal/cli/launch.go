// Package cli — launch.go implements the "lumina-launcher launch" command,
// which is also what the bare binary runs.
//
// The default (local) mode reproduces the original launcher contract:
// banner, Python probe, spawn "<python> server.py <port>", block, pause.
// Two opt-in variations exist: --watch restarts the server when the script
// changes, and --container runs the server in a Docker container instead
// of probing for a host Python install.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumina-media/launcher/internal/config"
	"github.com/lumina-media/launcher/internal/docker"
	"github.com/lumina-media/launcher/internal/launcher"
	"github.com/lumina-media/launcher/internal/model"
	"github.com/lumina-media/launcher/internal/watch"
)

// launchOptions holds the flag values for the launch command.
type launchOptions struct {
	// watch enables the fsnotify supervisor: the server is restarted when
	// the server script changes on disk.
	watch bool

	// container runs the server in a Docker container instead of a local
	// Python process.
	container bool
}

// bindLaunchFlags registers the launch flags on cmd. The root command
// calls this too, so "lumina-launcher --watch" and
// "lumina-launcher launch --watch" behave identically.
func bindLaunchFlags(cmd *cobra.Command, opts *launchOptions) {
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Restart the server when the server script changes")
	cmd.Flags().BoolVar(&opts.container, "container", false, "Run the server in a Docker container")
}

// NewLaunchCommand creates the "launch" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLaunchCommand() *cobra.Command {
	opts := &launchOptions{}

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Start the LUMINA local server",
		Long: `Start the LUMINA Media Downloader local web server.

Verifies the Python runtime, spawns the colocated server script with the
configured port (default 8000), and blocks until the server stops. The
terminal stays open for a final key press so trailing output stays
readable.

Examples:
  lumina-launcher launch
  lumina-launcher launch --watch
  lumina-launcher launch --container`,

		// Stray positional arguments are ignored, matching the root.
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), opts)
		},
	}

	bindLaunchFlags(cmd, opts)
	return cmd
}

// runLaunch resolves the launch spec and dispatches to the selected mode.
func runLaunch(ctx context.Context, opts *launchOptions) error {
	baseDir, err := launcher.SelfDir()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve launcher directory", err)
	}

	spec, err := config.Resolve(baseDir, configPath)
	if err != nil {
		return err
	}

	mode := model.ModeLocal
	if opts.container {
		mode = model.ModeContainer
	}

	log.WithFields(log.Fields{
		"dir":    spec.BaseDir,
		"port":   spec.Port,
		"script": spec.Script,
		"mode":   mode,
	}).Debug("resolved launch configuration")

	if mode == model.ModeContainer {
		return runContainerLaunch(ctx, spec, os.Stdout)
	}

	l := launcher.New(spec)
	if opts.watch {
		l.Runner = watch.NewSupervisor(launcher.ExecRunner{})
	}
	return l.Run(ctx)
}

// runContainerLaunch starts the server in a Docker container.
//
// Unlike the local path, the script's existence is checked up front: a
// container spawn failure would otherwise surface as an opaque Docker
// error long after the image pull, which is a much worse failure mode
// than the local child printing its own traceback.
func runContainerLaunch(ctx context.Context, spec *model.LaunchSpec, stdout io.Writer) error {
	launcher.PrintBanner(stdout)

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return err
	}
	log.Debug("connected to Docker daemon")

	scriptPath := filepath.Join(spec.BaseDir, spec.Script)
	if _, err := os.Stat(scriptPath); err != nil {
		return model.WrapCLIError(model.ExitServerScriptNotFound,
			fmt.Sprintf("server script not found at %s", scriptPath), err)
	}

	// The server container has a fixed name, so a leftover from an earlier
	// run must be cleared first. A running one means the server is already
	// up — starting a second would just fight over the port.
	if err := clearStaleServer(ctx, cli); err != nil {
		return err
	}

	containerID, err := docker.RunServer(ctx, spec)
	if err != nil {
		return err
	}

	printContainerStarted(stdout, spec, containerID)
	return nil
}

// printContainerStarted writes the container-mode counterpart of the local
// launch's info lines, plus the handle the user needs to stop the server.
func printContainerStarted(w io.Writer, spec *model.LaunchSpec, containerID string) {
	fmt.Fprintln(w, "Starting local server (container mode)...")
	fmt.Fprintf(w, "Open your browser at: %s\n", spec.URL())
	fmt.Fprintln(w)

	shortID := containerID
	if len(shortID) > 12 {
		shortID = shortID[:12]
	}
	fmt.Fprintf(w, "Container: %s (%s)\n", docker.ContainerName, shortID)
	fmt.Fprintln(w, "Stop it with: lumina-launcher stop")
}

// clearStaleServer removes an exited server container that still holds the
// fixed container name, and refuses to start when one is already running.
func clearStaleServer(ctx context.Context, cli *docker.Client) error {
	servers, err := docker.ListManagedServers(ctx, cli)
	if err != nil {
		return err
	}

	for _, s := range servers {
		if s.ContainerName != docker.ContainerName {
			continue
		}
		if s.Status == model.StatusRunning {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("the server is already running on port %d — stop it first with \"lumina-launcher stop\"", s.Port))
		}

		log.WithField("id", s.ContainerID).Debug("removing stale server container")
		if err := docker.RemoveServer(ctx, cli, s.ContainerID, false); err != nil {
			return err
		}
	}
	return nil
}
