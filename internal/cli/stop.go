// Package cli — stop.go implements the "lumina-launcher stop" command.
//
// Stop applies to container mode only: it gracefully stops the running
// server container(s) started with "launch --container". A local spawn
// needs no stop command — Ctrl-C in its terminal already reaches the
// child directly.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumina-media/launcher/internal/docker"
	"github.com/lumina-media/launcher/internal/model"
)

// NewStopCommand creates the "stop" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the server container",
		Long: `Stop the server container started with "launch --container".

The container is stopped gracefully (SIGTERM, then SIGKILL after the
Docker daemon's grace period) but not removed; "launch --container"
clears it automatically on the next start.

Examples:
  lumina-launcher stop
  lumina-launcher stop --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop(cmd.Context())
		},
	}
}

// runStop stops every running server container the launcher started.
// There is normally exactly one, but stray duplicates (e.g. from a renamed
// binary) are stopped too rather than left running unnoticed.
func runStop(ctx context.Context) error {
	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return err
	}

	servers, err := docker.ListManagedServers(ctx, cli)
	if err != nil {
		return err
	}

	var stopped []model.ServerInstance
	for _, s := range servers {
		if s.Status != model.StatusRunning {
			continue
		}
		log.WithField("id", s.ContainerID).Debug("stopping server container")
		if err := docker.StopServer(ctx, cli, s.ContainerID); err != nil {
			return err
		}
		stopped = append(stopped, s)
	}

	printStopResult(stopped)
	return nil
}

// printStopResult reports which containers were stopped, in text or JSON.
func printStopResult(stopped []model.ServerInstance) {
	if IsJSONOutput() {
		type resultJSON struct {
			Action  string                 `json:"action"`
			Stopped []model.ServerInstance `json:"stopped"`
		}
		result := resultJSON{Action: "stopped", Stopped: stopped}
		if result.Stopped == nil {
			result.Stopped = []model.ServerInstance{}
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(stopped) == 0 {
		fmt.Println("No running server container found.")
		return
	}
	for _, s := range stopped {
		fmt.Printf("Stopped %s (port %d)\n", s.ContainerName, s.Port)
	}
}
