// Package cli — status.go implements the "lumina-launcher status" command.
//
// Status applies to container mode only: it lists server containers
// carrying the lumina.managed-by label, including stopped ones. Local
// spawns are direct children of the launcher and need no discovery — the
// launcher is still attached to them.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumina-media/launcher/internal/docker"
	"github.com/lumina-media/launcher/internal/model"
)

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server containers started by the launcher",
		Long: `List server containers previously started with "launch --container".

Containers are discovered via their lumina.* labels; stopped containers
are included so leftovers remain visible.

Examples:
  lumina-launcher status
  lumina-launcher status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}
}

// runStatus lists the launcher's server containers.
func runStatus(ctx context.Context) error {
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

	if IsJSONOutput() {
		printStatusJSON(servers)
	} else {
		printStatusText(servers)
	}
	return nil
}

// printStatusJSON renders the server list as a JSON array on stdout.
// An empty list renders as [] rather than null so consumers can always
// iterate the result.
func printStatusJSON(servers []model.ServerInstance) {
	if servers == nil {
		servers = []model.ServerInstance{}
	}
	data, _ := json.MarshalIndent(servers, "", "  ")
	fmt.Println(string(data))
}

// printStatusText renders the server list as a small table.
func printStatusText(servers []model.ServerInstance) {
	if len(servers) == 0 {
		fmt.Println("No server containers found.")
		fmt.Println("Start one with: lumina-launcher launch --container")
		return
	}

	fmt.Printf("%-16s %-10s %-6s %-14s %s\n", "NAME", "STATUS", "PORT", "SCRIPT", "CREATED")
	for _, s := range servers {
		created := "-"
		if !s.CreatedAt.IsZero() {
			created = s.CreatedAt.Local().Format(time.RFC3339)
		}
		fmt.Printf("%-16s %-10s %-6d %-14s %s\n",
			s.ContainerName, s.Status, s.Port, s.Script, created)
	}
}
