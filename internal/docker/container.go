// container.go implements the container lifecycle operations for the
// launcher's container mode: starting the server container, discovering
// containers the launcher previously started (via labels), and stopping
// them.
package docker

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	log "github.com/sirupsen/logrus"

	"github.com/lumina-media/launcher/internal/model"
)

// ContainerName is the fixed name of the server container. The server is
// a singleton — it always binds the same configured port — so one name is
// enough and doubles as a natural guard against double starts.
const ContainerName = "lumina-server"

// RunServer starts the LUMINA server in a detached container and returns
// the new container's ID.
//
// The launcher directory is bind-mounted at /app and used as the working
// directory, so the containerized server sees exactly the files a local
// spawn would: the script, the web assets, and the downloads directory all
// live next to the launcher. The configured port is published 1:1 and the
// server command matches the local spawn contract — the script plus one
// positional argument, the port literal.
//
// The container is created with "docker run -d" as a child process rather
// than through the SDK: the SDK's ContainerCreate/ContainerStart pair
// needs hand-built Config/HostConfig structs, while the CLI accepts the
// same flags a user would type to reproduce the launch by hand.
func RunServer(ctx context.Context, spec *model.LaunchSpec) (string, error) {
	labels := BuildLabels(spec, time.Now())

	args := make([]string, 0, len(labels)*2+14)
	args = append(args, "run", "-d", "--name", ContainerName)
	for k, v := range labels {
		args = append(args, "--label", k+"="+v)
	}
	args = append(args,
		"-p", fmt.Sprintf("%d:%d", spec.Port, spec.Port),
		"-v", spec.BaseDir+":/app",
		"-w", "/app",
		spec.Image,
		"python", spec.Script, spec.PortArg(),
	)

	log.WithFields(log.Fields{
		"image": spec.Image,
		"port":  spec.Port,
		"name":  ContainerName,
	}).Debug("starting server container")

	cmd := exec.CommandContext(ctx, "docker", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("docker run failed: %s", strings.TrimSpace(string(output))),
			err,
		)
	}

	// On success "docker run -d" prints the full container ID on stdout.
	return strings.TrimSpace(string(output)), nil
}

// ListManagedServers queries the Docker daemon for all containers carrying
// the "lumina.managed-by=lumina-launcher" label, including stopped ones,
// and reconstructs a ServerInstance for each.
//
// The label filter is applied server-side by the daemon, which avoids
// pulling the host's full container list into the launcher.
func ListManagedServers(ctx context.Context, cli *Client) ([]model.ServerInstance, error) {
	filterArgs := filters.NewArgs(
		filters.Arg("label", LabelManagedBy+"="+ManagedByValue),
	)

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to list Docker containers",
			err,
		)
	}

	result := make([]model.ServerInstance, 0, len(containers))
	for _, c := range containers {
		instance, err := containerToInstance(c)
		if err != nil {
			// A container with broken labels is skipped rather than
			// failing the whole listing; it can still be removed with
			// plain docker commands.
			log.WithError(err).WithField("id", c.ID).Warn("skipping container with unreadable labels")
			continue
		}
		result = append(result, *instance)
	}

	return result, nil
}

// StopServer gracefully stops a server container by ID using the SDK.
// Docker sends SIGTERM and escalates to SIGKILL after its default timeout,
// which is the same shutdown a Ctrl-C delivers to a local spawn.
func StopServer(ctx context.Context, cli *Client, containerID string) error {
	// A nil Timeout selects the daemon's default grace period.
	if err := cli.Inner().ContainerStop(ctx, containerID, container.StopOptions{}); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to stop container %q", containerID),
			err,
		)
	}
	return nil
}

// RemoveServer removes a stopped server container by ID. With force set,
// a running container is killed first; this is used when a stale container
// still holds the fixed ContainerName.
func RemoveServer(ctx context.Context, cli *Client, containerID string, force bool) error {
	err := cli.Inner().ContainerRemove(ctx, containerID, container.RemoveOptions{
		Force: force,
	})
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to remove container %q", containerID),
			err,
		)
	}
	return nil
}

// containerToInstance converts a Docker API container into the launcher's
// domain model, combining label-derived fields with the live container
// identity and state.
func containerToInstance(c types.Container) (*model.ServerInstance, error) {
	instance, err := ParseLabels(c.Labels)
	if err != nil {
		return nil, err
	}

	instance.ContainerID = c.ID
	// The API returns names with a leading "/" that means nothing to
	// users, so it is stripped for display.
	if len(c.Names) > 0 {
		instance.ContainerName = strings.TrimPrefix(c.Names[0], "/")
	}
	instance.Status = model.StatusFromDockerState(c.State)

	return instance, nil
}
