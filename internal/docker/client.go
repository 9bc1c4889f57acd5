// Package docker implements the launcher's container mode: running the
// LUMINA server inside a Docker container when no host Python install is
// available, and discovering previously started servers via container
// labels.
package docker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/docker/docker/client"
	log "github.com/sirupsen/logrus"

	"github.com/lumina-media/launcher/internal/model"
)

// windowsPipeHost is the Docker Desktop named pipe on Windows. Named pipes
// cannot be probed with os.Stat or a plain TCP dial, so the URI is used
// as-is and Ping answers the liveness question.
const windowsPipeHost = "npipe:////./pipe/docker_engine"

// defaultPingTimeout bounds the daemon liveness check. Docker Desktop on
// macOS can take a few seconds to answer when it is waking up, so the
// timeout is generous.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client with launcher-specific
// behavior: automatic socket detection across platforms and error
// translation into model.CLIError with the container-mode exit code.
//
// Usage:
//
//	c, err := docker.NewClient()
//	if err != nil { /* handle */ }
//	defer c.Close()
//	if err := c.Ping(ctx); err != nil { /* Docker not running */ }
type Client struct {
	// inner is the underlying Docker SDK client. Wrapped rather than
	// embedded to keep the exposed surface small.
	inner *client.Client
}

// NewClient creates a Docker client for the current platform.
//
// Connection order:
//  1. DOCKER_HOST environment variable, used as-is when set.
//  2. Unix socket candidates (/var/run/docker.sock, plus Docker Desktop's
//     per-user socket on macOS), first one that exists.
//  3. On Windows, the docker_engine named pipe, unconditionally.
//
// Existence of the endpoint is only checked where the filesystem can
// answer cheaply (unix sockets); whether the daemon is actually up is
// Ping's job in every case. Returns a model.CLIError with
// ExitDockerNotRunning when no endpoint can be determined or the client
// cannot be created.
func NewClient() (*Client, error) {
	if dockerHost := os.Getenv("DOCKER_HOST"); dockerHost != "" {
		return newClientWithHost(dockerHost)
	}

	host, err := defaultDockerHost(runtime.GOOS)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning, "Docker endpoint not found", err)
	}
	return newClientWithHost(host)
}

// newClientWithHost creates a Docker client bound to the given connection
// string (e.g. "unix:///var/run/docker.sock").
func newClientWithHost(host string) (*Client, error) {
	// API version negotiation keeps the launcher compatible with whatever
	// daemon version the host runs, without pinning an API version here.
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}

	log.WithField("host", host).Debug("created Docker client")
	return &Client{inner: c}, nil
}

// defaultDockerHost returns the connection string for the given platform
// when DOCKER_HOST is unset.
//
// Windows always gets the named pipe URI: there is no portable way to
// check a named pipe's existence from the standard library, and a wrong
// guess costs nothing because Ping fails fast with the same remediation.
// Elsewhere the unix socket candidates are checked with Stat and the
// first existing one wins.
func defaultDockerHost(goos string) (string, error) {
	if goos == "windows" {
		return windowsPipeHost, nil
	}

	candidates := socketCandidates(goos)
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of %v — is Docker running?", candidates)
}

// socketCandidates lists the unix socket paths to try for a platform, in
// preference order. Docker Desktop on macOS places the socket under the
// user's home directory when it does not symlink /var/run/docker.sock.
func socketCandidates(goos string) []string {
	candidates := []string{"/var/run/docker.sock"}
	if goos == "darwin" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(homeDir, ".docker", "run", "docker.sock"))
		}
	}
	return candidates
}

// Ping verifies that the Docker daemon is reachable and responsive.
// Returns a model.CLIError with ExitDockerNotRunning on failure.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			"Docker daemon is not responding — is Docker running?",
			err,
		)
	}
	return nil
}

// Close releases the resources held by the Docker client. Safe to call
// multiple times; typically deferred right after NewClient.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// Inner exposes the underlying SDK client for operations not wrapped by
// this package. Callers should prefer the Client methods when one exists.
func (c *Client) Inner() *client.Client {
	return c.inner
}
