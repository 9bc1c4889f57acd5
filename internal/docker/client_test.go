package docker

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultDockerHost_Windows verifies that Windows gets the named pipe
// URI without any filesystem or network probing: named pipes cannot be
// stat'ed or dialed portably, so liveness is left entirely to Ping.
func TestDefaultDockerHost_Windows(t *testing.T) {
	host, err := defaultDockerHost("windows")
	require.NoError(t, err, "the named pipe URI must be returned unconditionally")
	assert.Equal(t, "npipe:////./pipe/docker_engine", host)
}

// TestSocketCandidates verifies the per-platform unix socket search order.
func TestSocketCandidates(t *testing.T) {
	linux := socketCandidates("linux")
	assert.Equal(t, []string{"/var/run/docker.sock"}, linux)

	darwin := socketCandidates("darwin")
	require.NotEmpty(t, darwin)
	assert.Equal(t, "/var/run/docker.sock", darwin[0],
		"the system socket must be preferred over the per-user one")
	if len(darwin) > 1 {
		suffix := filepath.Join(".docker", "run", "docker.sock")
		assert.True(t, strings.HasSuffix(darwin[1], suffix),
			"the fallback must be Docker Desktop's per-user socket, got %s", darwin[1])
	}
}

// TestNewClient_DockerHostOverride verifies that DOCKER_HOST bypasses
// detection entirely. Client creation is lazy, so no daemon is needed.
func TestNewClient_DockerHostOverride(t *testing.T) {
	t.Setenv("DOCKER_HOST", "unix:///tmp/lumina-test-docker.sock")

	c, err := NewClient()
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, "unix:///tmp/lumina-test-docker.sock", c.Inner().DaemonHost())
}
