package docker

import (
	"testing"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-media/launcher/internal/model"
)

func testLaunchSpec() *model.LaunchSpec {
	return &model.LaunchSpec{
		Python:  "python3",
		Script:  "server.py",
		Port:    8000,
		Image:   "python:3.12-slim",
		BaseDir: "/opt/lumina",
		Pause:   true,
	}
}

// TestBuildLabels verifies the label schema written onto server containers.
func TestBuildLabels(t *testing.T) {
	createdAt := time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC)
	labels := BuildLabels(testLaunchSpec(), createdAt)

	assert.Equal(t, "lumina-launcher", labels[LabelManagedBy])
	assert.Equal(t, "8000", labels[LabelPort])
	assert.Equal(t, "server.py", labels[LabelScript])
	assert.Equal(t, "2026-08-20T12:30:00Z", labels[LabelCreatedAt])
}

// TestBuildLabels_UTCNormalization verifies that timestamps are stored in
// UTC regardless of the host timezone.
func TestBuildLabels_UTCNormalization(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	createdAt := time.Date(2026, 8, 20, 21, 30, 0, 0, loc)

	labels := BuildLabels(testLaunchSpec(), createdAt)
	assert.Equal(t, "2026-08-20T12:30:00Z", labels[LabelCreatedAt])
}

// TestParseLabels_RoundTrip verifies that ParseLabels reconstructs the
// fields BuildLabels wrote.
func TestParseLabels_RoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC)
	labels := BuildLabels(testLaunchSpec(), createdAt)

	instance, err := ParseLabels(labels)
	require.NoError(t, err)

	assert.Equal(t, 8000, instance.Port)
	assert.Equal(t, "server.py", instance.Script)
	assert.True(t, createdAt.Equal(instance.CreatedAt))
}

// TestParseLabels_ForeignContainer verifies that containers not started by
// the launcher are rejected, even if they happen to carry a lumina.port
// label.
func TestParseLabels_ForeignContainer(t *testing.T) {
	_, err := ParseLabels(map[string]string{
		LabelPort:   "8000",
		LabelScript: "server.py",
	})
	assert.Error(t, err)

	_, err = ParseLabels(map[string]string{
		LabelManagedBy: "some-other-tool",
		LabelPort:      "8000",
	})
	assert.Error(t, err)
}

// TestParseLabels_MissingOrBrokenFields verifies error handling for labels
// the launcher itself would never write.
func TestParseLabels_MissingOrBrokenFields(t *testing.T) {
	_, err := ParseLabels(map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelScript:    "server.py",
	})
	assert.Error(t, err, "missing port label should be rejected")

	_, err = ParseLabels(map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelPort:      "not-a-number",
		LabelScript:    "server.py",
	})
	assert.Error(t, err, "non-numeric port label should be rejected")
}

// TestParseLabels_BadTimestampDegrades verifies that a corrupt created-at
// label degrades to the zero time instead of hiding the container.
func TestParseLabels_BadTimestampDegrades(t *testing.T) {
	instance, err := ParseLabels(map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelPort:      "8000",
		LabelScript:    "server.py",
		LabelCreatedAt: "yesterday-ish",
	})
	require.NoError(t, err)
	assert.True(t, instance.CreatedAt.IsZero())
}

// TestContainerToInstance verifies the mapping from a Docker API container
// to the domain model, including the name prefix strip and state mapping.
func TestContainerToInstance(t *testing.T) {
	c := types.Container{
		ID:    "abc123def456",
		Names: []string{"/" + ContainerName},
		State: "running",
		Labels: map[string]string{
			LabelManagedBy: ManagedByValue,
			LabelPort:      "8000",
			LabelScript:    "server.py",
			LabelCreatedAt: "2026-08-20T12:30:00Z",
		},
	}

	instance, err := containerToInstance(c)
	require.NoError(t, err)

	assert.Equal(t, "abc123def456", instance.ContainerID)
	assert.Equal(t, ContainerName, instance.ContainerName)
	assert.Equal(t, model.StatusRunning, instance.Status)
	assert.Equal(t, 8000, instance.Port)

	c.State = "exited"
	instance, err = containerToInstance(c)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExited, instance.Status)
}
