package docker

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lumina-media/launcher/internal/model"
)

// Label key constants define the Docker label keys that persist server
// metadata on containers started in container mode. The labels are the
// sole state store — there is no external file tracking what the launcher
// started.
//
// All keys share the "lumina." prefix to namespace them away from labels
// set by other tooling on the same host.
const (
	// LabelPrefix is the common prefix for all lumina-launcher labels.
	LabelPrefix = "lumina."

	// LabelManagedBy identifies containers started by lumina-launcher.
	// This is the primary label used for filtering and discovery.
	// Key: "lumina.managed-by", Value: always "lumina-launcher".
	LabelManagedBy = LabelPrefix + "managed-by"

	// LabelPort stores the published host port.
	// Key: "lumina.port", Value: decimal port number (e.g. "8000").
	LabelPort = LabelPrefix + "port"

	// LabelScript stores the server entry point the container runs.
	// Key: "lumina.script", Value: script name (e.g. "server.py").
	LabelScript = LabelPrefix + "script"

	// LabelCreatedAt stores when the launcher started the container.
	// Key: "lumina.created-at", Value: RFC3339 timestamp in UTC.
	LabelCreatedAt = LabelPrefix + "created-at"
)

// ManagedByValue is the constant value for the LabelManagedBy label.
const ManagedByValue = "lumina-launcher"

// BuildLabels constructs the Docker label map for a server container, from
// which the full ServerInstance can later be reconstructed by inspection
// alone. Timestamps are stored in UTC so the values are stable across
// host timezones.
func BuildLabels(spec *model.LaunchSpec, createdAt time.Time) map[string]string {
	return map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelPort:      strconv.Itoa(spec.Port),
		LabelScript:    spec.Script,
		LabelCreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
}

// ParseLabels reconstructs a ServerInstance's label-derived fields from a
// container's labels. It is the inverse of BuildLabels.
//
// A missing or foreign managed-by label is an error: the container does
// not belong to the launcher. A malformed port or timestamp is also an
// error, since the labels are written by the launcher itself and should
// never be edited by hand.
func ParseLabels(labels map[string]string) (*model.ServerInstance, error) {
	if labels[LabelManagedBy] != ManagedByValue {
		return nil, fmt.Errorf("container is not managed by %s", ManagedByValue)
	}

	portStr, ok := labels[LabelPort]
	if !ok {
		return nil, fmt.Errorf("missing required label %q", LabelPort)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %q label value %q: %w", LabelPort, portStr, err)
	}

	script, ok := labels[LabelScript]
	if !ok {
		return nil, fmt.Errorf("missing required label %q", LabelScript)
	}

	instance := &model.ServerInstance{
		Port:   port,
		Script: script,
	}

	// The timestamp is best-effort: an unparseable value degrades to the
	// zero time rather than hiding an otherwise healthy container.
	if raw, ok := labels[LabelCreatedAt]; ok {
		if createdAt, err := time.Parse(time.RFC3339, raw); err == nil {
			instance.CreatedAt = createdAt
		}
	}

	return instance, nil
}
