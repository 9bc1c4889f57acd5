package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumina-media/launcher/internal/model"
)

// TestPrintContainerStarted verifies the container-mode console lines:
// the info pair mirrors the local launch, the container handle uses the
// short (12-character) ID, and everything lands on the given writer.
func TestPrintContainerStarted(t *testing.T) {
	spec := &model.LaunchSpec{
		Python: "python3",
		Script: "server.py",
		Port:   9100,
	}

	out := &bytes.Buffer{}
	printContainerStarted(out, spec, "abcdef0123456789abcdef0123456789abcdef01")

	text := out.String()
	assert.Contains(t, text, "Starting local server (container mode)...")
	assert.Contains(t, text, "Open your browser at: http://localhost:9100")
	assert.Contains(t, text, "Container: lumina-server (abcdef012345)",
		"the container ID must be shortened to 12 characters")
	assert.Contains(t, text, "Stop it with: lumina-launcher stop")
	assert.NotContains(t, text, "abcdef0123456789", "the full ID must not leak into the console")
}

// TestPrintContainerStarted_ShortID verifies that an ID already at or
// below twelve characters is printed verbatim.
func TestPrintContainerStarted_ShortID(t *testing.T) {
	spec := &model.LaunchSpec{Python: "python3", Script: "server.py", Port: 8000}

	out := &bytes.Buffer{}
	printContainerStarted(out, spec, "abc123")

	assert.Contains(t, out.String(), "(abc123)")
}

// TestPrintContainerStarted_Ordering verifies the line order matches the
// local launch contract: info lines first, then the container handle.
func TestPrintContainerStarted_Ordering(t *testing.T) {
	spec := &model.LaunchSpec{Python: "python3", Script: "server.py", Port: 8000}

	out := &bytes.Buffer{}
	printContainerStarted(out, spec, "abc123")

	text := out.String()
	info := strings.Index(text, "Starting local server (container mode)...")
	handle := strings.Index(text, "Container: ")
	assert.Less(t, info, handle, "info lines must precede the container handle")
}
