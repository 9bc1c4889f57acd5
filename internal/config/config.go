// Package config resolves the launcher configuration into a LaunchSpec.
//
// Configuration is entirely optional: with no file present the launcher
// runs on pure defaults (python3, server.py, port 8000, pause on exit),
// which reproduces the original zero-config behavior. When a file is
// present it may override any of those values.
//
// Two formats are supported, keyed by file extension:
//   - lumina.jsonc / lumina.json — JSONC (JSON with comments), stripped
//     with github.com/tidwall/jsonc before parsing with encoding/json
//   - lumina.yaml / lumina.yml — YAML via gopkg.in/yaml.v3
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/lumina-media/launcher/internal/model"
)

// Default values applied when the configuration file is absent or a field
// is omitted. These constants are the single source of truth for the
// launcher's zero-config behavior.
const (
	// DefaultScript is the server entry point colocated with the launcher.
	DefaultScript = "server.py"

	// DefaultImage is the container image used in container mode. A slim
	// official Python image is enough because the server script and its
	// assets are bind-mounted, not baked in.
	DefaultImage = "python:3.12-slim"
)

// candidateNames lists the configuration file names probed in the launcher
// directory, in priority order. The first one that exists wins.
var candidateNames = []string{
	"lumina.jsonc",
	"lumina.json",
	"lumina.yaml",
	"lumina.yml",
}

// DefaultInterpreter returns the Python binary name probed and spawned by
// default on the current platform. Windows installs expose "python";
// everywhere else "python3" is the unambiguous name. This is a platform
// default, not a fallback search — exactly one interpreter is ever probed.
func DefaultInterpreter() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// fileConfig is the raw on-disk shape of the configuration file.
// All fields are pointers so that an omitted field can be distinguished
// from an explicit zero value (relevant for "pause: false" and "port: 0").
type fileConfig struct {
	// Python overrides the interpreter binary.
	Python *string `json:"python,omitempty" yaml:"python,omitempty"`

	// Script overrides the server entry point.
	Script *string `json:"script,omitempty" yaml:"script,omitempty"`

	// Port overrides the TCP port handed to the server.
	Port *int `json:"port,omitempty" yaml:"port,omitempty"`

	// Image overrides the container-mode image.
	Image *string `json:"image,omitempty" yaml:"image,omitempty"`

	// Pause overrides whether the launcher waits for a key press on exit.
	Pause *bool `json:"pause,omitempty" yaml:"pause,omitempty"`
}

// Defaults returns the LaunchSpec used when no configuration file exists.
// baseDir is the launcher's own directory, which becomes the working
// directory of the spawned server.
func Defaults(baseDir string) *model.LaunchSpec {
	return &model.LaunchSpec{
		Python:  DefaultInterpreter(),
		Script:  DefaultScript,
		Port:    model.DefaultPort,
		Image:   DefaultImage,
		BaseDir: baseDir,
		Pause:   true,
	}
}

// Resolve builds the effective LaunchSpec for this invocation.
//
// When explicitPath is non-empty it must name an existing file; a missing
// explicit path is a configuration error, unlike the silent fall-through
// for the conventional file names. When explicitPath is empty, the
// candidate names are probed in baseDir and the first match is loaded.
// No file at all means pure defaults.
//
// Returns a CLIError with ExitConfigError for unreadable files, parse
// failures, unsupported extensions, and invalid resolved values.
func Resolve(baseDir, explicitPath string) (*model.LaunchSpec, error) {
	spec := Defaults(baseDir)

	path := explicitPath
	if path == "" {
		path = discover(baseDir)
		if path == "" {
			// No configuration file — defaults are already valid by
			// construction, but validate anyway to keep one exit path.
			if err := spec.Validate(); err != nil {
				return nil, model.WrapCLIError(model.ExitConfigError, "invalid default configuration", err)
			}
			return spec, nil
		}
	}

	raw, err := load(path)
	if err != nil {
		return nil, err
	}

	apply(spec, raw)

	if err := spec.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid configuration in %s", path), err)
	}
	return spec, nil
}

// discover probes the conventional configuration file names in baseDir and
// returns the first existing path, or "" when none exists.
func discover(baseDir string) string {
	for _, name := range candidateNames {
		candidate := filepath.Join(baseDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// load reads and parses a configuration file, dispatching on its extension.
func load(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read configuration file %s", path), err)
	}

	raw := &fileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc", ".json":
		// jsonc.ToJSON replaces comments and trailing commas with
		// whitespace, preserving byte offsets so that json error positions
		// still point at the right place in the original file.
		if err := json.Unmarshal(jsonc.ToJSON(data), raw); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse %s", path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, raw); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("unsupported configuration format %q (expected .jsonc, .json, .yaml or .yml)", filepath.Ext(path)))
	}

	return raw, nil
}

// apply copies the fields present in the file over the defaults.
// Omitted fields (nil pointers) leave the defaults untouched.
func apply(spec *model.LaunchSpec, raw *fileConfig) {
	if raw.Python != nil {
		spec.Python = *raw.Python
	}
	if raw.Script != nil {
		spec.Script = *raw.Script
	}
	if raw.Port != nil {
		spec.Port = *raw.Port
	}
	if raw.Image != nil {
		spec.Image = *raw.Image
	}
	if raw.Pause != nil {
		spec.Pause = *raw.Pause
	}
}
