// Package config loads the optional lumina-launcher configuration file
// and resolves it, together with platform defaults, into a model.LaunchSpec.
//
// Supported file names, probed in the launcher's own directory:
// lumina.jsonc, lumina.json (JSONC — comments allowed), lumina.yaml,
// lumina.yml. An explicit path may be supplied via the --config flag.
// With no file present the launcher behaves exactly like its zero-config
// predecessor: python3 (python on Windows), server.py, port 8000.
package config
