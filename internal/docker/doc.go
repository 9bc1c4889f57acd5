// Package docker implements the launcher's container mode.
//
// Instead of probing for a host Python install, container mode verifies
// the Docker daemon, bind-mounts the launcher directory into an official
// Python image, and runs the server there with the same command contract
// as a local spawn (script plus one port argument). Containers started by
// the launcher carry "lumina.*" labels, which serve as the sole state
// store for the status and stop commands.
package docker
