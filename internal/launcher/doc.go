// Package launcher implements the LUMINA server startup flow: print the
// banner, probe the Python runtime, spawn the server with its port as the
// single positional argument, block until it exits, then pause for a key
// press so trailing output stays readable.
//
// The Prober and Runner collaborators are interfaces so the console
// contract can be tested end to end without a Python install or a real
// server process.
package launcher
