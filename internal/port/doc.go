// Package port implements a read-only port availability check.
//
// The launch path never consults this package: the launcher hands the
// configured port to the server and lets the server's own bind failure
// surface on the console (spawn-and-let-fail). Only the doctor command
// uses the scanner, to tell the user ahead of time whether the port looks
// free — as information, not as a gate.
package port
