// Package watch restarts the LUMINA server when its entry-point script
// changes, using fsnotify on the launcher directory. It wraps any
// launcher.Runner, leaving the launch flow itself unchanged.
package watch
