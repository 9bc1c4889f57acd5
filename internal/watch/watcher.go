// Package watch implements the launcher's --watch mode: the server is
// respawned whenever its entry-point script changes on disk.
//
// The Supervisor wraps an inner launcher.Runner, so watch mode composes
// with both the direct process runner and test doubles without the
// launcher itself knowing about file watching.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/lumina-media/launcher/internal/launcher"
	"github.com/lumina-media/launcher/internal/model"
)

// defaultDebounce is how long the supervisor waits after a change event
// before restarting. Editors and Python's own toolchain often produce a
// burst of writes for a single save; one restart per burst is enough.
const defaultDebounce = 500 * time.Millisecond

// Supervisor runs the server through an inner Runner and restarts it when
// the server script changes. It satisfies launcher.Runner itself, so a
// Launcher can be given a Supervisor in place of the direct ExecRunner.
type Supervisor struct {
	// Inner is the runner that actually spawns the server.
	Inner launcher.Runner

	// Debounce is the quiet period required after a change event before
	// the restart happens. Zero selects the default.
	Debounce time.Duration
}

// NewSupervisor creates a Supervisor around the given runner.
func NewSupervisor(inner launcher.Runner) *Supervisor {
	return &Supervisor{Inner: inner, Debounce: defaultDebounce}
}

// Run starts the server and keeps it running until it exits on its own or
// the context is cancelled. A change to the server script (write, create,
// or rename — editors commonly save via rename-and-replace) terminates the
// current child and spawns a fresh one.
//
// The watch is placed on the launcher directory rather than the script
// file itself, because a rename-and-replace save would otherwise silently
// detach the watch from the old inode.
func (s *Supervisor) Run(ctx context.Context, spec *model.LaunchSpec, stdout, stderr io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(spec.BaseDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", spec.BaseDir, err)
	}

	debounce := s.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	for {
		childCtx, cancelChild := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- s.Inner.Run(childCtx, spec, stdout, stderr)
		}()

		restart, err := s.superviseChild(ctx, watcher, spec, done, cancelChild, debounce, stdout)
		cancelChild()
		if !restart {
			return err
		}

		log.WithField("script", spec.Script).Info("server script changed, restarting")
	}
}

// superviseChild waits for whichever comes first: the child exiting, a
// relevant file change, or context cancellation. It reports whether the
// caller should respawn the child.
func (s *Supervisor) superviseChild(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	spec *model.LaunchSpec,
	done <-chan error,
	cancelChild context.CancelFunc,
	debounce time.Duration,
	stdout io.Writer,
) (bool, error) {
	for {
		select {
		case err := <-done:
			// The child ended without a pending restart: watch mode is
			// over and the child's (opaque) result goes to the caller.
			return false, err

		case event, ok := <-watcher.Events:
			if !ok {
				return false, <-done
			}
			if !matchesScript(event, spec.Script) {
				continue
			}

			// Let the burst of save events settle, then drain whatever
			// queued up in the meantime so one save means one restart.
			time.Sleep(debounce)
			drainEvents(watcher)

			fmt.Fprintf(stdout, "Detected change in %s — restarting server...\n", spec.Script)
			cancelChild()
			// The killed child's error is the cancellation, not a crash.
			<-done
			return true, nil

		case watchErr, ok := <-watcher.Errors:
			if ok && watchErr != nil {
				log.WithError(watchErr).Warn("file watcher error")
			}

		case <-ctx.Done():
			cancelChild()
			<-done
			return false, ctx.Err()
		}
	}
}

// matchesScript reports whether a filesystem event concerns the server
// script and is a change worth restarting for.
func matchesScript(event fsnotify.Event, script string) bool {
	if filepath.Base(event.Name) != filepath.Base(script) {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename)
}

// drainEvents discards any events already queued on the watcher without
// blocking. Called after the debounce sleep so a save burst collapses
// into a single restart.
func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case _, ok := <-watcher.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
