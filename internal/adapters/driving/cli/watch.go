package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tally/internal/logger"
)

// watchFile calls onChange after path is written, created or renamed into
// place, until ctx is cancelled. Events within debounce of each other
// trigger one call. Errors from onChange are reported to errOut and
// watching continues.
func watchFile(
	ctx context.Context, path string, debounce time.Duration, onChange func() error, errOut io.Writer,
) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// The directory is watched because editors often save by replacing the file.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isChange(event, target) {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			fire = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				fmt.Fprintf(errOut, "Error: %v\n", err)
			}
		}
	}
}

// isChange reports whether event touches target in a way that changes its content.
func isChange(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
