// Package watch calls a function whenever one of a set of files changes on disk.
//
// Parent directories are watched rather than the files themselves, so editors that save by writing a temp file and renaming it over the
// original are still noticed. Bursts of events are coalesced with a debounce delay.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Options configures Files.
type Options struct {
	// Debounce is how long events must stop arriving before OnChange runs.
	Debounce time.Duration

	// OnError, if non-nil, receives watcher errors. Watching continues.
	OnError func(error)
}

// Files blocks until ctx is done, calling onChange after each debounced burst of writes, creates, renames, or removals that touch one of
// paths. If onChange returns an error, Files stops and returns it. Files returns nil when ctx is cancelled.
func Files(ctx context.Context, paths []string, onChange func() error, opts Options) error {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if opts.OnError != nil {
				opts.OnError(err)
			}

		case <-timer.C:
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}
