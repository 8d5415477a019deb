package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before
// re-reading the file.
const DefaultDebounce = 150 * time.Millisecond

// Event carries the new contents of a watched file, or the error hit while
// reading it.
type Event struct {
	Text string
	Err  error
}

// Watch re-reads path whenever it changes until ctx is cancelled. Bursts of
// writes are collapsed into one Event. The parent directory is watched so
// editors that replace the file on save are still followed.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan Event, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		closeWatcher(watcher)
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer closeWatcher(watcher)

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				timer.Reset(debounce)
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if !send(ctx, events, Event{Err: fmt.Errorf("watcher error: %w", werr)}) {
					return
				}
			case <-timer.C:
				text, rerr := FromFile(abs)
				if !send(ctx, events, Event{Text: text, Err: rerr}) {
					return
				}
			}
		}
	}()
	return events, nil
}

func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func closeWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil {
		// Best-effort close.
		_ = err
	}
}
