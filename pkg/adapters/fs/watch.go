package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/scribe/pkg/core"
)

const watchDebounce = 50 * time.Millisecond

// Watch streams change events for text files of the current directory whose
// names match pattern (doublestar syntax, empty means all). The directory is
// fixed when Watch is called. The channel is closed once ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w %q", core.ErrInvalidPattern, pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := s.Directory()
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event)
	w := &watchWorker{
		store:     s,
		dir:       dir,
		pattern:   pattern,
		events:    events,
		watcher:   watcher,
		debouncer: newDebouncer(watchDebounce),
		logger:    s.config.Logger,
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("watcher stopped", "dir", dir, "error", err)
	}))
	return events, nil
}

type watchWorker struct {
	store     *Store
	dir       string
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	logger    *slog.Logger
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			// Stack only at debug level to keep production logs short.
			if w.logger.Enabled(ctx, slog.LevelDebug) {
				w.logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)

	// In-flight timers may still send; close(w.events) must come after them.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// handle filters, maps and debounces one filesystem event.
func (w *watchWorker) handle(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if !w.accepts(name) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}
	w.logger.Debug("event received", "name", name, "op", event.Op.String())

	w.debouncer.add(core.Event{
		Type:      eType,
		Name:      name,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		defer func() {
			// The channel may already be closed if shutdown timed out.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) accepts(name string) bool {
	if !strings.HasSuffix(name, core.TextExtension) || strings.HasPrefix(name, TempFilePrefix) {
		return false
	}
	if isSignatureName(name) {
		return false
	}
	if w.pattern == "" {
		return true
	}
	ok, _ := doublestar.Match(w.pattern, name)
	return ok
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

var _ core.Watchable = (*Store)(nil)
