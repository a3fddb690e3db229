// Package lifecycle exposes scribe change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/scribe/pkg/core"
)

// Watcher is satisfied by core.Service and by any core.Watchable store.
type Watcher interface {
	Watch(ctx context.Context, pattern string) (<-chan core.Event, error)
}

type watchSource struct {
	watcher Watcher
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits scribe change events for
// names matching pattern. The watch itself is opened by Start.
func NewSource(w Watcher, pattern string) lifecycle.Source {
	return &watchSource{
		watcher: w,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *watchSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start opens the watch and forwards its events until ctx is done or the
// watch closes. Events() is closed afterwards.
func (s *watchSource) Start(ctx context.Context) error {
	events, err := s.watcher.Watch(ctx, s.pattern)
	if err != nil {
		close(s.out)
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event satisfies lifecycle.Event through String().
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
