package fs

import (
	"sync"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// debouncer coalesces bursts of events per file name. A CREATE followed by
// MODIFY stays a CREATE; a DELETE replaces whatever was pending.
type debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	pending map[string]*pendingEvent
	wg      sync.WaitGroup
	stopped bool
}

type pendingEvent struct {
	event core.Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	// Stop fails when the timer already fired; that event is in flight, so
	// start a fresh one instead of re-arming it.
	if p, ok := d.pending[e.Name]; ok && p.timer.Stop() {
		if !(p.event.Type == core.EventCreate && e.Type == core.EventModify) {
			p.event = e
		}
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: e}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		out := p.event
		if d.pending[e.Name] == p {
			delete(d.pending, e.Name)
		}
		d.mu.Unlock()

		emit(out)
	})
	d.pending[e.Name] = p
}

// stopAndWait rejects new events and waits up to timeout for in-flight ones.
// Timers that have not fired yet are cancelled.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for name, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
			delete(d.pending, name)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
