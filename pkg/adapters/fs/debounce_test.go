package fs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/scribe/pkg/core"
)

type collector struct {
	mu     sync.Mutex
	events []core.Event
}

func (c *collector) emit(e core.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collector) snapshot() []core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Event(nil), c.events...)
}

func TestDebouncer(t *testing.T) {
	t.Run("Create Then Modify Stays Create", func(t *testing.T) {
		d := newDebouncer(20 * time.Millisecond)
		var c collector

		d.add(core.Event{Type: core.EventCreate, Name: "a.txt"}, c.emit)
		d.add(core.Event{Type: core.EventModify, Name: "a.txt"}, c.emit)

		assert.Eventually(t, func() bool { return len(c.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
		d.stopAndWait(time.Second)
		assert.Equal(t, core.EventCreate, c.snapshot()[0].Type)
	})

	t.Run("Delete Replaces Pending", func(t *testing.T) {
		d := newDebouncer(20 * time.Millisecond)
		var c collector

		d.add(core.Event{Type: core.EventCreate, Name: "a.txt"}, c.emit)
		d.add(core.Event{Type: core.EventDelete, Name: "a.txt"}, c.emit)

		assert.Eventually(t, func() bool { return len(c.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
		d.stopAndWait(time.Second)
		assert.Equal(t, core.EventDelete, c.snapshot()[0].Type)
	})

	t.Run("Names Are Independent", func(t *testing.T) {
		d := newDebouncer(20 * time.Millisecond)
		var c collector

		d.add(core.Event{Type: core.EventCreate, Name: "a.txt"}, c.emit)
		d.add(core.Event{Type: core.EventCreate, Name: "b.txt"}, c.emit)

		assert.Eventually(t, func() bool { return len(c.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
		d.stopAndWait(time.Second)
	})

	t.Run("Stop Cancels Pending", func(t *testing.T) {
		d := newDebouncer(time.Hour)
		var c collector

		d.add(core.Event{Type: core.EventCreate, Name: "a.txt"}, c.emit)
		d.stopAndWait(time.Second)
		d.add(core.Event{Type: core.EventCreate, Name: "b.txt"}, c.emit)

		assert.Empty(t, c.snapshot())
	})
}
