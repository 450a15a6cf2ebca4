package bus

import (
	"sync"

	"github.com/avabot/ava-core/core/events"
)

// Channel broadcasts events to any number of receivers. Publishing never
// blocks: a full receiver buffer sheds its oldest unread event to make room,
// so slow consumers lag rather than stall the pipeline.
type Channel struct {
	mu        sync.Mutex
	receivers map[*Receiver]struct{}
	capacity  int
}

func newChannel(capacity int) *Channel {
	return &Channel{receivers: map[*Receiver]struct{}{}, capacity: capacity}
}

// Subscribe attaches a new receiver. Each receiver has an independent buffer
// and sees every event published after this call, in publish order.
func (c *Channel) Subscribe() *Receiver {
	r := &Receiver{ch: make(chan events.Event, c.capacity), channel: c}
	c.mu.Lock()
	c.receivers[r] = struct{}{}
	c.mu.Unlock()
	return r
}

// Publish delivers the event to every attached receiver without blocking.
func (c *Channel) Publish(event events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for r := range c.receivers {
		r.push(event)
	}
}

func (c *Channel) unsubscribe(r *Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.receivers[r]; ok {
		delete(c.receivers, r)
		close(r.ch)
	}
}

func (c *Channel) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for r := range c.receivers {
		delete(c.receivers, r)
		close(r.ch)
	}
}

// Receiver is one subscriber's view of a channel.
type Receiver struct {
	ch      chan events.Event
	channel *Channel
}

// Events exposes the receiver's buffered stream. The channel is closed when
// the receiver is closed or its session is removed.
func (r *Receiver) Events() <-chan events.Event {
	return r.ch
}

// Close detaches the receiver from its channel.
func (r *Receiver) Close() {
	r.channel.unsubscribe(r)
}

// push runs with the channel lock held, so there is exactly one writer and
// the evict-then-retry loop terminates.
func (r *Receiver) push(event events.Event) {
	for {
		select {
		case r.ch <- event:
			return
		default:
		}
		// Buffer full: shed the oldest unread event. The receiver may be
		// draining concurrently, so the take can miss; just retry the send.
		select {
		case <-r.ch:
		default:
		}
	}
}
