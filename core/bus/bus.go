// Package bus maps session ids to broadcast channels carrying turn events.
//
// Each session owns exactly one channel, created lazily on first reference and
// retained for process lifetime (callers embedding the bus in a long-lived
// service should call Remove on session teardown). Channels broadcast: every
// receiver gets its own bounded buffer, and a receiver that falls behind loses
// its oldest unread events rather than blocking the publisher.
package bus

import (
	"sync"

	"github.com/avabot/ava-core/core/events"
	"github.com/avabot/ava-core/core/faults"
)

// Capacity is the per-receiver buffer size. A receiver lagging by more than
// this many events starts losing the oldest unread ones.
const Capacity = 128

// Registry maps session ids to their broadcast channels. Safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*Channel
}

func NewRegistry() *Registry {
	return &Registry{channels: map[string]*Channel{}}
}

// GetOrCreate returns the session's channel, creating it if this is the first
// reference. Concurrent first-time callers observe the same channel.
func (r *Registry) GetOrCreate(sessionID string) *Channel {
	r.mu.RLock()
	ch, ok := r.channels[sessionID]
	r.mu.RUnlock()
	if ok {
		return ch
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ch, ok := r.channels[sessionID]; ok {
		return ch
	}
	ch = newChannel(Capacity)
	r.channels[sessionID] = ch
	logger.Debug("created session channel", "session_id", sessionID)
	return ch
}

// Lookup returns the session's channel without creating one.
func (r *Registry) Lookup(sessionID string) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[sessionID]
	return ch, ok
}

// Subscribe attaches a new independent receiver to the session's channel,
// creating the channel on first reference. The receiver observes only events
// published after it attaches.
func (r *Registry) Subscribe(sessionID string) *Receiver {
	return r.GetOrCreate(sessionID).Subscribe()
}

// Publish broadcasts an event on the session's channel. Publishing requires
// that the channel already exists; it fails with a ChannelError otherwise.
func (r *Registry) Publish(sessionID string, event events.Event) error {
	ch, ok := r.Lookup(sessionID)
	if !ok {
		return faults.Channel(sessionID)
	}
	ch.Publish(event)
	return nil
}

// Remove drops the session's channel and detaches its receivers.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	ch, ok := r.channels[sessionID]
	delete(r.channels, sessionID)
	r.mu.Unlock()
	if ok {
		ch.closeAll()
	}
}

// Len reports how many sessions currently hold a channel.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}
