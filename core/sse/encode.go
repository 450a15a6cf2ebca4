// Package sse maps turn events onto the wire triple consumed by a
// server-sent-events endpoint: a fixed event name per variant, the turn id
// for turn-scoped content events, and a rendered payload.
//
// Payload rendering is pluggable so an embedding server can swap JSON for
// HTML fragments without the pipeline or the bus knowing.
package sse

import (
	"encoding/json"
	"fmt"

	"github.com/avabot/ava-core/core/events"
)

// Envelope is one encoded wire frame.
type Envelope struct {
	Event string
	ID    string
	Data  []byte
}

// Renderer produces the serialized payload for one event.
type Renderer interface {
	Render(event events.Event) ([]byte, error)
}

// JSONRenderer renders each event's canonical JSON form.
type JSONRenderer struct{}

func (JSONRenderer) Render(event events.Event) ([]byte, error) {
	return json.Marshal(event)
}

// Encode maps an event to its wire frame. The id field carries the turn id
// for Input and Reply events and is empty for every other variant.
func Encode(event events.Event, renderer Renderer) (Envelope, error) {
	var id string
	switch typedEvent := event.(type) {
	case events.Signal, events.InputSkeleton, events.ReplySkeleton:
	case events.Input:
		id = typedEvent.ID
	case events.Reply:
		id = typedEvent.ID
	default:
		return Envelope{}, fmt.Errorf("unknown event variant: %T", event)
	}

	data, err := renderer.Render(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("error rendering event payload: %w", err)
	}

	return Envelope{Event: string(event.Kind()), ID: id, Data: data}, nil
}
