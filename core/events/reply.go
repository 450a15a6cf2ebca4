package events

import (
	"encoding/json"
	"fmt"
)

// ReplySkeleton is the placeholder published before the assistant's reply for
// one turn.
type ReplySkeleton struct {
	Base
	ID string `json:"id"`
}

// NewReplySkeleton creates a reply placeholder event for the given turn.
func NewReplySkeleton(turnID string) ReplySkeleton {
	return ReplySkeleton{Base: NewBase(KindReplySkeleton), ID: turnID}
}

// ReplyPayload is the closed set of reply contents. Implementations are
// Speech, Image and Markdown only.
type ReplyPayload interface {
	replyPayload() string
}

// Speech is a spoken answer: the final text and the URL of the synthesized
// audio artifact. URL is empty on the optimistic reply published before
// synthesis completes.
type Speech struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func (Speech) replyPayload() string { return "speech" }

// Image is a generated picture: the artifact URL and the revised prompt the
// generator reported. URL is empty on the optimistic reply published before
// generation completes, with Prompt carrying the requested prompt instead.
type Image struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

func (Image) replyPayload() string { return "image" }

// Markdown is a rendered code answer as HTML.
type Markdown struct {
	HTML string `json:"html"`
}

func (Markdown) replyPayload() string { return "markdown" }

// Reply carries the assistant's reply payload for one turn.
type Reply struct {
	Base
	ID      string
	Payload ReplyPayload
}

// NewReply creates a reply event for the given turn.
func NewReply(turnID string, payload ReplyPayload) Reply {
	return Reply{Base: NewBase(KindReply), ID: turnID, Payload: payload}
}

// MarshalJSON encodes the reply with an explicit payload discriminant, e.g.
// {"id":"...","type":"speech","data":{"text":...,"url":...}}.
func (r Reply) MarshalJSON() ([]byte, error) {
	if r.Payload == nil {
		return nil, fmt.Errorf("reply %q has no payload", r.ID)
	}
	return json.Marshal(struct {
		ID   string       `json:"id"`
		Type string       `json:"type"`
		Data ReplyPayload `json:"data"`
	}{ID: r.ID, Type: r.Payload.replyPayload(), Data: r.Payload})
}
