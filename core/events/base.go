package events

import "time"

// Kind identifies a top-level event variant. Kinds double as the wire event
// names the serialization boundary emits.
type Kind string

const (
	// KindSignal identifies session-wide lifecycle signals.
	KindSignal Kind = "signal"
	// KindInputSkeleton identifies the placeholder for a forthcoming user message.
	KindInputSkeleton Kind = "input_skeleton"
	// KindInput identifies the transcribed user message.
	KindInput Kind = "input"
	// KindReplySkeleton identifies the placeholder for a forthcoming reply.
	KindReplySkeleton Kind = "reply_skeleton"
	// KindReply identifies the assistant's reply.
	KindReply Kind = "reply"
)

type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
