package bus

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/avabot/ava-core/core/events"
	"github.com/avabot/ava-core/core/faults"
)

func drain(r *Receiver) []events.Event {
	collected := []events.Event{}
	for {
		select {
		case event := <-r.Events():
			collected = append(collected, event)
		default:
			return collected
		}
	}
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	registry := NewRegistry()

	first := registry.GetOrCreate("session-1")
	second := registry.GetOrCreate("session-1")
	if first != second {
		t.Fatalf("expected repeated get-or-create to return the same channel")
	}

	other := registry.GetOrCreate("session-2")
	if other == first {
		t.Fatalf("expected different sessions to get different channels")
	}

	if registry.Len() != 2 {
		t.Fatalf("expected 2 registered sessions, got %d", registry.Len())
	}
}

func TestConcurrentGetOrCreateYieldsOneChannel(t *testing.T) {
	registry := NewRegistry()

	const callers = 64
	channels := make([]*Channel, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := range callers {
		go func(i int) {
			defer wg.Done()
			channels[i] = registry.GetOrCreate("session-1")
		}(i)
	}
	wg.Wait()

	for i, ch := range channels {
		if ch != channels[0] {
			t.Fatalf("caller %d observed a different channel", i)
		}
	}
	if registry.Len() != 1 {
		t.Fatalf("expected exactly one channel, got %d", registry.Len())
	}
}

func TestPublishWithoutChannelFails(t *testing.T) {
	registry := NewRegistry()

	err := registry.Publish("session-1", events.NewComplete())
	if err == nil {
		t.Fatalf("expected publish on an unknown session to fail")
	}
	var channelErr *faults.ChannelError
	if !errors.As(err, &channelErr) {
		t.Fatalf("expected a channel error, got %v", err)
	}
	if channelErr.SessionID != "session-1" {
		t.Fatalf("expected the error to name session-1, got %q", channelErr.SessionID)
	}
}

func TestPublishAfterSubscribeReachesAllReceivers(t *testing.T) {
	registry := NewRegistry()

	first := registry.Subscribe("session-1")
	second := registry.Subscribe("session-1")

	published := []events.Event{
		events.NewProcessing(events.StepUploadAudio),
		events.NewProcessing(events.StepTranscription),
		events.NewComplete(),
	}
	for _, event := range published {
		if err := registry.Publish("session-1", event); err != nil {
			t.Fatalf("expected publish to succeed, got %v", err)
		}
	}

	for name, receiver := range map[string]*Receiver{"first": first, "second": second} {
		collected := drain(receiver)
		if len(collected) != len(published) {
			t.Fatalf("expected %s receiver to observe %d events, got %d", name, len(published), len(collected))
		}
		for i, event := range collected {
			if event.Kind() != published[i].Kind() {
				t.Fatalf("expected %s receiver event %d to be %q, got %q", name, i, published[i].Kind(), event.Kind())
			}
		}
	}
}

func TestReceiverOnlySeesEventsAfterAttaching(t *testing.T) {
	registry := NewRegistry()

	early := registry.Subscribe("session-1")
	channel := registry.GetOrCreate("session-1")
	channel.Publish(events.NewProcessing(events.StepUploadAudio))

	late := registry.Subscribe("session-1")
	channel.Publish(events.NewComplete())

	if got := len(drain(early)); got != 2 {
		t.Fatalf("expected early receiver to observe 2 events, got %d", got)
	}
	lateEvents := drain(late)
	if len(lateEvents) != 1 {
		t.Fatalf("expected late receiver to observe 1 event, got %d", len(lateEvents))
	}
	if lateEvents[0].Kind() != events.KindSignal {
		t.Fatalf("expected late receiver to observe the completion signal, got %q", lateEvents[0].Kind())
	}
}

func TestLaggingReceiverLosesOldestWithoutReordering(t *testing.T) {
	registry := NewRegistry()
	receiver := registry.Subscribe("session-1")
	channel := registry.GetOrCreate("session-1")

	const published = Capacity + 40
	for i := range published {
		channel.Publish(events.NewError(fmt.Sprintf("event-%d", i)))
	}

	collected := drain(receiver)
	if len(collected) != Capacity {
		t.Fatalf("expected the receiver buffer to hold %d events, got %d", Capacity, len(collected))
	}

	// The oldest 40 must be shed; the survivors keep publish order.
	for i, event := range collected {
		signal, ok := event.(events.Signal)
		if !ok {
			t.Fatalf("expected a signal event, got %T", event)
		}
		expected := fmt.Sprintf("event-%d", published-Capacity+i)
		if signal.Message != expected {
			t.Fatalf("expected event %d to be %q, got %q", i, expected, signal.Message)
		}
	}
}

func TestPublishNeverBlocksOnSlowReceiver(t *testing.T) {
	registry := NewRegistry()
	registry.Subscribe("session-1")
	channel := registry.GetOrCreate("session-1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range Capacity * 4 {
			channel.Publish(events.NewError(fmt.Sprintf("event-%d", i)))
		}
	}()

	<-done
}

func TestRemoveClosesReceivers(t *testing.T) {
	registry := NewRegistry()
	receiver := registry.Subscribe("session-1")

	registry.Remove("session-1")

	if _, open := <-receiver.Events(); open {
		t.Fatalf("expected the receiver stream to be closed after removal")
	}
	if registry.Len() != 0 {
		t.Fatalf("expected no registered sessions after removal, got %d", registry.Len())
	}
}

func TestCloseDetachesSingleReceiver(t *testing.T) {
	registry := NewRegistry()
	closing := registry.Subscribe("session-1")
	staying := registry.Subscribe("session-1")
	channel := registry.GetOrCreate("session-1")

	closing.Close()
	channel.Publish(events.NewComplete())

	if _, open := <-closing.Events(); open {
		t.Fatalf("expected the closed receiver stream to be closed")
	}
	if got := len(drain(staying)); got != 1 {
		t.Fatalf("expected the remaining receiver to observe 1 event, got %d", got)
	}
}
