package deepgram

import (
	"context"
	"errors"
	"testing"

	speakinterfaces "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/rest/interfaces"
	interfaces "github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces"

	"github.com/avabot/ava-core/core/faults"
)

type speakerStub struct {
	audio []byte
	err   error

	text    string
	options *interfaces.SpeakOptions
}

func (s *speakerStub) ToStream(ctx context.Context, text string, options *interfaces.SpeakOptions, buf *interfaces.RawResponse) (*speakinterfaces.SpeakResponse, error) {
	s.text = text
	s.options = options
	if s.err != nil {
		return nil, s.err
	}
	buf.Write(s.audio)
	return &speakinterfaces.SpeakResponse{}, nil
}

func TestSynthesizeRequestsMP3ForTheVoice(t *testing.T) {
	stub := &speakerStub{audio: []byte("mp3 bytes")}
	client := NewClient("dg-test")
	client.speaker = stub

	audio, err := client.Synthesize(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("failed to synthesize: %v", err)
	}
	if string(audio) != "mp3 bytes" {
		t.Fatalf("expected the streamed audio back, got %q", audio)
	}

	if stub.text != "hello world" {
		t.Fatalf("expected the text to synthesize, got %q", stub.text)
	}
	if stub.options.Model != "aura-asteria-en" {
		t.Fatalf("expected the default voice, got %q", stub.options.Model)
	}
	if stub.options.Encoding != "mp3" {
		t.Fatalf("expected the mp3 encoding, got %q", stub.options.Encoding)
	}
}

func TestSynthesizeWrapsSpeakFailures(t *testing.T) {
	stub := &speakerStub{err: errors.New("upstream unavailable")}
	client := NewClient("dg-test")
	client.speaker = stub

	_, err := client.Synthesize(context.Background(), "hello")
	var transportErr *faults.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected a transport error, got %v", err)
	}
	if !errors.Is(err, stub.err) {
		t.Fatalf("expected the cause to survive unwrapping")
	}
}

func TestWithVoiceOverridesTheDefault(t *testing.T) {
	stub := &speakerStub{audio: []byte("mp3")}
	client := NewClient("dg-test", WithVoice("aura-orion-en"))
	client.speaker = stub

	if _, err := client.Synthesize(context.Background(), "hello"); err != nil {
		t.Fatalf("failed to synthesize: %v", err)
	}
	if stub.options.Model != "aura-orion-en" {
		t.Fatalf("expected the overridden voice, got %q", stub.options.Model)
	}
}
