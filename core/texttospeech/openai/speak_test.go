package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avabot/ava-core/core/faults"
)

func TestSynthesizeSendsModelInputAndVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("expected the speech path, got %q", r.URL.Path)
		}

		var body struct {
			Model string `json:"model"`
			Input string `json:"input"`
			Voice string `json:"voice"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body.Model != "tts-1" {
			t.Errorf("expected the default model, got %q", body.Model)
		}
		if body.Input != "hello world" {
			t.Errorf("expected the text to synthesize, got %q", body.Input)
		}
		if body.Voice != "alloy" {
			t.Errorf("expected the default voice, got %q", body.Voice)
		}

		w.Write([]byte("mp3 bytes"))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))

	audio, err := client.Synthesize(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("failed to synthesize: %v", err)
	}
	if string(audio) != "mp3 bytes" {
		t.Fatalf("expected the raw audio back, got %q", audio)
	}
}

func TestSynthesizeFailsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid voice", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))

	_, err := client.Synthesize(context.Background(), "hello")
	var transportErr *faults.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}
