package assistant

import (
	"context"

	"github.com/avabot/ava-core/core/artifacts"
	"github.com/avabot/ava-core/core/images"
	"github.com/avabot/ava-core/core/llms"
)

type Option func(*Assistant)

// Transcriber converts one audio upload to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

func WithTranscriber(client Transcriber) Option {
	return func(a *Assistant) { a.transcriber = client }
}

// Completer runs chat completions, with and without tools exposed to the
// model.
type Completer interface {
	Complete(ctx context.Context, messages []llms.Message) (*llms.Completion, error)
	CompleteWithTools(ctx context.Context, messages []llms.Message, tools []llms.Tool) (*llms.Completion, error)
}

func WithCompleter(client Completer) Option {
	return func(a *Assistant) { a.completer = client }
}

// ImageGenerator creates one image for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*images.Image, error)
}

func WithImageGenerator(client ImageGenerator) Option {
	return func(a *Assistant) { a.imageGenerator = client }
}

// SpeechSynthesizer converts text to encoded audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

func WithSpeechSynthesizer(client SpeechSynthesizer) Option {
	return func(a *Assistant) { a.synthesizer = client }
}

// MarkdownRenderer converts markdown text to HTML.
type MarkdownRenderer interface {
	Render(source string) (string, error)
}

func WithMarkdownRenderer(renderer MarkdownRenderer) Option {
	return func(a *Assistant) { a.renderer = renderer }
}

// ArtifactStore persists binary outputs and returns the URL path they will
// be served from.
type ArtifactStore interface {
	Put(sessionID string, kind artifacts.Kind, data []byte) (string, error)
}

func WithArtifactStore(store ArtifactStore) Option {
	return func(a *Assistant) { a.store = store }
}
