// Package assistant drives one conversational turn end to end: audio upload
// in, transcription, a routing decision between a direct answer and a tool,
// the chosen tool's execution, optional speech synthesis, and a typed event
// stream published to every live subscriber of the originating session.
package assistant

import (
	"github.com/avabot/ava-core/core/artifacts"
	"github.com/avabot/ava-core/core/bus"
	"github.com/avabot/ava-core/core/config"
	imgopenai "github.com/avabot/ava-core/core/images/openai"
	"github.com/avabot/ava-core/core/llms"
	llmopenai "github.com/avabot/ava-core/core/llms/openai"
	"github.com/avabot/ava-core/core/markdown"
	sttopenai "github.com/avabot/ava-core/core/speechtotext/openai"
	ttsdeepgram "github.com/avabot/ava-core/core/texttospeech/deepgram"
	ttsopenai "github.com/avabot/ava-core/core/texttospeech/openai"
)

// Assistant holds the capability collaborators and the session event bus one
// process shares across every turn. It is the explicit application context:
// thread it through entry points instead of reaching for globals.
type Assistant struct {
	registry *bus.Registry

	transcriber    Transcriber
	completer      Completer
	imageGenerator ImageGenerator
	synthesizer    SpeechSynthesizer
	renderer       MarkdownRenderer
	store          ArtifactStore

	tools []llms.Tool
}

// New creates an assistant publishing on the given registry. Capabilities are
// wired through options; any left nil will fail the first turn that needs
// them, so embedding processes normally use NewFromConfig or set all of them.
func New(registry *bus.Registry, opts ...Option) *Assistant {
	a := &Assistant{
		registry: registry,
		tools:    routingTools(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewFromConfig wires the default provider clients for every capability.
func NewFromConfig(cfg *config.Config, registry *bus.Registry) *Assistant {
	var synthesizer SpeechSynthesizer
	switch cfg.SpeechProvider {
	case config.SpeechProviderDeepgram:
		synthesizer = ttsdeepgram.NewClient(cfg.DeepgramAPIKey)
	default:
		synthesizer = ttsopenai.NewClient(cfg.OpenAIAPIKey, ttsopenai.WithModel(cfg.SpeechModel))
	}

	return New(registry,
		WithTranscriber(sttopenai.NewClient(cfg.OpenAIAPIKey, sttopenai.WithModel(cfg.TranscriptionModel))),
		WithCompleter(llmopenai.NewClient(cfg.OpenAIAPIKey, cfg.ChatModel)),
		WithImageGenerator(imgopenai.NewClient(cfg.OpenAIAPIKey, imgopenai.WithModel(cfg.ImageModel))),
		WithSpeechSynthesizer(synthesizer),
		WithMarkdownRenderer(markdown.NewRenderer()),
		WithArtifactStore(artifacts.NewStore(cfg.ArtifactRoot, artifacts.WithBaseURL(cfg.ArtifactBaseURL))),
	)
}

// Registry exposes the session event bus so an embedding server can attach
// subscribers.
func (a *Assistant) Registry() *bus.Registry {
	return a.registry
}
