// Package config loads process configuration from the environment. A missing
// required credential is a startup failure, not a per-turn one.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// SpeechProvider selects which synthesis client the assistant wires in.
type SpeechProvider string

const (
	SpeechProviderOpenAI   SpeechProvider = "openai"
	SpeechProviderDeepgram SpeechProvider = "deepgram"
)

type Config struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY,required"`

	ChatModel          string `env:"AVA_CHAT_MODEL" envDefault:"gpt-4o"`
	TranscriptionModel string `env:"AVA_TRANSCRIPTION_MODEL" envDefault:"whisper-1"`
	SpeechModel        string `env:"AVA_SPEECH_MODEL" envDefault:"tts-1"`
	ImageModel         string `env:"AVA_IMAGE_MODEL" envDefault:"dall-e-3"`

	// SpeechProvider picks the synthesis backend. Deepgram requires
	// DEEPGRAM_API_KEY to be set as well.
	SpeechProvider SpeechProvider `env:"AVA_SPEECH_PROVIDER" envDefault:"openai"`
	DeepgramAPIKey string         `env:"DEEPGRAM_API_KEY"`

	ArtifactRoot    string `env:"AVA_ARTIFACT_ROOT" envDefault:"/tmp/ava/assets"`
	ArtifactBaseURL string `env:"AVA_ARTIFACT_BASE_URL" envDefault:"/assets"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	switch cfg.SpeechProvider {
	case SpeechProviderOpenAI:
	case SpeechProviderDeepgram:
		if cfg.DeepgramAPIKey == "" {
			return nil, fmt.Errorf("DEEPGRAM_API_KEY is required when AVA_SPEECH_PROVIDER is %q", cfg.SpeechProvider)
		}
	default:
		return nil, fmt.Errorf("unknown speech provider: %q", cfg.SpeechProvider)
	}

	return &cfg, nil
}
