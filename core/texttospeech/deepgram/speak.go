// Package deepgram synthesizes speech through Deepgram's one-shot speak
// endpoint, backed by the deepgram-go-sdk REST client. It is interchangeable
// with the openai client; the embedding process picks one via configuration.
package deepgram

import (
	"context"

	speakapi "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/rest"
	speakinterfaces "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/rest/interfaces"
	interfaces "github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces"
	speakrest "github.com/deepgram/deepgram-go-sdk/pkg/client/speak/v1/rest"
	"go.opentelemetry.io/otel/attribute"

	"github.com/avabot/ava-core/core/faults"
)

const (
	defaultVoice = "aura-asteria-en"
	// The artifact store serves mp3, so ask for a containered mp3 stream.
	encoding = "mp3"
)

// speaker is the slice of the SDK's speak API Synthesize uses. The SDK's
// REST client satisfies it.
type speaker interface {
	ToStream(ctx context.Context, text string, options *interfaces.SpeakOptions, buf *interfaces.RawResponse) (*speakinterfaces.SpeakResponse, error)
}

type Client struct {
	voice   string
	host    string
	speaker speaker
}

type Option func(*Client)

func WithVoice(voice string) Option {
	return func(c *Client) { c.voice = voice }
}

// WithHost points the client at a self-hosted Deepgram deployment instead of
// the public API.
func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{voice: defaultVoice}
	for _, opt := range opts {
		opt(c)
	}
	if c.speaker == nil {
		c.speaker = speakapi.New(speakrest.New(apiKey, &interfaces.ClientOptions{Host: c.host}))
	}
	return c
}

// Synthesize converts text to spoken audio and returns the encoded bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()
	span.SetAttributes(attribute.String("request.voice", c.voice))

	options := &interfaces.SpeakOptions{
		Model:    c.voice,
		Encoding: encoding,
	}

	var buf interfaces.RawResponse
	if _, err := c.speaker.ToStream(ctx, text, options, &buf); err != nil {
		return nil, recordError(span, faults.Transport("speech synthesis", err))
	}

	return buf.Bytes(), nil
}
