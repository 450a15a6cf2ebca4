// Package openai transcribes uploaded audio through an OpenAI-compatible
// transcription endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/avabot/ava-core/core/faults"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "whisper-1"

	// languageHint steers the transcription toward the expected output
	// script for mixed-language audio.
	languageHint = "If audio language is Chinese, please use Simplified Chinese"
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcribe converts one audio upload to text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe audio")
	defer span.End()
	span.SetAttributes(attribute.Int("request.audio_bytes", len(audio)))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "audio.mp3")
	if err != nil {
		return "", recordError(span, fmt.Errorf("error building multipart form: %w", err))
	}
	if _, err := part.Write(audio); err != nil {
		return "", recordError(span, fmt.Errorf("error writing audio field: %w", err))
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return "", recordError(span, fmt.Errorf("error writing model field: %w", err))
	}
	if err := writer.WriteField("prompt", languageHint); err != nil {
		return "", recordError(span, fmt.Errorf("error writing prompt field: %w", err))
	}
	if err := writer.Close(); err != nil {
		return "", recordError(span, fmt.Errorf("error finalizing multipart form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &form)
	if err != nil {
		return "", recordError(span, fmt.Errorf("error creating HTTP request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", recordError(span, faults.Transport("transcription", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", recordError(span, faults.Transport("transcription", fmt.Errorf("non-OK HTTP status: %s", resp.Status)))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", recordError(span, faults.Transport("transcription", fmt.Errorf("error reading response body: %w", err)))
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return "", recordError(span, faults.Transport("transcription", fmt.Errorf("error unmarshalling response body: %w", err)))
	}

	return body.Text, nil
}
