// Package openai generates images through an OpenAI-compatible image
// endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avabot/ava-core/core/faults"
	"github.com/avabot/ava-core/core/images"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "dall-e-3"
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

// Generate creates one image for the prompt and returns its bytes together
// with the provider's revised prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (*images.Image, error) {
	ctx, span := tracer.Start(ctx, "generate image")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", c.model))

	reqBody := struct {
		Model          string `json:"model"`
		Prompt         string `json:"prompt"`
		N              int    `json:"n"`
		ResponseFormat string `json:"response_format"`
	}{Model: c.model, Prompt: prompt, N: 1, ResponseFormat: "b64_json"}

	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("error marshalling JSON: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, recordError(span, fmt.Errorf("error creating HTTP request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, recordError(span, faults.Transport("image generation", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, recordError(span, faults.Transport("image generation", fmt.Errorf("non-OK HTTP status: %s", resp.Status)))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, recordError(span, faults.Transport("image generation", fmt.Errorf("error reading response body: %w", err)))
	}

	var body struct {
		Data []struct {
			B64JSON       string `json:"b64_json"`
			RevisedPrompt string `json:"revised_prompt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return nil, recordError(span, faults.Transport("image generation", fmt.Errorf("error unmarshalling response body: %w", err)))
	}
	if len(body.Data) == 0 {
		return nil, recordError(span, faults.Protocol("expected at least one generated image"))
	}

	data, err := base64.StdEncoding.DecodeString(body.Data[0].B64JSON)
	if err != nil {
		return nil, recordError(span, faults.Transport("image generation", fmt.Errorf("error decoding image payload: %w", err)))
	}

	return &images.Image{Data: data, RevisedPrompt: body.Data[0].RevisedPrompt}, nil
}
