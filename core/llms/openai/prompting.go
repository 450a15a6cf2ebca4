// Package openai is a chat-completions client for OpenAI-compatible APIs,
// covering both plain completions and tool-aware completions.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avabot/ava-core/core/faults"
	"github.com/avabot/ava-core/core/llms"
	"github.com/jinzhu/copier"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const defaultBaseURL = "https://api.openai.com/v1"

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

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(apiKey string, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete runs a plain completion over the given messages.
func (c *Client) Complete(ctx context.Context, messages []llms.Message) (*llms.Completion, error) {
	return c.complete(ctx, messages, nil)
}

// CompleteWithTools runs a completion with the given tools exposed to the
// model. The model decides between replying directly and requesting a tool.
func (c *Client) CompleteWithTools(ctx context.Context, messages []llms.Message, tools []llms.Tool) (*llms.Completion, error) {
	var wireTools []tool
	copier.Copy(&wireTools, tools)
	return c.complete(ctx, messages, wireTools)
}

func (c *Client) complete(ctx context.Context, messages []llms.Message, tools []tool) (*llms.Completion, error) {
	ctx, span := tracer.Start(ctx, "chat completion")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", c.model))

	reqBody := requestBody{
		Model:    c.model,
		Messages: toWireMessages(messages),
	}
	if tools != nil {
		toolChoice := "auto"
		reqBody.Tools = tools
		reqBody.ToolChoice = &toolChoice
	}

	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("error marshalling JSON: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, recordError(span, fmt.Errorf("error creating HTTP request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, recordError(span, faults.Transport("chat completion", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, recordError(span, faults.Transport("chat completion", fmt.Errorf("non-OK HTTP status: %s", resp.Status)))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, recordError(span, faults.Transport("chat completion", fmt.Errorf("error reading response body: %w", err)))
	}

	var body responseBody
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return nil, recordError(span, faults.Transport("chat completion", fmt.Errorf("error unmarshalling response body: %w", err)))
	}
	if len(body.Choices) == 0 {
		return nil, recordError(span, faults.Protocol("expected at least one choice"))
	}

	choice := body.Choices[0]
	completion := llms.Completion{
		FinishReason: llms.FinishReason(choice.FinishReason),
		Content:      choice.Message.Content,
	}
	for _, call := range choice.Message.ToolCalls {
		completion.ToolCalls = append(completion.ToolCalls, llms.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}

	span.SetAttributes(attribute.String("response.finish_reason", choice.FinishReason))
	return &completion, nil
}
