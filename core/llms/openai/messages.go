package openai

import (
	"encoding/json"

	"github.com/avabot/ava-core/core/llms"
	"github.com/invopop/jsonschema"
)

type message struct {
	Role    llms.MessageRole `json:"role"`
	Content string           `json:"content"`
}

// tool is the wire form of a tool definition. Its fields mirror llms.Tool by
// name so converting is a plain field-mapping copy; MarshalJSON nests them
// under "function" the way the API expects.
type tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

func (t tool) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string       `json:"type"`
		Function toolFunction `json:"function"`
	}{Type: "function", Function: toolFunction(t)})
}

type toolFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

type toolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function toolCallFunction `json:"function"`
}

type toolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type requestBody struct {
	Model      string    `json:"model"`
	Messages   []message `json:"messages"`
	Tools      []tool    `json:"tools,omitempty"`
	ToolChoice *string   `json:"tool_choice,omitempty"`
}

type responseBody struct {
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content   string     `json:"content"`
			ToolCalls []toolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func toWireMessages(messages []llms.Message) []message {
	wire := make([]message, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, message{Role: m.Role, Content: m.Content})
	}
	return wire
}
