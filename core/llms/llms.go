// Package llms defines the provider-agnostic chat completion contract used by
// the turn pipeline: messages going in, a finish reason plus content or tool
// calls coming out.
package llms

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// MessageRole describes who a conversation message is from.
type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is a single message in a completion request.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// System creates a system message.
func System(content string) Message {
	return Message{Role: MessageRoleSystem, Content: content}
}

// User creates a user message.
func User(content string) Message {
	return Message{Role: MessageRoleUser, Content: content}
}

// FinishReason reports why the model stopped generating.
type FinishReason string

const (
	// FinishStop means the model replied with plain content.
	FinishStop FinishReason = "stop"
	// FinishToolCalls means the model requested one or more tool invocations.
	FinishToolCalls FinishReason = "tool_calls"
)

// ToolCall is the model's structured request to invoke a named tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Completion is the provider's response to a completion request.
type Completion struct {
	FinishReason FinishReason
	Content      string
	ToolCalls    []ToolCall
}

// Tool describes a function the model may call. Parameters is the JSON schema
// of the tool's argument shape.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// NewTool builds a tool description whose parameter schema is reflected from
// the argument struct T.
func NewTool[T any](name, description string) Tool {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.ReflectFromType(reflect.TypeFor[T]())
	return Tool{Name: name, Description: description, Parameters: schema}
}
