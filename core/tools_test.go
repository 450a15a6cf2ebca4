package assistant

import (
	"errors"
	"testing"

	"github.com/avabot/ava-core/core/faults"
	"github.com/avabot/ava-core/core/llms"
)

func TestRouteCompletionStopReturnsContent(t *testing.T) {
	decision, err := routeCompletion(&llms.Completion{
		FinishReason: llms.FinishStop,
		Content:      "the direct answer",
	})
	if err != nil {
		t.Fatalf("expected routing to succeed, got %v", err)
	}

	stop, ok := decision.(decisionStop)
	if !ok {
		t.Fatalf("expected a stop decision, got %T", decision)
	}
	if stop.Content != "the direct answer" {
		t.Fatalf("expected the stop content to be preserved, got %q", stop.Content)
	}
}

func TestRouteCompletionStopWithoutContentFails(t *testing.T) {
	_, err := routeCompletion(&llms.Completion{FinishReason: llms.FinishStop})
	if err == nil {
		t.Fatalf("expected routing to fail without content")
	}
	var protocolErr *faults.ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected a protocol error, got %v", err)
	}
}

func TestRouteCompletionDispatchesKnownTools(t *testing.T) {
	for name, check := range map[string]func(t *testing.T, decision toolDecision){
		toolNameDrawImage: func(t *testing.T, decision toolDecision) {
			draw, ok := decision.(decisionDrawImage)
			if !ok {
				t.Fatalf("expected a draw-image decision, got %T", decision)
			}
			if draw.Args.Prompt != "a red panda" {
				t.Fatalf("expected the prompt to be decoded, got %q", draw.Args.Prompt)
			}
		},
		toolNameWriteCode: func(t *testing.T, decision toolDecision) {
			code, ok := decision.(decisionWriteCode)
			if !ok {
				t.Fatalf("expected a write-code decision, got %T", decision)
			}
			if code.Args.Prompt != "a red panda" {
				t.Fatalf("expected the prompt to be decoded, got %q", code.Args.Prompt)
			}
		},
		toolNameAnswer: func(t *testing.T, decision toolDecision) {
			answer, ok := decision.(decisionAnswer)
			if !ok {
				t.Fatalf("expected an answer decision, got %T", decision)
			}
			if answer.Args.Prompt != "a red panda" {
				t.Fatalf("expected the prompt to be decoded, got %q", answer.Args.Prompt)
			}
		},
	} {
		t.Run(name, func(t *testing.T) {
			decision, err := routeCompletion(&llms.Completion{
				FinishReason: llms.FinishToolCalls,
				ToolCalls:    []llms.ToolCall{{ID: "call-1", Name: name, Arguments: `{"prompt":"a red panda"}`}},
			})
			if err != nil {
				t.Fatalf("expected routing to succeed, got %v", err)
			}
			check(t, decision)
		})
	}
}

func TestRouteCompletionHonorsOnlyFirstToolCall(t *testing.T) {
	decision, err := routeCompletion(&llms.Completion{
		FinishReason: llms.FinishToolCalls,
		ToolCalls: []llms.ToolCall{
			{ID: "call-1", Name: toolNameDrawImage, Arguments: `{"prompt":"first"}`},
			{ID: "call-2", Name: toolNameWriteCode, Arguments: `{"prompt":"second"}`},
		},
	})
	if err != nil {
		t.Fatalf("expected routing to succeed, got %v", err)
	}

	draw, ok := decision.(decisionDrawImage)
	if !ok {
		t.Fatalf("expected the first call to win, got %T", decision)
	}
	if draw.Args.Prompt != "first" {
		t.Fatalf("expected the first call's arguments, got %q", draw.Args.Prompt)
	}
}

func TestRouteCompletionRejectsUnknownTool(t *testing.T) {
	_, err := routeCompletion(&llms.Completion{
		FinishReason: llms.FinishToolCalls,
		ToolCalls:    []llms.ToolCall{{ID: "call-1", Name: "send_email", Arguments: `{"prompt":"hi"}`}},
	})
	if err == nil {
		t.Fatalf("expected routing to fail for an unknown tool")
	}
	var protocolErr *faults.ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected a protocol error, got %v", err)
	}
}

func TestRouteCompletionRejectsMalformedArguments(t *testing.T) {
	_, err := routeCompletion(&llms.Completion{
		FinishReason: llms.FinishToolCalls,
		ToolCalls:    []llms.ToolCall{{ID: "call-1", Name: toolNameDrawImage, Arguments: `{"prompt":`}},
	})
	if err == nil {
		t.Fatalf("expected routing to fail for malformed arguments")
	}
	var parseErr *faults.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestRouteCompletionRejectsMissingPrompt(t *testing.T) {
	_, err := routeCompletion(&llms.Completion{
		FinishReason: llms.FinishToolCalls,
		ToolCalls:    []llms.ToolCall{{ID: "call-1", Name: toolNameWriteCode, Arguments: `{}`}},
	})
	if err == nil {
		t.Fatalf("expected routing to fail for a missing prompt")
	}
	var parseErr *faults.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestRouteCompletionRejectsOtherFinishReasons(t *testing.T) {
	_, err := routeCompletion(&llms.Completion{FinishReason: "length", Content: "truncated"})
	if err == nil {
		t.Fatalf("expected routing to fail for an unsupported finish reason")
	}
	var protocolErr *faults.ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected a protocol error, got %v", err)
	}
}

func TestRoutingToolsExposeClosedSet(t *testing.T) {
	tools := routingTools()
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name] = true
		if tool.Parameters == nil {
			t.Fatalf("expected tool %q to carry a parameter schema", tool.Name)
		}
	}
	for _, name := range []string{toolNameDrawImage, toolNameWriteCode, toolNameAnswer} {
		if !names[name] {
			t.Fatalf("expected tool %q to be exposed", name)
		}
	}
}
