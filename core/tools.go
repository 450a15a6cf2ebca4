package assistant

import (
	"encoding/json"

	"github.com/avabot/ava-core/core/faults"
	"github.com/avabot/ava-core/core/llms"
)

// The closed set of tools exposed to the routing completion.
const (
	toolNameDrawImage = "draw_image"
	toolNameWriteCode = "write_code"
	toolNameAnswer    = "answer"
)

type drawImageArgs struct {
	Prompt string `json:"prompt" jsonschema:"description=The revised prompt for creating the image"`
}

type writeCodeArgs struct {
	Prompt string `json:"prompt" jsonschema:"description=The revised prompt for creating the code"`
}

type answerArgs struct {
	Prompt string `json:"prompt" jsonschema:"description=The question or prompt from the user"`
}

func routingTools() []llms.Tool {
	return []llms.Tool{
		llms.NewTool[drawImageArgs](toolNameDrawImage, "Draw an image based on the prompt"),
		llms.NewTool[writeCodeArgs](toolNameWriteCode, "Write code based on the prompt"),
		llms.NewTool[answerArgs](toolNameAnswer, "Just reply based on the prompt."),
	}
}

// toolDecision is the closed outcome of routing a completion: reply directly
// or run exactly one named tool.
type toolDecision interface {
	toolDecision()
}

type decisionStop struct{ Content string }

type decisionDrawImage struct{ Args drawImageArgs }

type decisionWriteCode struct{ Args writeCodeArgs }

type decisionAnswer struct{ Args answerArgs }

func (decisionStop) toolDecision()      {}
func (decisionDrawImage) toolDecision() {}
func (decisionWriteCode) toolDecision() {}
func (decisionAnswer) toolDecision()    {}

// routeCompletion derives a tool decision from the model's completion. Pure:
// no side effects, no capability calls.
//
// When the model requests several tools at once only the first entry is
// honored and the rest are dropped silently. That mirrors the upstream
// contract this pipeline replaces; callers wanting stricter handling must
// reject multi-call completions before routing.
func routeCompletion(completion *llms.Completion) (toolDecision, error) {
	switch completion.FinishReason {
	case llms.FinishStop:
		if completion.Content == "" {
			return nil, faults.Protocol("expect content but no content available")
		}
		return decisionStop{Content: completion.Content}, nil

	case llms.FinishToolCalls:
		if len(completion.ToolCalls) == 0 {
			return nil, faults.Protocol("expected at least one tool call")
		}

		call := completion.ToolCalls[0]
		switch call.Name {
		case toolNameDrawImage:
			var args drawImageArgs
			if err := decodeArguments(call.Arguments, &args, &args.Prompt); err != nil {
				return nil, err
			}
			return decisionDrawImage{Args: args}, nil
		case toolNameWriteCode:
			var args writeCodeArgs
			if err := decodeArguments(call.Arguments, &args, &args.Prompt); err != nil {
				return nil, err
			}
			return decisionWriteCode{Args: args}, nil
		case toolNameAnswer:
			var args answerArgs
			if err := decodeArguments(call.Arguments, &args, &args.Prompt); err != nil {
				return nil, err
			}
			return decisionAnswer{Args: args}, nil
		}
		return nil, faults.Protocol("unrecognized tool: %s", call.Name)
	}

	return nil, faults.Protocol("unsupported finish reason: %s", completion.FinishReason)
}

// decodeArguments unmarshals tool-call arguments and enforces the required
// prompt field every tool shares.
func decodeArguments(raw string, args any, prompt *string) error {
	if err := json.Unmarshal([]byte(raw), args); err != nil {
		return faults.Parse("malformed tool arguments", err)
	}
	if *prompt == "" {
		return faults.Parse(`missing required field "prompt"`, nil)
	}
	return nil
}
