package events

import (
	"encoding/json"
	"fmt"
)

// Step is an ordered progress marker named by Processing and Finish signals.
type Step string

const (
	StepUploadAudio    Step = "upload_audio"
	StepTranscription  Step = "transcription"
	StepChatCompletion Step = "chat_completion"
	StepThinking       Step = "thinking"
	StepDrawImage      Step = "draw_image"
	StepWriteCode      Step = "write_code"
	StepSpeech         Step = "speech"
)

// SignalType discriminates the signal sub-variants.
type SignalType string

const (
	SignalProcessing SignalType = "processing"
	SignalFinish     SignalType = "finish"
	SignalError      SignalType = "error"
	SignalComplete   SignalType = "complete"
)

// Signal is a session-wide lifecycle marker. It carries no turn id.
type Signal struct {
	Base
	Type SignalType
	// Step names the stage for Processing and Finish signals.
	Step Step
	// Message is the human-readable description for Error signals.
	Message string
}

// NewProcessing creates a signal marking entry into a pipeline step.
func NewProcessing(step Step) Signal {
	return Signal{Base: NewBase(KindSignal), Type: SignalProcessing, Step: step}
}

// NewFinish creates a signal marking completion of a pipeline step.
func NewFinish(step Step) Signal {
	return Signal{Base: NewBase(KindSignal), Type: SignalFinish, Step: step}
}

// NewError creates a signal carrying a human-readable failure message.
func NewError(message string) Signal {
	return Signal{Base: NewBase(KindSignal), Type: SignalError, Message: message}
}

// NewComplete creates the terminal signal of a successful turn.
func NewComplete() Signal {
	return Signal{Base: NewBase(KindSignal), Type: SignalComplete}
}

// MarshalJSON encodes the signal with an explicit discriminant, e.g.
// {"type":"processing","data":"upload_audio"} or {"type":"complete"}.
func (s Signal) MarshalJSON() ([]byte, error) {
	switch s.Type {
	case SignalProcessing, SignalFinish:
		return json.Marshal(struct {
			Type SignalType `json:"type"`
			Data Step       `json:"data"`
		}{Type: s.Type, Data: s.Step})
	case SignalError:
		return json.Marshal(struct {
			Type SignalType `json:"type"`
			Data string     `json:"data"`
		}{Type: s.Type, Data: s.Message})
	case SignalComplete:
		return json.Marshal(struct {
			Type SignalType `json:"type"`
		}{Type: s.Type})
	}
	return nil, fmt.Errorf("unknown signal type: %q", s.Type)
}
