package events

import "time"

const (
	defaultSenderName = "User"
	defaultAvatarURL  = "https://i.pravatar.cc/300"

	datetimeLayout = "2006-01-02 15:04:05"
)

// InputSkeleton is the placeholder published before the transcribed user
// message. It carries presentation defaults only, no turn id.
type InputSkeleton struct {
	Base
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// NewInputSkeleton creates an input placeholder event.
func NewInputSkeleton() InputSkeleton {
	return InputSkeleton{Base: NewBase(KindInputSkeleton), Name: defaultSenderName, Avatar: defaultAvatarURL}
}

// Input carries the transcribed user message of one turn.
type Input struct {
	Base
	ID       string `json:"id"`
	Message  string `json:"message"`
	Datetime string `json:"datetime"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// NewInput creates the transcribed user message event for the given turn.
func NewInput(turnID, message string) Input {
	return Input{
		Base:     NewBase(KindInput),
		ID:       turnID,
		Message:  message,
		Datetime: time.Now().Format(datetimeLayout),
		Name:     defaultSenderName,
		Avatar:   defaultAvatarURL,
	}
}
