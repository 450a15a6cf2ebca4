// Package faults defines the error taxonomy shared across the turn pipeline.
//
// Every failure raised while driving a turn falls into one of four categories:
//
//   - TransportError: an I/O failure while calling a capability.
//   - ParseError: malformed multipart input or tool-argument JSON.
//   - ProtocolError: a capability answered with something the pipeline cannot
//     accept (unsupported finish reason, unknown tool, missing content).
//   - ChannelError: a publish against a session with no registered channel.
//
// The types wrap an underlying cause where one exists so that call sites can
// keep using errors.Is/errors.As after fmt.Errorf("%w") wrapping.
package faults

import "fmt"

// TransportError reports an I/O failure while calling an external capability.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport failure: %s", e.Op)
	}
	return fmt.Sprintf("transport failure: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Transport wraps err as a TransportError for the named operation.
func Transport(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// ParseError reports malformed caller input or malformed tool arguments.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse creates a ParseError with the given reason and optional cause.
func Parse(reason string, err error) error {
	return &ParseError{Reason: reason, Err: err}
}

// ProtocolError reports a well-formed but unacceptable capability response.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return e.Reason }

// Protocol creates a ProtocolError with the given reason.
func Protocol(format string, args ...any) error {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

// ChannelError reports a publish against a session with no registered channel.
type ChannelError struct {
	SessionID string
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("no channel registered for session %q", e.SessionID)
}

// Channel creates a ChannelError for the given session.
func Channel(sessionID string) error {
	return &ChannelError{SessionID: sessionID}
}
