// Package events defines the typed event contract published on a session's
// channel while a turn is being processed.
//
// The union has five top-level variants, one per wire event name:
//
//   - Signal (signal): session-wide lifecycle marker. Carries no turn id.
//     Sub-variants: Processing(Step), Finish(Step), Error(message), Complete.
//   - InputSkeleton (input_skeleton): placeholder preceding the transcribed
//     user message, enabling progressive rendering.
//   - Input (input): the transcribed user message for one turn.
//   - ReplySkeleton (reply_skeleton): placeholder preceding the assistant's
//     reply for one turn.
//   - Reply (reply): the assistant's reply payload for one turn. Payload is
//     one of Speech, Image or Markdown.
//
// Semantics used across the package:
//
//   - Step: ordered progress marker named by a Processing/Finish signal. The
//     order is informational; nothing here enforces transitions.
//   - Turn id: fresh opaque id shared by every Input/ReplySkeleton/Reply event
//     of a single turn. Signals and input skeletons carry none.
//   - Skeleton: placeholder event published strictly before the content event
//     for the same stage of the same turn.
//
// All variants marshal to JSON with an explicit discriminant so consumers can
// decode exhaustively without runtime type inspection.
package events
