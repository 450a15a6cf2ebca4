package assistant

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/avabot/ava-core/core/artifacts"
	"github.com/avabot/ava-core/core/bus"
	"github.com/avabot/ava-core/core/events"
	"github.com/avabot/ava-core/core/faults"
	"github.com/avabot/ava-core/core/llms"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	routingPrompt = "I can help to identify which tool to use, " +
		"if no proper tool could be used, I'll directly reply the message with pure text"
	directAnswerPrompt = "I'm an assistant who can answer anything for you"
	toolAnswerPrompt   = "I'm an assistant who answers the user's question precisely, " +
		"in a tone suitable for being read aloud"
	writeCodePrompt = "I'm an expert programmer who writes clean, working code for the prompt, " +
		"replying in markdown with fenced code blocks"

	audioFieldName = "audio"
)

// Dispatch runs one turn as an independent unit of work and returns
// immediately. The turn reports its progress and outcome exclusively through
// the session's event stream; pass a context tied to session teardown if the
// embedding process wants to cancel in-flight turns on shutdown.
func (a *Assistant) Dispatch(ctx context.Context, sessionID string, form *multipart.Reader) {
	go func() {
		if err := a.Run(ctx, sessionID, form); err != nil {
			logger.WarnContext(ctx, "turn failed", "session_id", sessionID, "error", err)
		}
	}()
}

// Run drives one turn to completion. Any failure is published to the
// session's channel as a single Error signal before being returned; the
// events already published stay as they are. Publishing requires that the
// session's channel exists, so a Run against an unknown session fails with a
// ChannelError without emitting anything.
func (a *Assistant) Run(ctx context.Context, sessionID string, form *multipart.Reader) error {
	channel, ok := a.registry.Lookup(sessionID)
	if !ok {
		return faults.Channel(sessionID)
	}

	turnID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "process turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("turn.id", turnID),
	)

	if err := a.process(ctx, channel, sessionID, turnID, form); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		channel.Publish(events.NewError(err.Error()))
		return err
	}
	return nil
}

// process is the turn state machine. Each stage publishes its progress
// signal before doing the work, and each content event is preceded by its
// skeleton. Every capability call is single-attempt; the first failure
// aborts the remaining stages.
func (a *Assistant) process(ctx context.Context, channel *bus.Channel, sessionID, turnID string, form *multipart.Reader) error {
	channel.Publish(events.NewProcessing(events.StepUploadAudio))
	audio, err := readAudioField(form)
	if err != nil {
		return err
	}

	channel.Publish(events.NewProcessing(events.StepTranscription))
	channel.Publish(events.NewInputSkeleton())
	transcript, err := a.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return err
	}
	channel.Publish(events.NewInput(turnID, transcript))

	channel.Publish(events.NewProcessing(events.StepThinking))
	channel.Publish(events.NewReplySkeleton(turnID))
	completion, err := a.completer.CompleteWithTools(ctx,
		[]llms.Message{llms.System(routingPrompt), llms.User(transcript)}, a.tools)
	if err != nil {
		return err
	}

	decision, err := routeCompletion(completion)
	if err != nil {
		return err
	}

	switch d := decision.(type) {
	case decisionStop:
		return a.answer(ctx, channel, sessionID, turnID, transcript, directAnswerPrompt, false)
	case decisionAnswer:
		return a.answer(ctx, channel, sessionID, turnID, d.Args.Prompt, toolAnswerPrompt, true)
	case decisionDrawImage:
		return a.drawImage(ctx, channel, sessionID, turnID, d.Args.Prompt)
	case decisionWriteCode:
		return a.writeCode(ctx, channel, turnID, d.Args.Prompt)
	}
	return faults.Protocol("unhandled tool decision: %T", decision)
}

// answer obtains the final text with a plain completion, publishes an
// optimistic speech reply with no URL, then synthesizes and stores the audio
// and republishes the reply with the artifact URL filled in.
func (a *Assistant) answer(ctx context.Context, channel *bus.Channel, sessionID, turnID, prompt, systemPrompt string, viaTool bool) error {
	if viaTool {
		channel.Publish(events.NewProcessing(events.StepChatCompletion))
	}
	completion, err := a.completer.Complete(ctx,
		[]llms.Message{llms.System(systemPrompt), llms.User(prompt)})
	if err != nil {
		return err
	}
	if completion.Content == "" {
		return faults.Protocol("expect content but no content available")
	}
	text := completion.Content

	channel.Publish(events.NewProcessing(events.StepSpeech))
	channel.Publish(events.NewReply(turnID, events.Speech{Text: text}))

	audio, err := a.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	url, err := a.store.Put(sessionID, artifacts.KindAudio, audio)
	if err != nil {
		return err
	}

	channel.Publish(events.NewReply(turnID, events.Speech{Text: text, URL: url}))
	channel.Publish(events.NewComplete())
	return nil
}

// drawImage publishes an optimistic image reply carrying the requested
// prompt, then generates, stores and republishes with the artifact URL and
// the provider's revised prompt.
func (a *Assistant) drawImage(ctx context.Context, channel *bus.Channel, sessionID, turnID, prompt string) error {
	channel.Publish(events.NewProcessing(events.StepDrawImage))
	channel.Publish(events.NewReply(turnID, events.Image{Prompt: prompt}))

	image, err := a.imageGenerator.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	url, err := a.store.Put(sessionID, artifacts.KindImage, image.Data)
	if err != nil {
		return err
	}

	channel.Publish(events.NewReply(turnID, events.Image{URL: url, Prompt: image.RevisedPrompt}))
	channel.Publish(events.NewComplete())
	return nil
}

// writeCode obtains a markdown answer with a code-specialized completion and
// publishes it rendered to HTML. No speech follows this path.
func (a *Assistant) writeCode(ctx context.Context, channel *bus.Channel, turnID, prompt string) error {
	channel.Publish(events.NewProcessing(events.StepWriteCode))

	completion, err := a.completer.Complete(ctx,
		[]llms.Message{llms.System(writeCodePrompt), llms.User(prompt)})
	if err != nil {
		return err
	}
	if completion.Content == "" {
		return faults.Protocol("expect content but no content available")
	}

	html, err := a.renderer.Render(completion.Content)
	if err != nil {
		return err
	}

	channel.Publish(events.NewReply(turnID, events.Markdown{HTML: html}))
	channel.Publish(events.NewComplete())
	return nil
}

// readAudioField reads exactly one multipart field, which must be named
// "audio". Anything else is malformed caller input.
func readAudioField(form *multipart.Reader) ([]byte, error) {
	part, err := form.NextPart()
	if err != nil {
		return nil, faults.Parse("expected an audio field", err)
	}
	defer part.Close()

	if part.FormName() != audioFieldName {
		return nil, faults.Parse("expected an audio field", nil)
	}

	audio, err := io.ReadAll(part)
	if err != nil {
		return nil, faults.Parse("error reading audio field", err)
	}
	return audio, nil
}
