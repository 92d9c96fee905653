package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Protocol-Lattice/lattice-tutor/src/prompts"
)

// ErrStale is returned when a request's ticket was superseded before it
// finished. Nothing from the request is kept.
var ErrStale = errors.New("tutor: stale request")

// Fragments is a single-pass, cancellable sequence of text pieces.
type Fragments interface {
	Next() bool
	Fragment() string
	Err() error
	Close() error
}

// Backend produces model output for the tutor.
type Backend interface {
	StreamText(ctx context.Context, mode Mode, prompt string) (Fragments, error)
	GenerateQuiz(ctx context.Context, topic, language string) ([]QuizItem, error)
}

// Aggregate folds frags into the ticket's buffer, calling notify after every
// state change. A failing sequence keeps what already arrived and marks the
// mode errored. If the ticket goes stale the sequence is closed and ErrStale
// returned.
func Aggregate(ctx context.Context, s *Session, t Ticket, frags Fragments, notify func()) error {
	defer frags.Close()
	if notify == nil {
		notify = func() {}
	}
	for frags.Next() {
		if !s.Append(t, frags.Fragment()) {
			return ErrStale
		}
		notify()
		if err := ctx.Err(); err != nil {
			return fail(s, t, err, notify)
		}
	}
	if err := frags.Err(); err != nil {
		return fail(s, t, err, notify)
	}
	if err := ctx.Err(); err != nil {
		return fail(s, t, err, notify)
	}
	if !s.Settle(t) {
		return ErrStale
	}
	notify()
	return nil
}

func fail(s *Session, t Ticket, cause error, notify func()) error {
	if !s.Fail(t, FailureMessage(t.Mode)) {
		return ErrStale
	}
	notify()
	return cause
}

// Prompt builds the model instruction for a ticket.
func Prompt(t Ticket) string {
	switch t.Mode {
	case ModeLearn:
		return prompts.TopicExplanation(t.Topic.Name, t.Language)
	case ModeExplain:
		return prompts.ExplainCode(t.Input, t.Language)
	case ModeGenerate:
		return prompts.GenerateCode(t.Input, t.Language)
	case ModeQuiz:
		return prompts.Quiz(t.Topic.Name, t.Language)
	case ModeProjects:
		return prompts.ProjectIdeas(t.Topic.Name, t.Language)
	}
	return ""
}

// Run carries a ticket through the backend and into the session.
func Run(ctx context.Context, s *Session, b Backend, t Ticket, notify func()) error {
	if notify == nil {
		notify = func() {}
	}
	if t.Mode == ModeQuiz {
		items, err := b.GenerateQuiz(ctx, t.Topic.Name, t.Language)
		if err != nil {
			return fail(s, t, err, notify)
		}
		if !s.SetQuiz(t, items) {
			return ErrStale
		}
		notify()
		return nil
	}
	frags, err := b.StreamText(ctx, t.Mode, Prompt(t))
	if err != nil {
		return fail(s, t, err, notify)
	}
	return Aggregate(ctx, s, t, frags, notify)
}

// Once runs a single request outside an interactive session. onText receives
// every newly appended piece of text in order. The returned session holds the
// final state, including the quiz for ModeQuiz.
func Once(ctx context.Context, b Backend, topic Topic, language string, mode Mode, input string, onText func(string)) (*Session, error) {
	s := NewSession(topic, language)
	var t Ticket
	if mode.TakesInput() {
		s.SetInput(mode, input)
		var err error
		if t, err = s.Submit(mode); err != nil {
			return s, err
		}
	} else {
		t = s.Begin(mode)
	}
	sent := 0
	notify := func() {
		if onText == nil {
			return
		}
		text := s.Snapshot().Mode(mode).Text
		if len(text) > sent {
			onText(text[sent:])
			sent = len(text)
		}
	}
	if err := Run(ctx, s, b, t, notify); err != nil {
		return s, fmt.Errorf("%s: %w", mode.Slug(), err)
	}
	return s, nil
}
