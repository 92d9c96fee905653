// Package gateway talks to the generative model on behalf of the tutor. It
// turns provider output into cancellable fragment streams and validated
// quizzes, and folds every failure into ErrRequestFailed.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

var (
	// ErrRequestFailed covers every transport or parse failure.
	ErrRequestFailed = errors.New("AI request failed")
	// ErrInvalidQuiz is returned when a quiz reply does not match the schema.
	ErrInvalidQuiz = fmt.Errorf("%w: invalid quiz", ErrRequestFailed)
)

// Stream is a single-pass, cancellable sequence of text fragments. Close stops
// the producer and may be called more than once.
type Stream interface {
	Next() bool
	Fragment() string
	Err() error
	Close() error
}

// Provider is a model backend.
type Provider interface {
	// Stream starts a generation and returns its fragments as they arrive.
	Stream(ctx context.Context, prompt string) (Stream, error)
	// Complete returns the whole reply. When schema is set the reply is JSON
	// matching it.
	Complete(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	Name() string
}
