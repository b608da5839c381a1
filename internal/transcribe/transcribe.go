// Package transcribe defines the speech-to-text collaborator used for audio
// orders. The order parser only ever sees the resulting transcript.
package transcribe

import (
	"context"
	"errors"
)

// ErrDisabled is returned when an audio order arrives but no transcription
// backend is configured.
var ErrDisabled = errors.New("transcription disabled")

// Options controls a single transcription.
type Options struct {
	// Language is a hint for the recognizer (e.g., "de", "fr").
	Language string

	// Prompt provides vocabulary context, typically the tenant's menu names.
	Prompt string
}

// Result is a transcript together with the language the backend detected.
type Result struct {
	Text     string
	Language string
}

// Transcriber converts audio to text.
type Transcriber interface {
	// Name returns the backend identifier (e.g., "whisper").
	Name() string

	// Transcribe converts audio bytes to text.
	Transcribe(ctx context.Context, audio []byte, contentType string, opts Options) (*Result, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Disabled is the Transcriber used when the backend is "none".
type Disabled struct{}

func (Disabled) Name() string { return "none" }

func (Disabled) Transcribe(context.Context, []byte, string, Options) (*Result, error) {
	return nil, ErrDisabled
}

func (Disabled) Close() error { return nil }
