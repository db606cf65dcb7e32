package stt

import (
	"context"
	"strings"
	"unicode/utf8"
)

type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Close() error
}

// Passthrough treats the incoming frame as already-transcribed UTF-8 text.
// It is used when no speech backend is configured.
type Passthrough struct{}

func (Passthrough) Transcribe(_ context.Context, audio []byte, _ string) (string, float64, error) {
	if !utf8.Valid(audio) {
		return strings.ToValidUTF8(string(audio), ""), 0, nil
	}
	return strings.TrimSpace(string(audio)), 1, nil
}

func (Passthrough) Close() error { return nil }
