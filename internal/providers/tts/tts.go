package tts

import "context"

// Synthesizer turns reply text into playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	ContentType() string
}

// Silent produces no audio; sockets then carry text replies only.
type Silent struct{}

func (Silent) Synthesize(context.Context, string) ([]byte, error) { return nil, nil }
func (Silent) ContentType() string                                { return "" }
