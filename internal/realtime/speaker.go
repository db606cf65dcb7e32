package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/yoockh/coachify/internal/providers/tts"
)

var ErrInterrupted = errors.New("speech interrupted")

// AudioSink receives synthesized speech. WriteJSON carries the reply text
// when the synthesizer produced no audio.
type AudioSink interface {
	WriteBinary(b []byte) error
	WriteJSON(v any) error
}

type spokenText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Speaker owns synthesis for one connection. The speech lock keeps audio
// from two utterances from interleaving; the state mutex guards the
// speaking flag and the cancel func of the current utterance.
type Speaker struct {
	tts  tts.Synthesizer
	sink AudioSink

	speech sync.Mutex

	mu       sync.Mutex
	speaking bool
	gen      uint64
	cancel   context.CancelFunc

	wg sync.WaitGroup
}

func NewSpeaker(t tts.Synthesizer, sink AudioSink) *Speaker {
	return &Speaker{tts: t, sink: sink}
}

func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// Start speaks text in the background, superseding any utterance still in
// progress. The returned channel yields the outcome once.
func (s *Speaker) Start(ctx context.Context, text string) <-chan error {
	done := make(chan error, 1)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	sctx, cancel := context.WithCancel(ctx)
	s.gen++
	gen := s.gen
	s.speaking = true
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.speak(sctx, text)
		s.finish(gen)
		cancel()
		done <- err
	}()
	return done
}

func (s *Speaker) speak(ctx context.Context, text string) error {
	s.speech.Lock()
	defer s.speech.Unlock()

	if ctx.Err() != nil {
		return ErrInterrupted
	}
	audio, err := s.tts.Synthesize(ctx, text)
	if ctx.Err() != nil {
		return ErrInterrupted
	}
	if err != nil {
		return err
	}
	if len(audio) == 0 {
		return s.sink.WriteJSON(spokenText{Type: "reply", Text: text})
	}
	return s.sink.WriteBinary(audio)
}

func (s *Speaker) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.speaking = false
		s.cancel = nil
	}
}

// Interrupt cancels the current utterance. It reports whether anything was
// being spoken.
func (s *Speaker) Interrupt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.speaking {
		return false
	}
	s.cancel()
	s.speaking = false
	s.cancel = nil
	return true
}

// Close interrupts speech and waits for background synthesis to return.
func (s *Speaker) Close() {
	s.Interrupt()
	s.wg.Wait()
}
