package voice

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/providers/llm"
	"github.com/yoockh/coachify/internal/services"
)

type step struct {
	wait func()
	mt   int
	data []byte
}

func textStep(s string) step { return step{mt: websocket.TextMessage, data: []byte(s)} }
func binaryStep(b []byte) step { return step{mt: websocket.BinaryMessage, data: b} }
func waitThen(w func(), s step) step {
	s.wait = w
	return s
}

// scriptedSocket replays steps to the reader, then reports EOF.
type scriptedSocket struct {
	mu     sync.Mutex
	steps  []step
	next   int
	json   []any
	binary [][]byte
}

func (s *scriptedSocket) ReadMessage() (int, []byte, error) {
	s.mu.Lock()
	if s.next >= len(s.steps) {
		s.mu.Unlock()
		return 0, nil, io.EOF
	}
	st := s.steps[s.next]
	s.next++
	s.mu.Unlock()

	if st.wait != nil {
		st.wait()
	}
	return st.mt, st.data, nil
}

func (s *scriptedSocket) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.json = append(s.json, v)
	return nil
}

func (s *scriptedSocket) WriteBinary(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.binary = append(s.binary, b)
	return nil
}

func (s *scriptedSocket) binaries() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.binary...)
}

type fakeConversations struct {
	mu   sync.Mutex
	recs []services.TurnRecord
}

func (f *fakeConversations) Record(_ context.Context, rec services.TurnRecord) (*models.ConversationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return &models.ConversationLog{ID: int64(len(f.recs)), UserID: rec.UserID, Transcript: rec.Transcript}, nil
}

func (f *fakeConversations) ListByUser(context.Context, string, int) ([]models.ConversationLog, error) {
	return nil, nil
}

func (f *fakeConversations) ListBySession(context.Context, string, string, int) ([]models.ConversationLog, error) {
	return nil, nil
}

func (f *fakeConversations) records() []services.TurnRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]services.TurnRecord(nil), f.recs...)
}

type fakeSessions struct {
	mu      sync.Mutex
	started []*models.VoiceSession
	turns   int64
	ended   bool
}

func (f *fakeSessions) Start(_ context.Context, userID, endpoint, mode string) (*models.VoiceSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.VoiceSession{SessionID: "sess-1", UserID: userID, Endpoint: endpoint, Mode: mode, Status: models.SessionActive}
	f.started = append(f.started, s)
	return s, nil
}

func (f *fakeSessions) Get(context.Context, string) (*models.VoiceSession, error) {
	return nil, errors.New("not used")
}

func (f *fakeSessions) GetOwned(context.Context, string, string) (*models.VoiceSession, error) {
	return nil, errors.New("not used")
}

func (f *fakeSessions) CountTurn(context.Context, string) error {
	f.mu.Lock()
	f.turns++
	f.mu.Unlock()
	return nil
}

func (f *fakeSessions) End(_ context.Context, id string) (*models.VoiceSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = true
	return &models.VoiceSession{SessionID: id, Status: models.SessionEnded}, nil
}

type fakeBuffers struct{}

func (fakeBuffers) Open(_ context.Context, sessionID string, turn int64) (*models.RealtimeBuffer, error) {
	return &models.RealtimeBuffer{SessionID: sessionID, TurnIndex: turn}, nil
}
func (fakeBuffers) MarkSTT(context.Context, string, int64, string, string) error { return nil }
func (fakeBuffers) MarkLLM(context.Context, string, int64, string, string, string, int64) error {
	return nil
}
func (fakeBuffers) ListBySession(context.Context, string, int64) ([]models.RealtimeBuffer, error) {
	return nil, nil
}

type echoLLM struct{}

func (echoLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	return "re: " + req.Messages[len(req.Messages)-1].Content, nil
}

// gatedTTS blocks synthesis of gated texts until cancelled; other texts
// return audio immediately.
type gatedTTS struct {
	started chan string
	gated   func(text string) bool
}

func (g *gatedTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	g.started <- text
	if g.gated(text) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []byte("audio:" + text), nil
}

func (g *gatedTTS) ContentType() string { return "audio/mpeg" }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
