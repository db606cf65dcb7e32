// Package voice runs the two coaching sockets: /ws/voice answers each turn
// with a simulated customer reply plus coach feedback, /voice/chat holds a
// spoken conversation with a trainer that the user can talk over.
package voice

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/coachify/internal/providers/llm"
	"github.com/yoockh/coachify/internal/providers/stt"
	"github.com/yoockh/coachify/internal/providers/tts"
	"github.com/yoockh/coachify/internal/services"
	"github.com/yoockh/coachify/internal/storage"
)

// AnonymousUser owns sockets opened without a token.
const AnonymousUser = "default_user"

const finalizeTimeout = 5 * time.Second

// Socket is the connection surface the loops need.
type Socket interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteJSON(v any) error
	WriteBinary(b []byte) error
}

type Deps struct {
	STT      stt.Provider
	TTS      tts.Synthesizer
	Coach    llm.Provider // simulator and feedback
	Trainer  llm.Provider
	Archive  storage.Uploader // nil disables audio archiving
	Language string

	Conversations services.ConversationService
	Sessions      services.SessionService
	Buffers       services.BufferService

	Log *logrus.Logger
}

type Server struct {
	d Deps
}

func NewServer(d Deps) *Server {
	if d.STT == nil {
		d.STT = stt.Passthrough{}
	}
	if d.TTS == nil {
		d.TTS = tts.Silent{}
	}
	if d.Log == nil {
		d.Log = logrus.New()
	}
	return &Server{d: d}
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// utterance extracts the user's words from a frame. Binary frames go
// through STT; text frames are {"message": ...} JSON or plain text.
func (s *Server) utterance(ctx context.Context, mt int, data []byte) (text string, audio []byte, err error) {
	if mt == websocket.BinaryMessage {
		text, _, err = s.d.STT.Transcribe(ctx, data, s.d.Language)
		return strings.TrimSpace(text), data, err
	}
	return textMessage(data), nil, nil
}

func textMessage(data []byte) string {
	var m struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(data, &m); err == nil && m.Message != nil {
		return strings.TrimSpace(*m.Message)
	}
	return strings.TrimSpace(string(data))
}

// archive stores raw audio when an archive is configured and logs failures.
func (s *Server) archive(ctx context.Context, log *logrus.Entry, sessionID string, turn int64, audio []byte) string {
	path, err := storage.ArchiveAudio(ctx, s.d.Archive, sessionID, turn, audio)
	if err != nil {
		log.WithError(err).Warn("audio archive failed")
		return ""
	}
	return path
}

// endSession closes the session record even when the request context is gone.
func (s *Server) endSession(ctx context.Context, log *logrus.Entry, sessionID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()
	if _, err := s.d.Sessions.End(ctx, sessionID); err != nil {
		log.WithError(err).Warn("failed to end voice session")
	}
}
