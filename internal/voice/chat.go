package voice

import (
	"context"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/coachify/internal/coach"
	"github.com/yoockh/coachify/internal/metrics"
	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/realtime"
	"github.com/yoockh/coachify/internal/services"
)

const (
	cmdStop      = "stop"
	cmdInterrupt = "interrupt"

	trainerMode = "trainer"
)

type eventKind int

const (
	evText eventKind = iota
	evAudio
	evStop
)

type chatEvent struct {
	kind eventKind
	text string
	data []byte
}

// ServeChat runs /voice/chat. A reader goroutine turns frames into events;
// "interrupt" is applied to the speaker straight from the reader so it takes
// effect while the loop is busy. Utterances that arrive while the trainer is
// speaking cut the speech off and are otherwise dropped.
func (s *Server) ServeChat(ctx context.Context, sock Socket, userID string) error {
	sess, err := s.d.Sessions.Start(ctx, userID, models.EndpointVoiceChat, trainerMode)
	if err != nil {
		_ = sock.WriteJSON(errorFrame{Type: "error", Message: "could not start session"})
		return err
	}
	log := s.d.Log.WithFields(logrus.Fields{
		"session_id": sess.SessionID,
		"user_id":    userID,
		"endpoint":   models.EndpointVoiceChat,
	})
	defer s.endSession(ctx, log, sess.SessionID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	speaker := realtime.NewSpeaker(s.d.TTS, sock)
	defer speaker.Close()

	speaker.Start(ctx, coach.Greeting)

	events := make(chan chatEvent, 8)
	go s.readChat(ctx, sock, speaker, events, log)

	trainer := coach.NewTrainer(s.d.Trainer)
	var turn int64
	for {
		var ev chatEvent
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			ev = e
		}

		if ev.kind == evStop {
			log.Info("voice chat stopped by client")
			return nil
		}

		text := ev.text
		if ev.kind == evAudio {
			text, _, err = s.d.STT.Transcribe(ctx, ev.data, s.d.Language)
			if err != nil {
				log.WithError(err).Warn("transcription failed")
				continue
			}
			text = strings.TrimSpace(text)
		}
		if text == "" {
			continue
		}

		if speaker.Interrupt() {
			metrics.BargeIn()
			log.WithField("utterance", text).Debug("barge-in: speech stopped, utterance dropped")
			continue
		}

		turn++
		reply := s.chatTurn(ctx, log.WithField("turn", turn), trainer, sess.SessionID, userID, turn, text, ev.data)
		speaker.Start(ctx, reply)
	}
}

func (s *Server) readChat(ctx context.Context, sock Socket, speaker *realtime.Speaker, events chan<- chatEvent, log *logrus.Entry) {
	defer close(events)
	for {
		mt, data, err := sock.ReadMessage()
		if err != nil {
			log.WithError(err).Debug("voice chat socket closed")
			return
		}

		var ev chatEvent
		switch {
		case mt == websocket.BinaryMessage:
			ev = chatEvent{kind: evAudio, data: data}
		default:
			msg := textMessage(data)
			switch strings.ToLower(msg) {
			case cmdStop:
				ev = chatEvent{kind: evStop}
			case cmdInterrupt:
				if speaker.Interrupt() {
					log.Debug("speech interrupted by client")
				}
				continue
			default:
				ev = chatEvent{kind: evText, text: msg}
			}
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
		if ev.kind == evStop {
			return
		}
	}
}

func (s *Server) chatTurn(ctx context.Context, log *logrus.Entry, trainer *coach.Trainer,
	sessionID, userID string, turn int64, text string, audio []byte) string {
	start := time.Now()

	if _, err := s.d.Buffers.Open(ctx, sessionID, turn); err != nil {
		log.WithError(err).Warn("buffer open failed")
	}
	if err := s.d.Buffers.MarkSTT(ctx, sessionID, turn, text, models.StatusDone); err != nil {
		log.WithError(err).Warn("buffer stt update failed")
	}

	reply, fellBack, err := trainer.Reply(ctx, text)
	status := models.StatusDone
	if fellBack {
		status = models.StatusFailed
		metrics.LLMFallback("trainer")
		log.WithError(err).Warn("trainer fell back")
	}

	audioPath := s.archive(ctx, log, sessionID, turn, audio)
	_, err = s.d.Conversations.Record(ctx, services.TurnRecord{
		UserID:     userID,
		SessionID:  sessionID,
		Transcript: text,
		Response:   reply,
		AudioPath:  audioPath,
		Metadata: map[string]any{
			"endpoint": models.EndpointVoiceChat,
			"mode":     trainerMode,
			"turn":     turn,
			"topics":   coach.Topics(text),
			"metrics":  coach.MeasureTurn(text),
		},
	})
	if err != nil {
		log.WithError(err).Error("failed to record conversation turn")
	}

	ms := time.Since(start).Milliseconds()
	if err := s.d.Buffers.MarkLLM(ctx, sessionID, turn, reply, "", status, ms); err != nil {
		log.WithError(err).Warn("buffer llm update failed")
	}
	if err := s.d.Sessions.CountTurn(ctx, sessionID); err != nil {
		log.WithError(err).Warn("turn count failed")
	}
	metrics.TurnProcessed(models.EndpointVoiceChat)
	log.WithField("processing_ms", ms).Info("voice chat turn processed")
	return reply
}
