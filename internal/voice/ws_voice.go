package voice

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/coachify/internal/coach"
	"github.com/yoockh/coachify/internal/metrics"
	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/services"
)

// TurnReply is the JSON frame sent after each processed /ws/voice turn.
type TurnReply struct {
	Transcription string `json:"transcription"`
	ResponseText  string `json:"response_text"`
	Feedback      string `json:"feedback"`
	SessionID     string `json:"session_id"`
	Turn          int64  `json:"turn"`
}

// VoiceOptions come from the /ws/voice query string.
type VoiceOptions struct {
	Mode     coach.Mode
	Scenario string // optional, see coach.LookupScenario
}

// ServeVoice runs the /ws/voice loop until the peer goes away. Every
// non-empty utterance yields one conversation log, one JSON reply and, when
// a synthesizer is configured, one binary audio frame.
func (s *Server) ServeVoice(ctx context.Context, sock Socket, userID string, opts VoiceOptions) error {
	if opts.Mode == "" {
		opts.Mode = coach.ModeSalesCoach
	}
	sess, err := s.d.Sessions.Start(ctx, userID, models.EndpointWSVoice, string(opts.Mode))
	if err != nil {
		_ = sock.WriteJSON(errorFrame{Type: "error", Message: "could not start session"})
		return err
	}
	log := s.d.Log.WithFields(logrus.Fields{
		"session_id": sess.SessionID,
		"user_id":    userID,
		"endpoint":   models.EndpointWSVoice,
	})
	defer s.endSession(ctx, log, sess.SessionID)

	sim := coach.NewSimulator(s.d.Coach, opts.Mode)
	if sc, ok := coach.LookupScenario(opts.Scenario); ok {
		sim.SetScenario(&sc)
		log = log.WithField("scenario", sc.Name)
	}
	fb := coach.NewFeedbackAgent(s.d.Coach)

	var turn int64
	for {
		mt, data, err := sock.ReadMessage()
		if err != nil {
			log.WithError(err).Debug("voice socket closed")
			return nil
		}

		text, audio, err := s.utterance(ctx, mt, data)
		if err != nil {
			log.WithError(err).Warn("transcription failed")
			_ = sock.WriteJSON(errorFrame{Type: "error", Message: "could not transcribe audio"})
			continue
		}
		if text == "" {
			continue
		}

		turn++
		reply := s.voiceTurn(ctx, log.WithField("turn", turn), sim, fb, sess.SessionID, userID, turn, text, audio)
		if err := sock.WriteJSON(reply); err != nil {
			return err
		}

		speech, err := s.d.TTS.Synthesize(ctx, reply.ResponseText)
		if err != nil {
			log.WithError(err).Warn("speech synthesis failed")
			continue
		}
		if len(speech) > 0 {
			if err := sock.WriteBinary(speech); err != nil {
				return err
			}
		}
	}
}

func (s *Server) voiceTurn(ctx context.Context, log *logrus.Entry, sim *coach.Simulator, fb *coach.FeedbackAgent,
	sessionID, userID string, turn int64, text string, audio []byte) TurnReply {
	start := time.Now()

	if _, err := s.d.Buffers.Open(ctx, sessionID, turn); err != nil {
		log.WithError(err).Warn("buffer open failed")
	}
	if err := s.d.Buffers.MarkSTT(ctx, sessionID, turn, text, models.StatusDone); err != nil {
		log.WithError(err).Warn("buffer stt update failed")
	}

	r := sim.Respond(ctx, text)
	if r.FellBack {
		metrics.LLMFallback("simulator")
		log.WithError(r.Err).Warn("simulator fell back")
	}

	feedback, fellBack, err := fb.Review(ctx, sim.History())
	if fellBack {
		metrics.LLMFallback("feedback")
		log.WithError(err).Warn("feedback fell back")
	}

	audioPath := s.archive(ctx, log, sessionID, turn, audio)

	a := sim.Assessment()
	_, err = s.d.Conversations.Record(ctx, services.TurnRecord{
		UserID:     userID,
		SessionID:  sessionID,
		Transcript: text,
		Feedback:   feedback,
		Response:   r.Text,
		AudioPath:  audioPath,
		Metadata: map[string]any{
			"endpoint":          models.EndpointWSVoice,
			"mode":              string(sim.Mode()),
			"turn":              turn,
			"turn_scores":       r.TurnScores,
			"skills_assessment": a.Skills(),
			"improvement_areas": a.ImprovementAreas(),
			"topics":            coach.Topics(text),
			"metrics":           coach.MeasureTurn(text),
		},
	})
	if err != nil {
		log.WithError(err).Error("failed to record conversation turn")
	}

	status := models.StatusDone
	if r.FellBack {
		status = models.StatusFailed
	}
	ms := time.Since(start).Milliseconds()
	if err := s.d.Buffers.MarkLLM(ctx, sessionID, turn, r.Text, feedback, status, ms); err != nil {
		log.WithError(err).Warn("buffer llm update failed")
	}
	if err := s.d.Sessions.CountTurn(ctx, sessionID); err != nil {
		log.WithError(err).Warn("turn count failed")
	}
	metrics.TurnProcessed(models.EndpointWSVoice)
	log.WithField("processing_ms", ms).Info("voice turn processed")

	return TurnReply{
		Transcription: text,
		ResponseText:  r.Text,
		Feedback:      feedback,
		SessionID:     sessionID,
		Turn:          turn,
	}
}
