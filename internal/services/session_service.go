package services

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/coachify/internal/models"
	mongorepo "github.com/yoockh/coachify/internal/repositories/mongo"
	"github.com/yoockh/coachify/internal/utils"

	"github.com/google/uuid"
)

type SessionService interface {
	Start(ctx context.Context, userID, endpoint, mode string) (*models.VoiceSession, error)
	Get(ctx context.Context, sessionID string) (*models.VoiceSession, error)
	// GetOwned is Get restricted to sessions owned by userID.
	GetOwned(ctx context.Context, userID, sessionID string) (*models.VoiceSession, error)
	CountTurn(ctx context.Context, sessionID string) error
	End(ctx context.Context, sessionID string) (*models.VoiceSession, error)
}

type sessionService struct {
	sessions mongorepo.SessionRepository
	now      func() time.Time
}

func NewSessionService(sessions mongorepo.SessionRepository) SessionService {
	return &sessionService{sessions: sessions, now: time.Now}
}

func (s *sessionService) Start(ctx context.Context, userID, endpoint, mode string) (*models.VoiceSession, error) {
	const op = "SessionService.Start"

	if userID == "" || endpoint == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and endpoint are required", nil)
	}

	session := &models.VoiceSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Endpoint:  endpoint,
		Mode:      mode,
		Status:    models.SessionActive,
		CreatedAt: s.now().UTC(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.VoiceSession, error) {
	const op = "SessionService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	out, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}
	return out, nil
}

func (s *sessionService) GetOwned(ctx context.Context, userID, sessionID string) (*models.VoiceSession, error) {
	const op = "SessionService.GetOwned"

	ss, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ss.UserID != userID {
		return nil, utils.E(utils.CodeForbidden, op, "session belongs to another user", nil)
	}
	return ss, nil
}

func (s *sessionService) CountTurn(ctx context.Context, sessionID string) error {
	const op = "SessionService.CountTurn"

	if err := s.sessions.IncrementTurns(ctx, sessionID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to count turn", err)
	}
	return nil
}

func (s *sessionService) End(ctx context.Context, sessionID string) (*models.VoiceSession, error) {
	const op = "SessionService.End"

	ss, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	dur := int64(now.Sub(ss.CreatedAt).Seconds())
	if dur < 0 {
		dur = 0
	}

	if err := s.sessions.End(ctx, sessionID, now, dur); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to end session", err)
	}

	ss.Status = models.SessionEnded
	ss.EndedAt = &now
	ss.DurationSeconds = dur
	return ss, nil
}
