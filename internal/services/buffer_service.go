package services

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/coachify/internal/models"
	mongorepo "github.com/yoockh/coachify/internal/repositories/mongo"
	"github.com/yoockh/coachify/internal/utils"
)

// BufferService tracks the processing state of each socket turn.
type BufferService interface {
	Open(ctx context.Context, sessionID string, turn int64) (*models.RealtimeBuffer, error)
	MarkSTT(ctx context.Context, sessionID string, turn int64, transcript, status string) error
	MarkLLM(ctx context.Context, sessionID string, turn int64, response, feedback, status string, processingMS int64) error
	ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.RealtimeBuffer, error)
}

type bufferService struct {
	buffers mongorepo.BufferRepository
	ttl     time.Duration
}

func NewBufferService(buffers mongorepo.BufferRepository, ttl time.Duration) BufferService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &bufferService{buffers: buffers, ttl: ttl}
}

func (s *bufferService) Open(ctx context.Context, sessionID string, turn int64) (*models.RealtimeBuffer, error) {
	const op = "BufferService.Open"

	if sessionID == "" || turn <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required and turn must be > 0", nil)
	}

	now := time.Now().UTC()
	doc := &models.RealtimeBuffer{
		SessionID: sessionID,
		TurnIndex: turn,
		STTStatus: models.StatusProcessing,
		LLMStatus: models.StatusPending,
		Timestamp: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.buffers.InsertTurn(ctx, doc); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to insert turn", err)
	}
	return doc, nil
}

func (s *bufferService) MarkSTT(ctx context.Context, sessionID string, turn int64, transcript, status string) error {
	const op = "BufferService.MarkSTT"

	if sessionID == "" || turn <= 0 || !validStatus(status) {
		return utils.E(utils.CodeInvalidArgument, op, "session_id, turn (>0) and a known status are required", nil)
	}
	return turnUpdateErr(op, "stt", s.buffers.UpdateSTT(ctx, sessionID, turn, transcript, status))
}

func (s *bufferService) MarkLLM(ctx context.Context, sessionID string, turn int64, response, feedback, status string, processingMS int64) error {
	const op = "BufferService.MarkLLM"

	if sessionID == "" || turn <= 0 || !validStatus(status) {
		return utils.E(utils.CodeInvalidArgument, op, "session_id, turn (>0) and a known status are required", nil)
	}
	return turnUpdateErr(op, "llm", s.buffers.UpdateLLM(ctx, sessionID, turn, response, feedback, status, processingMS))
}

func turnUpdateErr(op, stage string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrNotFound):
		return utils.E(utils.CodeNotFound, op, "turn was never opened", err)
	default:
		return utils.E(utils.CodeInternal, op, "failed to update "+stage+" fields", err)
	}
}

func validStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusProcessing, models.StatusDone, models.StatusFailed:
		return true
	}
	return false
}

func (s *bufferService) ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.RealtimeBuffer, error) {
	const op = "BufferService.ListBySession"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	out, err := s.buffers.ListBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list realtime buffer", err)
	}
	return out, nil
}
