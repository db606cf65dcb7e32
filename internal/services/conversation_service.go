package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/yoockh/coachify/internal/models"
	pgrepo "github.com/yoockh/coachify/internal/repositories/postgres"
	"github.com/yoockh/coachify/internal/utils"

	"gorm.io/datatypes"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// TurnRecord is everything stored for one processed voice turn.
type TurnRecord struct {
	UserID     string
	SessionID  string
	Transcript string
	Feedback   string
	Response   string
	AudioPath  string
	Metadata   map[string]any
}

type ConversationService interface {
	Record(ctx context.Context, rec TurnRecord) (*models.ConversationLog, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversationLog, error)
	ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.ConversationLog, error)
}

type conversationService struct {
	convos pgrepo.ConversationRepo
}

func NewConversationService(convos pgrepo.ConversationRepo) ConversationService {
	return &conversationService{convos: convos}
}

func (s *conversationService) Record(ctx context.Context, rec TurnRecord) (*models.ConversationLog, error) {
	const op = "ConversationService.Record"

	if rec.UserID == "" || strings.TrimSpace(rec.Transcript) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and transcript are required", nil)
	}

	row := &models.ConversationLog{
		UserID:     rec.UserID,
		SessionID:  rec.SessionID,
		Transcript: rec.Transcript,
		Response:   rec.Response,
	}
	if rec.Feedback != "" {
		fb := rec.Feedback
		row.Analysis = &fb
	}
	if rec.AudioPath != "" {
		p := rec.AudioPath
		row.AudioPath = &p
	}
	if len(rec.Metadata) > 0 {
		b, err := json.Marshal(rec.Metadata)
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op, "metadata is not serializable", err)
		}
		row.Metadata = datatypes.JSON(b)
	}

	if err := s.convos.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to insert conversation log", err)
	}
	return row, nil
}

func (s *conversationService) ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversationLog, error) {
	const op = "ConversationService.ListByUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	limit, err := checkLimit(op, limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.convos.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list conversations", err)
	}
	return rows, nil
}

func (s *conversationService) ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.ConversationLog, error) {
	const op = "ConversationService.ListBySession"

	if userID == "" || sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and session_id are required", nil)
	}
	limit, err := checkLimit(op, limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.convos.ListBySession(ctx, userID, sessionID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list conversations", err)
	}
	return rows, nil
}

// checkLimit maps 0 to the default and rejects values outside 1..MaxListLimit.
func checkLimit(op string, limit int) (int, error) {
	if limit == 0 {
		return DefaultListLimit, nil
	}
	if limit < 0 || limit > MaxListLimit {
		return 0, utils.E(utils.CodeInvalidArgument, op, "limit must be between 1 and 500", nil)
	}
	return limit, nil
}
