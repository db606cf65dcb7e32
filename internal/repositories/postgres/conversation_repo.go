package postgres

import (
	"context"
	"errors"

	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/utils"
	"gorm.io/gorm"
)

type ConversationRepo interface {
	Insert(ctx context.Context, log *models.ConversationLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversationLog, error)
	ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.ConversationLog, error)
	GetByID(ctx context.Context, id int64) (*models.ConversationLog, error)
}

const defaultConversationLimit = 50

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Insert(ctx context.Context, log *models.ConversationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *conversationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.ConversationLog, error) {
	return r.newestFirst(ctx, limit, ownedBy(userID))
}

func (r *conversationRepo) ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]models.ConversationLog, error) {
	return r.newestFirst(ctx, limit, ownedBy(userID), inSession(sessionID))
}

func ownedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userID) }
}

func inSession(sessionID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where("session_id = ?", sessionID) }
}

// newestFirst breaks created_at ties on id so pages stay stable.
func (r *conversationRepo) newestFirst(ctx context.Context, limit int, scopes ...func(*gorm.DB) *gorm.DB) ([]models.ConversationLog, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	rows := make([]models.ConversationLog, 0, limit)
	err := r.db.WithContext(ctx).
		Scopes(scopes...).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *conversationRepo) GetByID(ctx context.Context, id int64) (*models.ConversationLog, error) {
	var row models.ConversationLog
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}
