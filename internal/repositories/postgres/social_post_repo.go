package postgres

import (
	"context"

	"github.com/yoockh/coachify/internal/models"
	"gorm.io/gorm"
)

type SocialPostRepository interface {
	Insert(ctx context.Context, p *models.SocialPost) error
	LatestByUser(ctx context.Context, userID string, limit int) ([]models.SocialPost, error)
}

type socialPostRepo struct {
	db *gorm.DB
}

func NewSocialPostRepo(db *gorm.DB) SocialPostRepository {
	return &socialPostRepo{db: db}
}

func (r *socialPostRepo) Insert(ctx context.Context, p *models.SocialPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *socialPostRepo) LatestByUser(ctx context.Context, userID string, limit int) ([]models.SocialPost, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.SocialPost
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
