package models

import (
	"time"

	"github.com/lib/pq"
)

type SocialPost struct {
	ID              int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID          string         `gorm:"column:user_id;type:text;not null;index" json:"user_id"`
	OriginalContent string         `gorm:"column:original_content;type:text" json:"original_content"`
	SEOContent      string         `gorm:"column:seo_content;type:text" json:"seo_content"`
	FacebookContent string         `gorm:"column:facebook_content;type:text" json:"facebook_content"`
	Hashtags        pq.StringArray `gorm:"column:hashtags;type:text[]" json:"hashtags"`
	MetaDescription string         `gorm:"column:meta_description;type:text" json:"meta_description"`
	ImageAlt        string         `gorm:"column:image_alt;type:text" json:"image_alt"`
	ImageURL        *string        `gorm:"column:image_url;type:text" json:"image_url,omitempty"`

	Success bool    `gorm:"column:success" json:"success"`
	Status  string  `gorm:"column:status;type:text" json:"status"`
	PostURL *string `gorm:"column:post_url;type:text" json:"post_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (SocialPost) TableName() string { return "social_posts" }
