package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConversationLog is one processed user utterance. Rows are append-only.
type ConversationLog struct {
	ID         int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     string         `gorm:"column:user_id;type:text;not null;index" json:"user_id"`
	SessionID  string         `gorm:"column:session_id;type:text;index" json:"session_id"`
	Transcript string         `gorm:"column:transcript;type:text;not null" json:"transcript"`
	Analysis   *string        `gorm:"column:analysis;type:text" json:"analysis"`
	Response   string         `gorm:"column:response;type:text" json:"response"`
	AudioPath  *string        `gorm:"column:audio_path;type:text" json:"audio_path,omitempty"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt  time.Time      `gorm:"column:created_at;type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (ConversationLog) TableName() string { return "conversation_logs" }
