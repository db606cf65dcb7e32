package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EndpointWSVoice   = "ws_voice"
	EndpointVoiceChat = "voice_chat"

	SessionActive = "active"
	SessionEnded  = "ended"
)

type VoiceSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID string             `bson:"session_id" json:"session_id"` // uuid v4
	UserID    string             `bson:"user_id" json:"user_id"`

	Endpoint string `bson:"endpoint" json:"endpoint"` // ws_voice|voice_chat
	Mode     string `bson:"mode" json:"mode"`
	Status   string `bson:"status" json:"status"` // active|ended
	Turns    int64  `bson:"turns" json:"turns"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	EndedAt   *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`

	DurationSeconds int64 `bson:"duration_seconds" json:"duration_seconds"`
}
