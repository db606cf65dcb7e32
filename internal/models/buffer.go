package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionRealtimeBuffer = "realtime_buffer"
	CollectionVoiceSessions  = "voice_sessions"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusDone       = "done"
	StatusFailed     = "failed"
)

// RealtimeBuffer tracks one socket turn while it is processed.
type RealtimeBuffer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID string             `bson:"session_id" json:"session_id"`
	TurnIndex int64              `bson:"turn_index" json:"turn_index"`

	Transcript string `bson:"transcript,omitempty" json:"transcript,omitempty"`
	STTStatus  string `bson:"stt_status" json:"stt_status"` // pending|processing|done|failed

	LLMStatus   string `bson:"llm_status" json:"llm_status"` // pending|processing|done|failed
	LLMResponse string `bson:"llm_response,omitempty" json:"llm_response,omitempty"`
	Feedback    string `bson:"feedback,omitempty" json:"feedback,omitempty"`

	ProcessingTimeMS int64     `bson:"processing_time_ms,omitempty" json:"processing_time_ms,omitempty"`
	Timestamp        time.Time `bson:"timestamp" json:"timestamp"`

	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // for TTL index
}
