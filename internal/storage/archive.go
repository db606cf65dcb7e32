package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

// AudioObjectName lays utterance audio out per session and turn.
func AudioObjectName(sessionID string, turn int64, at time.Time) string {
	return fmt.Sprintf("voice/%s/%s/%04d.wav", at.UTC().Format("2006/01/02"), sessionID, turn)
}

// ArchiveAudio stores raw utterance audio. A nil uploader or empty audio is
// a no-op returning "".
func ArchiveAudio(ctx context.Context, u Uploader, sessionID string, turn int64, audio []byte) (string, error) {
	if u == nil || len(audio) == 0 {
		return "", nil
	}
	return u.Upload(ctx, AudioObjectName(sessionID, turn, time.Now()), ContentTypeWAV, bytes.NewReader(audio))
}
