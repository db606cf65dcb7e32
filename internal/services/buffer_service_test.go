package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/utils"
)

type fakeBufferRepo struct {
	turns map[string]*models.RealtimeBuffer
}

func newFakeBufferRepo() *fakeBufferRepo {
	return &fakeBufferRepo{turns: map[string]*models.RealtimeBuffer{}}
}

func bufferKey(sessionID string, turn int64) string { return fmt.Sprintf("%s/%d", sessionID, turn) }

func (r *fakeBufferRepo) InsertTurn(_ context.Context, b *models.RealtimeBuffer) error {
	cp := *b
	r.turns[bufferKey(b.SessionID, b.TurnIndex)] = &cp
	return nil
}

func (r *fakeBufferRepo) UpdateSTT(_ context.Context, sessionID string, turn int64, transcript, status string) error {
	b, ok := r.turns[bufferKey(sessionID, turn)]
	if !ok {
		return utils.ErrNotFound
	}
	b.Transcript, b.STTStatus = transcript, status
	return nil
}

func (r *fakeBufferRepo) UpdateLLM(_ context.Context, sessionID string, turn int64, response, feedback, status string, ms int64) error {
	b, ok := r.turns[bufferKey(sessionID, turn)]
	if !ok {
		return utils.ErrNotFound
	}
	b.LLMResponse, b.Feedback, b.LLMStatus, b.ProcessingTimeMS = response, feedback, status, ms
	return nil
}

func (r *fakeBufferRepo) ListBySession(_ context.Context, sessionID string, _ int64) ([]models.RealtimeBuffer, error) {
	var out []models.RealtimeBuffer
	for i := int64(1); ; i++ {
		b, ok := r.turns[bufferKey(sessionID, i)]
		if !ok {
			return out, nil
		}
		out = append(out, *b)
	}
}

func TestBufferService_TurnLifecycle(t *testing.T) {
	repo := newFakeBufferRepo()
	svc := NewBufferService(repo, time.Hour)
	ctx := context.Background()

	doc, err := svc.Open(ctx, "sess-1", 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, doc.STTStatus)
	assert.Equal(t, models.StatusPending, doc.LLMStatus)
	assert.WithinDuration(t, doc.Timestamp.Add(time.Hour), doc.ExpiresAt, time.Second)

	require.NoError(t, svc.MarkSTT(ctx, "sess-1", 1, "what does it cost", models.StatusDone))
	require.NoError(t, svc.MarkLLM(ctx, "sess-1", 1, "It depends.", "", models.StatusDone, 420))

	turns, err := svc.ListBySession(ctx, "sess-1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "what does it cost", turns[0].Transcript)
	assert.Equal(t, "It depends.", turns[0].LLMResponse)
	assert.Equal(t, int64(420), turns[0].ProcessingTimeMS)
}

func TestBufferService_Validation(t *testing.T) {
	svc := NewBufferService(newFakeBufferRepo(), 0)
	ctx := context.Background()

	_, err := svc.Open(ctx, "", 1)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	_, err = svc.Open(ctx, "sess-1", 0)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	err = svc.MarkSTT(ctx, "sess-1", 1, "hi", "finished")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.ListBySession(ctx, "", 10)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestBufferService_UnopenedTurn(t *testing.T) {
	svc := NewBufferService(newFakeBufferRepo(), time.Hour)

	err := svc.MarkLLM(context.Background(), "sess-1", 3, "late", "", models.StatusDone, 1)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
