package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/coachify/internal/utils"
)

func TestConversationService_Record(t *testing.T) {
	repo := &fakeConversationRepo{}
	svc := NewConversationService(repo)
	ctx := context.Background()

	row, err := svc.Record(ctx, TurnRecord{
		UserID:     "ada@example.com",
		SessionID:  "s1",
		Transcript: "our ROI is 3x",
		Feedback:   "Coach Feedback: good",
		Response:   "Prove it.",
		Metadata:   map[string]any{"endpoint": "ws_voice"},
	})
	require.NoError(t, err)
	require.NotNil(t, row.Analysis)
	assert.Equal(t, "Coach Feedback: good", *row.Analysis)
	assert.Nil(t, row.AudioPath)

	var md map[string]any
	require.NoError(t, json.Unmarshal(row.Metadata, &md))
	assert.Equal(t, "ws_voice", md["endpoint"])

	require.Len(t, repo.rows, 1)
	assert.Equal(t, "our ROI is 3x", repo.rows[0].Transcript)
}

func TestConversationService_RecordRejectsEmptyTranscript(t *testing.T) {
	svc := NewConversationService(&fakeConversationRepo{})
	_, err := svc.Record(context.Background(), TurnRecord{UserID: "u", Transcript: "  "})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestConversationService_ListLimits(t *testing.T) {
	repo := &fakeConversationRepo{}
	svc := NewConversationService(repo)
	ctx := context.Background()

	for _, tr := range []string{"one", "two", "three"} {
		_, err := svc.Record(ctx, TurnRecord{UserID: "u", SessionID: "s", Transcript: tr})
		require.NoError(t, err)
	}

	rows, err := svc.ListByUser(ctx, "u", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "three", rows[0].Transcript)

	rows, err = svc.ListBySession(ctx, "u", "s", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = svc.ListByUser(ctx, "u", 501)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	_, err = svc.ListByUser(ctx, "u", -1)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
