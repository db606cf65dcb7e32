package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/utils"
)

const defaultTurnListLimit = 200

// BufferRepository stores per-turn processing state, one document per
// (session_id, turn_index).
type BufferRepository interface {
	InsertTurn(ctx context.Context, b *models.RealtimeBuffer) error
	UpdateSTT(ctx context.Context, sessionID string, turnIndex int64, transcript, status string) error
	UpdateLLM(ctx context.Context, sessionID string, turnIndex int64, response, feedback, status string, processingMS int64) error
	ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.RealtimeBuffer, error)
}

type bufferRepo struct {
	col *mongo.Collection
}

func NewBufferRepo(db *mongo.Database) BufferRepository {
	return &bufferRepo{col: db.Collection(models.CollectionRealtimeBuffer)}
}

func turnKey(sessionID string, turnIndex int64) bson.M {
	return bson.M{"session_id": sessionID, "turn_index": turnIndex}
}

// InsertTurn replaces any earlier document for the same turn, so a
// reconnect that reuses a session id does not trip the unique index.
func (r *bufferRepo) InsertTurn(ctx context.Context, b *models.RealtimeBuffer) error {
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	_, err := r.col.ReplaceOne(ctx, turnKey(b.SessionID, b.TurnIndex), b, options.Replace().SetUpsert(true))
	return err
}

func (r *bufferRepo) UpdateSTT(ctx context.Context, sessionID string, turnIndex int64, transcript, status string) error {
	return r.setTurn(ctx, sessionID, turnIndex, bson.M{
		"transcript": transcript,
		"stt_status": status,
	})
}

func (r *bufferRepo) UpdateLLM(ctx context.Context, sessionID string, turnIndex int64, response, feedback, status string, processingMS int64) error {
	return r.setTurn(ctx, sessionID, turnIndex, bson.M{
		"llm_response":       response,
		"feedback":           feedback,
		"llm_status":         status,
		"processing_time_ms": processingMS,
	})
}

func (r *bufferRepo) setTurn(ctx context.Context, sessionID string, turnIndex int64, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, turnKey(sessionID, turnIndex), bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *bufferRepo) ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.RealtimeBuffer, error) {
	if limit <= 0 {
		limit = defaultTurnListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "turn_index", Value: 1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.RealtimeBuffer, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
