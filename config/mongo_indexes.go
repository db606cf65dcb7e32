package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/coachify/internal/models"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func voiceIndexes() []collectionIndexes {
	return []collectionIndexes{
		{
			collection: models.CollectionRealtimeBuffer,
			models: []mongo.IndexModel{
				// expires_at must be a BSON date for the TTL monitor to act on it
				{
					Keys:    bson.D{{Key: "expires_at", Value: 1}},
					Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
				},
				{
					Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "turn_index", Value: 1}},
					Options: options.Index().SetName("uniq_session_turn").SetUnique(true),
				},
			},
		},
		{
			collection: models.CollectionVoiceSessions,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "session_id", Value: 1}},
					Options: options.Index().SetName("uniq_session_id").SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
					Options: options.Index().SetName("by_user_created"),
				},
			},
		},
	}
}

// EnsureMongoIndexes creates the voice collections' indexes. It is safe to
// run on every start.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return errors.New("mongo database is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, ci := range voiceIndexes() {
		if _, err := db.Collection(ci.collection).Indexes().CreateMany(ctx, ci.models); err != nil {
			return fmt.Errorf("indexes on %s: %w", ci.collection, err)
		}
	}
	return nil
}
