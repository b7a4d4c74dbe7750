package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/shifting-maze/domain"
	"github.com/beka-birhanu/shifting-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.SessionRecordRepo = &SessionRecordRepo{}

// SessionRecordRepo stores finished maze sessions.
type SessionRecordRepo struct {
	collection *mongo.Collection
}

// NewSessionRecordRepo creates a SessionRecordRepo on the given database and collection.
func NewSessionRecordRepo(client *mongo.Client, dbName, collectionName string) *SessionRecordRepo {
	return &SessionRecordRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the index backing per-player history queries.
func (r *SessionRecordRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "endedAt", Value: -1}},
	})
	return err
}

// Save inserts the record, replacing one with the same ID.
func (r *SessionRecordRepo) Save(record *dmn.SessionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": record.ID}, record, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByPlayer returns up to limit records of the player, most recent first.
func (r *SessionRecordRepo) ByPlayer(playerID uuid.UUID, limit int64) ([]*dmn.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "endedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	records := make([]*dmn.SessionRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return records, nil
}
