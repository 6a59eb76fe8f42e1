package statsRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	"github.com/Project-Ma-y/Ma-y-sub000/database"
	"github.com/Project-Ma-y/Ma-y-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotRepository persists daily funnel snapshots.
type SnapshotRepository interface {
	// Save upserts the snapshot for its date, so a re-run of the snapshot
	// job replaces that day's record instead of duplicating it.
	Save(snapshot *models.StatsSnapshot) error
	// GetRange returns snapshots for dates in [from, to], ascending.
	GetRange(from, to string) ([]models.StatsSnapshot, error)
}

// MongoSnapshotRepo implements SnapshotRepository using MongoDB.
type MongoSnapshotRepo struct {
	coll *mongo.Collection
}

// NewMongoSnapshotRepo creates a SnapshotRepository using MongoDB.
func NewMongoSnapshotRepo() SnapshotRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("statsSnapshots")
	return &MongoSnapshotRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Save upserts the snapshot document keyed by date.
func (r *MongoSnapshotRepo) Save(snapshot *models.StatsSnapshot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"date": snapshot.Date}
	update := bson.M{"$set": snapshot}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save stats snapshot for %s: %w", snapshot.Date, err)
	}
	return nil
}

// GetRange returns snapshots for dates in [from, to], ascending by date.
func (r *MongoSnapshotRepo) GetRange(from, to string) ([]models.StatsSnapshot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stats snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snapshots []models.StatsSnapshot
	for cursor.Next(ctx) {
		var s models.StatsSnapshot
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode stats snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}
