package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	"github.com/Project-Ma-y/Ma-y-sub000/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names for production and test-classified traffic.
const (
	ProdCollection = "sessions"
	TestCollection = "testSessions"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a SessionRepository over the named collection.
func NewMongoSessionRepo(collection string) SessionRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection(collection)
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// NewRepoSet builds the production/test repository pair.
func NewRepoSet() *RepoSet {
	return &RepoSet{
		Prod: NewMongoSessionRepo(ProdCollection),
		Test: NewMongoSessionRepo(TestCollection),
	}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
