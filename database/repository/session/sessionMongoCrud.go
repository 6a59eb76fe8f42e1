// File: database/repository/session/sessionMongoCrud.go
package sessionRepo

import (
	"fmt"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Insert persists a new session document.
func (r *MongoSessionRepo) Insert(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert session %s: %w", session.ID, err)
	}
	return nil
}

// GetByID retrieves a session by its id.
func (r *MongoSessionRepo) GetByID(id string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"sessionId": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &session, nil
}

// Patch applies a merge-style partial update. Plain fields go through $set,
// counter deltas through $inc, all in one UpdateOne so concurrent increments
// to the same document cannot lose each other.
func (r *MongoSessionRepo) Patch(id string, upd models.SessionUpdate) error {
	if upd.IsZero() {
		return nil
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{}
	if upd.IsRegistered != nil {
		set["isRegistered"] = *upd.IsRegistered
	}
	if upd.RegisteredAt != nil {
		set["registeredAt"] = *upd.RegisteredAt
	}
	if upd.UserID != nil {
		set["userId"] = *upd.UserID
	}
	if upd.LastVisitApplyPageAt != nil {
		set["lastVisitApplyPageAt"] = *upd.LastVisitApplyPageAt
	}
	if upd.LastApplyAt != nil {
		set["lastApplyAt"] = *upd.LastApplyAt
	}

	inc := bson.M{}
	if upd.VisitApplyPageDelta != 0 {
		inc["visitApplyPageCount"] = upd.VisitApplyPageDelta
	}
	if upd.ApplyDelta != 0 {
		inc["applyCount"] = upd.ApplyDelta
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"sessionId": id}, update)
	if err != nil {
		return fmt.Errorf("failed to patch session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}
