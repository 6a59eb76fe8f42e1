package sessionRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Funnel aggregates. Each count is a single server-side round trip; no
// client-side pagination loop.

func (r *MongoSessionRepo) countWhere(filter bson.M) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// CountAll returns the total session document count.
func (r *MongoSessionRepo) CountAll() (int64, error) {
	return r.countWhere(bson.M{})
}

// CountRegistered counts sessions that completed registration.
func (r *MongoSessionRepo) CountRegistered() (int64, error) {
	return r.countWhere(bson.M{"isRegistered": true})
}

// CountVisitedApplyPage counts sessions that reached the booking-request page.
func (r *MongoSessionRepo) CountVisitedApplyPage() (int64, error) {
	return r.countWhere(bson.M{"visitApplyPageCount": bson.M{"$gt": 0}})
}

// CountApplied counts sessions that completed a booking submission.
func (r *MongoSessionRepo) CountApplied() (int64, error) {
	return r.countWhere(bson.M{"applyCount": bson.M{"$gt": 0}})
}
