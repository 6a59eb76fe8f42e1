// File: database/repository/booking/bookingMongoCrud.go
package bookingRepo

import (
	"fmt"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its id. Soft-deleted documents are still
// returned, with isDeleted set.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update replaces the mutable fields of an existing booking document.
func (r *MongoBookingRepo) Update(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	filter := bson.M{"bookingId": booking.ID}
	update := bson.M{"$set": booking}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// SoftDelete flips the isDeleted flag and stamps deletedAt with the store's
// server-side timestamp. No document is physically removed.
func (r *MongoBookingRepo) SoftDelete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"isDeleted": true},
		"$currentDate": bson.M{"deletedAt": true},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"bookingId": id}, update)
	if err != nil {
		return fmt.Errorf("failed to soft-delete booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}
