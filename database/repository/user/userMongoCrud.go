// File: database/repository/user/userMongoCrud.go
package userRepo

import (
	"fmt"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new profile document.
func (r *MongoUserRepo) Create(profile *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by its subject id.
func (r *MongoUserRepo) GetByID(id string) (*models.UserProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.UserProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return &profile, nil
}

// GetAll retrieves all non-deleted profiles.
func (r *MongoUserRepo) GetAll() ([]models.UserProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isDeleted": false})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	for cursor.Next(ctx) {
		var p models.UserProfile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Update replaces an existing profile document.
func (r *MongoUserRepo) Update(profile *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now()
	filter := bson.M{"id": profile.ID}
	update := bson.M{"$set": profile}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", profile.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SoftDelete flips the isDeleted flag and stamps deletedAt server-side.
func (r *MongoUserRepo) SoftDelete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"isDeleted": true},
		"$currentDate": bson.M{"deletedAt": true},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to soft-delete user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
