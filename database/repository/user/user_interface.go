package userRepo

import (
	"errors"

	"github.com/Project-Ma-y/Ma-y-sub000/models"
)

// ErrUserNotFound is returned when the targeted profile document is absent.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for mirrored profile data access.
type UserRepository interface {
	// GetByID retrieves a profile by its subject id, or ErrUserNotFound.
	GetByID(id string) (*models.UserProfile, error)
	// GetAll retrieves all non-deleted profiles.
	GetAll() ([]models.UserProfile, error)
	// Create inserts a new profile record.
	Create(profile *models.UserProfile) error
	// Update replaces an existing profile record.
	Update(profile *models.UserProfile) error
	// SoftDelete flips the isDeleted flag; the document stays in the store.
	SoftDelete(id string) error
}
