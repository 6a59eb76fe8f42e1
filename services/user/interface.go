package user

import (
	"context"

	"github.com/Project-Ma-y/Ma-y-sub000/models"

	"firebase.google.com/go/v4/auth"
)

// IdentityClient is the slice of the identity provider's admin API this
// service needs. *auth.Client satisfies it.
type IdentityClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

// Service manages accounts: identity-provider records plus the mirrored
// profile documents.
type Service interface {
	// RegisterEmail creates the provider account and its mirrored profile.
	RegisterEmail(input *models.SignupInput) (*models.UserProfile, error)
	// GetProfile fetches the mirrored profile for a subject id.
	GetProfile(uid string) (*models.UserProfile, error)
	// UpdateProfile applies the editable fields to the profile.
	UpdateProfile(uid string, input *models.ProfileUpdate) (*models.UserProfile, error)
	// DeleteAccount soft-deletes the profile and removes the provider account.
	DeleteAccount(uid string) error
	// GetAllProfiles lists all non-deleted profiles (admin).
	GetAllProfiles() ([]models.UserProfile, error)
	// IsAdmin reports allow-list membership for a subject id.
	IsAdmin(uid string) bool
}
