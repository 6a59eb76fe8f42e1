package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	userRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/user"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// DefaultUserService implements Service.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Identity  IdentityClient
	AdminUIDs map[string]struct{}
}

// RegisterEmail creates an email/password account at the identity provider
// and mirrors it as a profile document. Session bookkeeping is the caller's
// responsibility (the handler patches the request session).
func (s *DefaultUserService) RegisterEmail(input *models.SignupInput) (*models.UserProfile, error) {
	var violations []string
	if strings.TrimSpace(input.Email) == "" {
		violations = append(violations, "email is required")
	}
	if len(input.Password) < 6 {
		violations = append(violations, "password must be at least 6 characters")
	}
	if strings.TrimSpace(input.Name) == "" {
		violations = append(violations, "name is required")
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, err := s.Identity.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(input.Email).
		Password(input.Password).
		DisplayName(input.Name))
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	profile := &models.UserProfile{
		ID:        record.UID,
		Email:     input.Email,
		Name:      input.Name,
		Phone:     input.Phone,
		Gender:    input.Gender,
		Address:   input.Address,
		Birthdate: input.Birthdate,
	}

	if err := s.Repo.Create(profile); err != nil {
		// Roll back the provider account so a retry is not blocked by a
		// half-registered email.
		if derr := s.Identity.DeleteUser(ctx, record.UID); derr != nil {
			utils.GetLogger().Error("failed to roll back identity account",
				zap.String("uid", record.UID), zap.Error(derr))
		}
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	utils.GetLogger().Info("user registered", zap.String("uid", record.UID))
	return profile, nil
}

// GetProfile fetches the mirrored profile for a subject id.
func (s *DefaultUserService) GetProfile(uid string) (*models.UserProfile, error) {
	return s.Repo.GetByID(uid)
}

// UpdateProfile applies the editable fields to the profile document.
func (s *DefaultUserService) UpdateProfile(uid string, input *models.ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.Repo.GetByID(uid)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.Birthdate != nil {
		profile.Birthdate = *input.Birthdate
	}

	if err := s.Repo.Update(profile); err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}
	return profile, nil
}

// DeleteAccount soft-deletes the profile and removes the provider account.
func (s *DefaultUserService) DeleteAccount(uid string) error {
	if err := s.Repo.SoftDelete(uid); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Identity.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("account deletion failed: %w", err)
	}

	utils.GetLogger().Info("user deleted", zap.String("uid", uid))
	return nil
}

// GetAllProfiles lists all non-deleted profiles.
func (s *DefaultUserService) GetAllProfiles() ([]models.UserProfile, error) {
	return s.Repo.GetAll()
}

// IsAdmin reports allow-list membership for a subject id.
func (s *DefaultUserService) IsAdmin(uid string) bool {
	_, ok := s.AdminUIDs[uid]
	return ok
}
