package sessionRepo

import (
	"errors"

	"github.com/Project-Ma-y/Ma-y-sub000/models"
)

// ErrSessionNotFound is returned when the targeted session document is
// absent from the selected collection.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines methods for session data access.
type SessionRepository interface {
	// Insert persists a new session document.
	Insert(session *models.Session) error
	// GetByID retrieves a session by its id, or ErrSessionNotFound.
	GetByID(id string) (*models.Session, error)
	// Patch applies a merge-style partial update in a single store call.
	// Counter deltas use the store's atomic increment primitive.
	Patch(id string, upd models.SessionUpdate) error

	// Funnel aggregates, each a single round trip.
	CountAll() (int64, error)
	CountRegistered() (int64, error)
	CountVisitedApplyPage() (int64, error)
	CountApplied() (int64, error)
}

// RepoSet pairs the production and test session repositories. The repository
// for a request is selected once at the edge; everything downstream is
// collection-agnostic.
type RepoSet struct {
	Prod SessionRepository
	Test SessionRepository
}

// For returns the repository matching the traffic classification.
func (s *RepoSet) For(isTest bool) SessionRepository {
	if isTest {
		return s.Test
	}
	return s.Prod
}
