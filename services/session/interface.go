package session

import "github.com/Project-Ma-y/Ma-y-sub000/models"

// Service manages visitor session lifecycle and funnel events.
//
// UpdateSession and the funnel helpers return the id of the document that
// was actually touched. When the original document has vanished from the
// store a fresh session is created and the NEW id is returned; callers must
// propagate it back to the client cookie.
type Service interface {
	// InitSession creates a session document and returns its id.
	InitSession(userID string, isTest bool) (string, error)
	// GetSession fetches a session from the classified collection.
	GetSession(sessionID string, isTest bool) (*models.Session, error)
	// UpdateSession merge-patches a session, recreating it if missing.
	UpdateSession(sessionID string, upd models.SessionUpdate, isTest bool) (string, error)

	// MarkRegistered records registration completion for the session.
	MarkRegistered(sessionID, userID string, isTest bool) (string, error)
	// RecordApplyPageVisit bumps the booking-page visit counter.
	RecordApplyPageVisit(sessionID string, isTest bool) (string, error)
	// RecordApplyCompletion bumps the completed-booking counter.
	RecordApplyCompletion(sessionID string, isTest bool) (string, error)
}
