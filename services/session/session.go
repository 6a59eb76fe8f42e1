package session

import (
	"errors"
	"fmt"
	"time"

	sessionRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionService implements Service over the session repositories.
type DefaultSessionService struct {
	Repos *sessionRepo.RepoSet
}

// InitSession creates a session document in the classified collection and
// returns the new id. A non-empty userID marks the session registered from
// the start.
func (s *DefaultSessionService) InitSession(userID string, isTest bool) (string, error) {
	id := uuid.New().String()
	now := time.Now()

	sess := &models.Session{
		ID:           id,
		CreatedAt:    now,
		IsRegistered: userID != "",
		UserID:       userID,
	}
	if userID != "" {
		sess.RegisteredAt = &now
	}

	if err := s.Repos.For(isTest).Insert(sess); err != nil {
		return "", fmt.Errorf("session initialization failed: %w", err)
	}
	return id, nil
}

// GetSession fetches a session from the classified collection.
func (s *DefaultSessionService) GetSession(sessionID string, isTest bool) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}
	return s.Repos.For(isTest).GetByID(sessionID)
}

// UpdateSession merge-patches the session document. If the document no
// longer exists a fresh session is created in the SAME collection, the
// update is applied to it, and the new id is returned; the caller-held id
// then diverges from the persisted one and must be re-issued to the client.
func (s *DefaultSessionService) UpdateSession(sessionID string, upd models.SessionUpdate, isTest bool) (string, error) {
	if sessionID == "" {
		return "", ErrMissingSessionID
	}

	repo := s.Repos.For(isTest)

	err := repo.Patch(sessionID, upd)
	if err == nil {
		return sessionID, nil
	}
	if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return "", fmt.Errorf("session update failed: %w", err)
	}

	logger := utils.GetLogger()
	logger.Warn("session missing on update, recreating",
		zap.String("sessionId", sessionID),
		zap.Bool("isTest", isTest))

	newID, err := s.InitSession("", isTest)
	if err != nil {
		return "", fmt.Errorf("session update failed: %w", err)
	}
	if err := repo.Patch(newID, upd); err != nil {
		return "", fmt.Errorf("session update failed: %w", err)
	}
	return newID, nil
}

// MarkRegistered records registration completion on the session.
func (s *DefaultSessionService) MarkRegistered(sessionID, userID string, isTest bool) (string, error) {
	now := time.Now()
	registered := true
	return s.UpdateSession(sessionID, models.SessionUpdate{
		IsRegistered: &registered,
		RegisteredAt: &now,
		UserID:       &userID,
	}, isTest)
}

// RecordApplyPageVisit bumps the booking-page visit counter and stamps the
// visit time.
func (s *DefaultSessionService) RecordApplyPageVisit(sessionID string, isTest bool) (string, error) {
	now := time.Now()
	return s.UpdateSession(sessionID, models.SessionUpdate{
		VisitApplyPageDelta:  1,
		LastVisitApplyPageAt: &now,
	}, isTest)
}

// RecordApplyCompletion bumps the completed-booking counter and stamps the
// completion time.
func (s *DefaultSessionService) RecordApplyCompletion(sessionID string, isTest bool) (string, error) {
	now := time.Now()
	return s.UpdateSession(sessionID, models.SessionUpdate{
		ApplyDelta:  1,
		LastApplyAt: &now,
	}, isTest)
}
