package handlers

import (
	"errors"
	"net/http"

	sessionRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/services/session"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves the session lifecycle endpoints.
type SessionHandler struct {
	Sessions session.Service
}

// NewSessionHandler wires a SessionHandler.
func NewSessionHandler(sessions session.Service) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

// MainLandingHandler is the first-touch endpoint. Without a usable session
// cookie it creates a session and issues the cookie with 201; with one it
// answers 200.
func (h *SessionHandler) MainLandingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	isTest := middleware.IsTestRequest(c)

	if sid, err := c.Cookie(middleware.SessionCookieName); err == nil && sid != "" {
		if _, gerr := h.Sessions.GetSession(sid, isTest); gerr == nil {
			c.JSON(http.StatusOK, gin.H{"message": "이미 세션이 있습니다.", "sessionId": sid})
			return
		} else if !errors.Is(gerr, sessionRepo.ErrSessionNotFound) {
			logger.Error("session lookup failed", zap.Error(gerr))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		// Stale cookie: fall through and recreate.
	}

	newID, err := h.Sessions.InitSession("", isTest)
	if err != nil {
		logger.Error("session creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session initialization failed"})
		return
	}

	middleware.SetSessionCookie(c, newID)
	c.JSON(http.StatusCreated, gin.H{"message": "세션이 생성되었습니다.", "sessionId": newID})
}

// BookingPageVisitHandler records a funnel-page visit on the request session.
func (h *SessionHandler) BookingPageVisitHandler(c *gin.Context) {
	logger := utils.GetLogger()

	sess := sessionFromContext(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
		return
	}
	isTest := c.GetBool(middleware.ContextSessionIsTest)

	id, err := h.Sessions.RecordApplyPageVisit(sess.ID, isTest)
	if err != nil {
		logger.Error("failed to record booking page visit",
			zap.String("sessionId", sess.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session update failed"})
		return
	}

	// A recreated session means a new id; re-issue the cookie so the client
	// follows the persisted document.
	if id != sess.ID {
		middleware.SetSessionCookie(c, id)
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

// EchoSessionCookieHandler is a debug endpoint echoing the session cookie.
func (h *SessionHandler) EchoSessionCookieHandler(c *gin.Context) {
	sid, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || sid == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No session cookie"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sid})
}

// sessionFromContext pulls the session attached by LoadSession, if any.
func sessionFromContext(c *gin.Context) *models.Session {
	val, exists := c.Get(middleware.ContextSession)
	if !exists {
		return nil
	}
	sess, ok := val.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}
