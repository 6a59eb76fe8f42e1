package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	sessionRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	"github.com/Project-Ma-y/Ma-y-sub000/services/session"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookieName carries the opaque session id across requests.
const SessionCookieName = "sessionId"

// Session cookie lifetime in seconds (one year).
const sessionCookieMaxAge = 365 * 24 * 60 * 60

// Context keys set by LoadSession.
const (
	ContextSession       = "session"
	ContextSessionIsTest = "sessionIsTest"
)

// Paths that manage their own session explicitly; LoadSession passes them
// through untouched.
var sessionSkipPaths = map[string]struct{}{
	"/api/sessions/main":   {},
	"/api/sessions/cookie": {},
}

// IsTestRequest classifies traffic as test or production from the
// Origin/Referer headers, falling back to Host. A request is test traffic
// when the configured marker appears in the requesting host.
func IsTestRequest(c *gin.Context) bool {
	marker := config.AppConfig.TestHostMarker
	if marker == "" {
		return false
	}
	for _, h := range []string{c.GetHeader("Origin"), c.GetHeader("Referer"), c.Request.Host} {
		if h != "" && strings.Contains(h, marker) {
			return true
		}
	}
	return false
}

// SetSessionCookie writes the session cookie: httpOnly, Secure and
// SameSite=None so the SPA frontend on a sibling subdomain can carry it.
func SetSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", config.AppConfig.CookieDomain, true, true)
}

// LoadSession guarantees every downstream handler sees a resolved, persisted
// session document in the gin context, and that the client holds a valid
// session cookie afterwards. The repository is chosen once per request from
// the traffic classification and used for every store operation in that
// request, lookup and recreate alike.
func LoadSession(repos *sessionRepo.RepoSet, sessions session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, skip := sessionSkipPaths[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		logger := utils.GetLogger()
		isTest := IsTestRequest(c)
		repo := repos.For(isTest)

		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			newID, ierr := sessions.InitSession("", isTest)
			if ierr != nil {
				logger.Error("failed to create session", zap.Error(ierr))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session initialization failed"})
				return
			}
			sid = newID
			SetSessionCookie(c, sid)
		}

		sess, err := repo.GetByID(sid)
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			// Cookie points at a document that no longer exists; recreate
			// and re-issue the cookie. The original id's history is lost.
			logger.Warn("stale session cookie, recreating",
				zap.String("sessionId", sid), zap.Bool("isTest", isTest))

			newID, ierr := sessions.InitSession("", isTest)
			if ierr != nil {
				logger.Error("failed to recreate session", zap.Error(ierr))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session initialization failed"})
				return
			}
			SetSessionCookie(c, newID)
			sess, err = repo.GetByID(newID)
		}
		if err != nil {
			logger.Error("failed to resolve session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}

		c.Set(ContextSession, sess)
		c.Set(ContextSessionIsTest, isTest)
		c.Next()
	}
}
