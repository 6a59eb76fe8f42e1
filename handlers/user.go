package handlers

import (
	"errors"
	"net/http"

	userRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/user"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/services/session"
	"github.com/Project-Ma-y/Ma-y-sub000/services/user"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves account and profile endpoints.
type UserHandler struct {
	Users    user.Service
	Sessions session.Service
}

// NewUserHandler wires a UserHandler.
func NewUserHandler(users user.Service, sessions session.Service) *UserHandler {
	return &UserHandler{Users: users, Sessions: sessions}
}

// SignupEmailHandler handles POST /api/auth/signupEmail. On success the
// request session is marked registered with the new subject id.
func (h *UserHandler) SignupEmailHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input models.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Users.RegisterEmail(&input)
	if err != nil {
		var verr *user.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "violations": verr.Violations})
			return
		}
		logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	if sess := sessionFromContext(c); sess != nil {
		isTest := c.GetBool(middleware.ContextSessionIsTest)
		if id, serr := h.Sessions.MarkRegistered(sess.ID, profile.ID, isTest); serr != nil {
			// Funnel bookkeeping must not fail the signup itself.
			logger.Warn("failed to mark session registered",
				zap.String("sessionId", sess.ID), zap.Error(serr))
		} else if id != sess.ID {
			middleware.SetSessionCookie(c, id)
		}
	}

	c.JSON(http.StatusCreated, profile)
}

// CheckAdminHandler handles GET /api/auth/checkAdmin.
func (h *UserHandler) CheckAdminHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": h.Users.IsAdmin(uid)})
}

// GetMyProfileHandler handles GET /api/users/me.
func (h *UserHandler) GetMyProfileHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	profile, err := h.Users.GetProfile(uid)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.GetLogger().Error("failed to fetch profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfileHandler handles PUT /api/users/me.
func (h *UserHandler) UpdateMyProfileHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Users.UpdateProfile(uid, &input)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.GetLogger().Error("profile update failed", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteMyAccountHandler handles DELETE /api/users/me.
func (h *UserHandler) DeleteMyAccountHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	if err := h.Users.DeleteAccount(uid); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.GetLogger().Error("account deletion failed", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "account deletion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetAllUsersHandler handles GET /api/users (admin).
func (h *UserHandler) GetAllUsersHandler(c *gin.Context) {
	profiles, err := h.Users.GetAllProfiles()
	if err != nil {
		utils.GetLogger().Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}
