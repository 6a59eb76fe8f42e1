package handlers

import (
	"errors"
	"net/http"

	bookingRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/booking"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/services/booking"
	"github.com/Project-Ma-y/Ma-y-sub000/services/session"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking CRUD endpoints.
type BookingHandler struct {
	Bookings booking.Service
	Sessions session.Service
	IsAdmin  func(uid string) bool
}

// NewBookingHandler wires a BookingHandler.
func NewBookingHandler(bookings booking.Service, sessions session.Service, isAdmin func(string) bool) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Sessions: sessions, IsAdmin: isAdmin}
}

func uidFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(middleware.ContextUID)
	if !exists {
		return "", false
	}
	uid, ok := val.(string)
	return uid, ok && uid != ""
}

// CreateBookingHandler handles POST /api/booking. A successful submission
// also counts as an apply-completion funnel event on the request session.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Bookings.CreateBooking(uid, &input)
	if err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "violations": verr.Violations})
			return
		}
		logger.Error("booking creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "booking creation failed"})
		return
	}

	if sess := sessionFromContext(c); sess != nil {
		isTest := c.GetBool(middleware.ContextSessionIsTest)
		if id, serr := h.Sessions.RecordApplyCompletion(sess.ID, isTest); serr != nil {
			// Funnel bookkeeping must not fail the booking itself.
			logger.Warn("failed to record apply completion",
				zap.String("sessionId", sess.ID), zap.Error(serr))
		} else if id != sess.ID {
			middleware.SetSessionCookie(c, id)
		}
	}

	c.JSON(http.StatusCreated, created)
}

// GetAllBookingsHandler handles GET /api/booking (admin).
func (h *BookingHandler) GetAllBookingsHandler(c *gin.Context) {
	bookings, err := h.Bookings.GetAllBookings()
	if err != nil {
		utils.GetLogger().Error("failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetMyBookingsHandler handles GET /api/booking/my.
func (h *BookingHandler) GetMyBookingsHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	bookings, err := h.Bookings.GetMyBookings(uid)
	if err != nil {
		utils.GetLogger().Error("failed to list user bookings",
			zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByIDHandler handles GET /api/booking/:id.
func (h *BookingHandler) GetBookingByIDHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	id := c.Param("id")
	b, err := h.Bookings.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		utils.GetLogger().Error("failed to fetch booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}

	if b.UserID != uid && !h.IsAdmin(uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingHandler handles PUT /api/booking/:id.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	updated, err := h.Bookings.UpdateBooking(id, uid, &input)
	if err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "violations": verr.Violations})
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, booking.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		default:
			utils.GetLogger().Error("booking update failed", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "booking update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBookingHandler handles DELETE /api/booking/:id (soft delete).
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	uid, ok := uidFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	id := c.Param("id")
	if err := h.Bookings.DeleteBooking(id, uid, h.IsAdmin(uid)); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, booking.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		default:
			utils.GetLogger().Error("booking deletion failed", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "booking deletion failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
