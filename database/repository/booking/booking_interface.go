package bookingRepo

import (
	"errors"

	"github.com/Project-Ma-y/Ma-y-sub000/models"
)

// ErrBookingNotFound is returned when the targeted booking document is absent.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its id, deleted or not.
	GetByID(id string) (*models.Booking, error)
	// GetAll retrieves every booking (admin listing).
	GetAll() ([]models.Booking, error)
	// GetByUserID retrieves a user's bookings, excluding soft-deleted ones.
	GetByUserID(userID string) ([]models.Booking, error)
	// Update replaces the mutable fields of an existing booking.
	Update(booking *models.Booking) error
	// SoftDelete flips isDeleted and stamps deletedAt server-side.
	SoftDelete(id string) error
}
