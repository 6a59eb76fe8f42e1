package booking

import "github.com/Project-Ma-y/Ma-y-sub000/models"

// Service manages companion-escort booking records.
type Service interface {
	// CreateBooking validates the payload and persists a new booking owned
	// by userID.
	CreateBooking(userID string, input *models.BookingInput) (*models.Booking, error)
	// GetBookingByID returns the booking, soft-deleted or not.
	GetBookingByID(id string) (*models.Booking, error)
	// GetAllBookings lists every booking (admin).
	GetAllBookings() ([]models.Booking, error)
	// GetMyBookings lists the caller's non-deleted bookings.
	GetMyBookings(userID string) ([]models.Booking, error)
	// UpdateBooking applies the payload to an owned booking.
	UpdateBooking(id, userID string, input *models.BookingInput) (*models.Booking, error)
	// DeleteBooking soft-deletes; allowed for the owner or an admin.
	DeleteBooking(id, userID string, isAdmin bool) error
}
