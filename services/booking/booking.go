package booking

import (
	"fmt"

	bookingRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/booking"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements Service over the booking repository.
type DefaultBookingService struct {
	Repo bookingRepo.BookingRepository
}

// validateInput collects every violation in the payload at once.
func validateInput(input *models.BookingInput) error {
	var violations []string

	if input.DepartureAddress == "" {
		violations = append(violations, "departureAddress is required")
	}
	if input.DestinationAddress == "" {
		violations = append(violations, "destinationAddress is required")
	}
	if input.StartBookingTime.IsZero() {
		violations = append(violations, "startBookingTime is required")
	}
	if input.EndBookingTime.IsZero() {
		violations = append(violations, "endBookingTime is required")
	}
	if !input.StartBookingTime.IsZero() && !input.EndBookingTime.IsZero() &&
		!input.EndBookingTime.After(input.StartBookingTime) {
		violations = append(violations, "endBookingTime must be after startBookingTime")
	}
	if !models.ValidAssistanceType(input.AssistanceType) {
		violations = append(violations, "assistanceType must be one of guide, admin, shopping, other")
	}
	if input.Status != "" && !models.ValidBookingStatus(input.Status) {
		violations = append(violations, "status must be one of pending, completed, cancelled")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// CreateBooking validates and persists a new booking owned by userID.
func (s *DefaultBookingService) CreateBooking(userID string, input *models.BookingInput) (*models.Booking, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.BookingStatusPending
	}

	booking := &models.Booking{
		ID:                 uuid.New().String(),
		UserID:             userID,
		DepartureAddress:   input.DepartureAddress,
		DestinationAddress: input.DestinationAddress,
		StartBookingTime:   input.StartBookingTime,
		EndBookingTime:     input.EndBookingTime,
		RoundTrip:          input.RoundTrip,
		AssistanceType:     input.AssistanceType,
		AdditionalRequests: input.AdditionalRequests,
		Status:             status,
		Price:              input.Price,
		PaymentMethod:      input.PaymentMethod,
	}

	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("booking creation failed: %w", err)
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("userId", userID))
	return booking, nil
}

// GetBookingByID returns the booking document, soft-deleted or not.
func (s *DefaultBookingService) GetBookingByID(id string) (*models.Booking, error) {
	return s.Repo.GetByID(id)
}

// GetAllBookings lists every booking (admin listing).
func (s *DefaultBookingService) GetAllBookings() ([]models.Booking, error) {
	return s.Repo.GetAll()
}

// GetMyBookings lists the caller's non-deleted bookings.
func (s *DefaultBookingService) GetMyBookings(userID string) ([]models.Booking, error) {
	return s.Repo.GetByUserID(userID)
}

// UpdateBooking applies the payload to a booking the caller owns.
func (s *DefaultBookingService) UpdateBooking(id, userID string, input *models.BookingInput) (*models.Booking, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}

	booking.DepartureAddress = input.DepartureAddress
	booking.DestinationAddress = input.DestinationAddress
	booking.StartBookingTime = input.StartBookingTime
	booking.EndBookingTime = input.EndBookingTime
	booking.RoundTrip = input.RoundTrip
	booking.AssistanceType = input.AssistanceType
	booking.AdditionalRequests = input.AdditionalRequests
	if input.Status != "" {
		booking.Status = input.Status
	}
	booking.Price = input.Price
	booking.PaymentMethod = input.PaymentMethod

	if err := s.Repo.Update(booking); err != nil {
		return nil, fmt.Errorf("booking update failed: %w", err)
	}
	return booking, nil
}

// DeleteBooking soft-deletes a booking; the owner or an admin may delete.
func (s *DefaultBookingService) DeleteBooking(id, userID string, isAdmin bool) error {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if booking.UserID != userID && !isAdmin {
		return ErrNotOwner
	}
	if err := s.Repo.SoftDelete(id); err != nil {
		return fmt.Errorf("booking deletion failed: %w", err)
	}
	return nil
}
