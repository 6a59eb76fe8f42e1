package models

import "time"

// Assistance types a booking may request.
const (
	AssistanceGuide    = "guide"
	AssistanceAdmin    = "admin"
	AssistanceShopping = "shopping"
	AssistanceOther    = "other"
)

// Booking statuses. Status is client-asserted; the server validates it
// against the closed set but applies no transition machine.
const (
	BookingStatusPending   = "pending"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents one companion-escort request.
type Booking struct {
	ID                 string     `bson:"bookingId" json:"bookingId"`
	UserID             string     `bson:"userId" json:"userId"`
	DepartureAddress   string     `bson:"departureAddress" json:"departureAddress"`
	DestinationAddress string     `bson:"destinationAddress" json:"destinationAddress"`
	StartBookingTime   time.Time  `bson:"startBookingTime" json:"startBookingTime"`
	EndBookingTime     time.Time  `bson:"endBookingTime" json:"endBookingTime"`
	RoundTrip          bool       `bson:"roundTrip" json:"roundTrip"`
	AssistanceType     string     `bson:"assistanceType" json:"assistanceType"`
	AdditionalRequests string     `bson:"additionalRequests,omitempty" json:"additionalRequests,omitempty"`
	Status             string     `bson:"status" json:"status"`
	IsDeleted          bool       `bson:"isDeleted" json:"isDeleted"`
	DeletedAt          *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`

	// Payment metadata is stored as-is; no gateway integration exists.
	Price         float64    `bson:"price" json:"price"`
	IsPaid        bool       `bson:"isPaid" json:"isPaid"`
	PaymentMethod string     `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput is the client payload for creating or updating a booking.
type BookingInput struct {
	DepartureAddress   string    `json:"departureAddress"`
	DestinationAddress string    `json:"destinationAddress"`
	StartBookingTime   time.Time `json:"startBookingTime"`
	EndBookingTime     time.Time `json:"endBookingTime"`
	RoundTrip          bool      `json:"roundTrip"`
	AssistanceType     string    `json:"assistanceType"`
	AdditionalRequests string    `json:"additionalRequests"`
	Status             string    `json:"status"`
	Price              float64   `json:"price"`
	PaymentMethod      string    `json:"paymentMethod"`
}

// ValidAssistanceType reports membership in the closed assistance enum.
func ValidAssistanceType(t string) bool {
	switch t {
	case AssistanceGuide, AssistanceAdmin, AssistanceShopping, AssistanceOther:
		return true
	}
	return false
}

// ValidBookingStatus reports membership in the closed status enum.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}
