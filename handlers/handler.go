package handlers

import (
	sessionRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the route handlers and the collaborators route
// registration needs for middleware wiring.
type HandlerBundle struct {
	// Middleware collaborators.
	SessionRepos *sessionRepo.RepoSet
	SessionMW    gin.HandlerFunc
	Verifier     middleware.TokenVerifier
	AdminUIDs    map[string]struct{}

	// Session endpoints.
	MainLandingHandler       gin.HandlerFunc
	BookingPageVisitHandler  gin.HandlerFunc
	EchoSessionCookieHandler gin.HandlerFunc

	// Auth endpoints.
	SignupEmailHandler gin.HandlerFunc
	CheckAdminHandler  gin.HandlerFunc

	// Stats endpoints.
	SignupConversionHandler      gin.HandlerFunc
	ApplicationReachHandler      gin.HandlerFunc
	ApplicationConversionHandler gin.HandlerFunc
	FunnelSummaryHandler         gin.HandlerFunc

	// Booking endpoints.
	CreateBookingHandler  gin.HandlerFunc
	GetAllBookingsHandler gin.HandlerFunc
	GetMyBookingsHandler  gin.HandlerFunc
	GetBookingByIDHandler gin.HandlerFunc
	UpdateBookingHandler  gin.HandlerFunc
	DeleteBookingHandler  gin.HandlerFunc

	// User endpoints.
	GetMyProfileHandler    gin.HandlerFunc
	UpdateMyProfileHandler gin.HandlerFunc
	DeleteMyAccountHandler gin.HandlerFunc
	GetAllUsersHandler     gin.HandlerFunc
}
