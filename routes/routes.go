package routes

import (
	"net/http"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	"github.com/Project-Ma-y/Ma-y-sub000/handlers"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.NoCache())
		api.Use(hb.SessionMW)

		// Landing endpoint manages its own session; it is on the
		// LoadSession skip-list. Registered for GET and POST alike.
		api.GET("/main", hb.MainLandingHandler)
		api.POST("/main", hb.MainLandingHandler)

		api.GET("/cookie", hb.EchoSessionCookieHandler)

		api.GET("/booking", middleware.FirebaseAuthMiddleware(hb.Verifier), hb.BookingPageVisitHandler)
	}
}

// RegisterAuthRoutes registers registration and admin-check endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signupEmail", middleware.NoCache(), hb.SessionMW, hb.SignupEmailHandler)
		api.GET("/checkAdmin", middleware.FirebaseAuthMiddleware(hb.Verifier), hb.CheckAdminHandler)
	}
}

// RegisterStatsRoutes registers the funnel statistics endpoints, gated by
// the admin allow-list.
func RegisterStatsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stats")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.Verifier))
		api.Use(middleware.AdminOnly(hb.AdminUIDs))
		api.GET("/signup-conversion", hb.SignupConversionHandler)
		api.GET("/application-reach", hb.ApplicationReachHandler)
		api.GET("/application-conversion", hb.ApplicationConversionHandler)
		api.GET("/funnel", hb.FunnelSummaryHandler)
	}
}

// RegisterBookingRoutes registers booking CRUD endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		auth := middleware.FirebaseAuthMiddleware(hb.Verifier)

		// Creation also records the apply-completion funnel event, so it
		// carries the session middleware.
		api.POST("", hb.SessionMW, auth, hb.CreateBookingHandler)

		api.GET("", auth, middleware.AdminOnly(hb.AdminUIDs), hb.GetAllBookingsHandler)
		api.GET("/my", auth, hb.GetMyBookingsHandler)
		api.GET("/:id", auth, hb.GetBookingByIDHandler)
		api.PUT("/:id", auth, hb.UpdateBookingHandler)
		api.DELETE("/:id", auth, hb.DeleteBookingHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		auth := middleware.FirebaseAuthMiddleware(hb.Verifier)

		api.GET("/me", auth, hb.GetMyProfileHandler)
		api.PUT("/me", auth, hb.UpdateMyProfileHandler)
		api.DELETE("/me", auth, hb.DeleteMyAccountHandler)

		api.GET("", auth, middleware.AdminOnly(hb.AdminUIDs), hb.GetAllUsersHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// The session cookie is SameSite=None, so CORS must be credentialed
	// with enumerated origins.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOriginList(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterStatsRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r)
}
