// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	"github.com/Project-Ma-y/Ma-y-sub000/cron"
	"github.com/Project-Ma-y/Ma-y-sub000/database"
	bookingRepoPkg "github.com/Project-Ma-y/Ma-y-sub000/database/repository/booking"
	sessionRepoPkg "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	statsRepoPkg "github.com/Project-Ma-y/Ma-y-sub000/database/repository/stats"
	userRepoPkg "github.com/Project-Ma-y/Ma-y-sub000/database/repository/user"
	"github.com/Project-Ma-y/Ma-y-sub000/handlers"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"
	"github.com/Project-Ma-y/Ma-y-sub000/routes"
	"github.com/Project-Ma-y/Ma-y-sub000/services/booking"
	"github.com/Project-Ma-y/Ma-y-sub000/services/session"
	"github.com/Project-Ma-y/Ma-y-sub000/services/stats"
	"github.com/Project-Ma-y/Ma-y-sub000/services/user"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitStatsCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessionRepos := sessionRepoPkg.NewRepoSet()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	snapshotRepo := statsRepoPkg.NewMongoSnapshotRepo()

	adminUIDs := config.AdminUIDSet()

	// services.
	sessionService := &session.DefaultSessionService{
		Repos: sessionRepos,
	}
	statsService := &stats.DefaultStatsService{
		Repo:      sessionRepos.Prod,
		Snapshots: snapshotRepo,
		Cache:     utils.GetStatsCacheClient(),
		CacheTTL:  time.Duration(config.AppConfig.StatsCacheTTLSeconds) * time.Second,
	}
	bookingService := &booking.DefaultBookingService{
		Repo: bookingRepo,
	}
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		Identity:  utils.AuthClient,
		AdminUIDs: adminUIDs,
	}

	// handlers.
	sessionHandler := handlers.NewSessionHandler(sessionService)
	statsHandler := handlers.NewStatsHandler(statsService)
	bookingHandler := handlers.NewBookingHandler(bookingService, sessionService, userService.IsAdmin)
	userHandler := handlers.NewUserHandler(userService, sessionService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		SessionRepos: sessionRepos,
		SessionMW:    middleware.LoadSession(sessionRepos, sessionService),
		Verifier:     utils.AuthClient,
		AdminUIDs:    adminUIDs,

		// Session endpoints.
		MainLandingHandler:       sessionHandler.MainLandingHandler,
		BookingPageVisitHandler:  sessionHandler.BookingPageVisitHandler,
		EchoSessionCookieHandler: sessionHandler.EchoSessionCookieHandler,

		// Auth endpoints.
		SignupEmailHandler: userHandler.SignupEmailHandler,
		CheckAdminHandler:  userHandler.CheckAdminHandler,

		// Stats endpoints.
		SignupConversionHandler:      statsHandler.SignupConversionHandler,
		ApplicationReachHandler:      statsHandler.ApplicationReachHandler,
		ApplicationConversionHandler: statsHandler.ApplicationConversionHandler,
		FunnelSummaryHandler:         statsHandler.FunnelSummaryHandler,

		// Booking endpoints.
		CreateBookingHandler:  bookingHandler.CreateBookingHandler,
		GetAllBookingsHandler: bookingHandler.GetAllBookingsHandler,
		GetMyBookingsHandler:  bookingHandler.GetMyBookingsHandler,
		GetBookingByIDHandler: bookingHandler.GetBookingByIDHandler,
		UpdateBookingHandler:  bookingHandler.UpdateBookingHandler,
		DeleteBookingHandler:  bookingHandler.DeleteBookingHandler,

		// User endpoints.
		GetMyProfileHandler:    userHandler.GetMyProfileHandler,
		UpdateMyProfileHandler: userHandler.UpdateMyProfileHandler,
		DeleteMyAccountHandler: userHandler.DeleteMyAccountHandler,
		GetAllUsersHandler:     userHandler.GetAllUsersHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background funnel snapshot worker.
	cron.InitSnapshotWorker(statsService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetAuthCacheClient(), utils.GetStatsCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
