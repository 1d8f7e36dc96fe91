// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"busly/internal/analytics"
	"busly/internal/auth"
	"busly/internal/bookings"
	"busly/internal/buses"
	"busly/internal/notifications"
	"busly/internal/seats"
	"busly/internal/shared/config"
	"busly/internal/shared/database"
	"busly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config          *config.Config
	db              *database.DB
	cacheService    cache.Service
	notificationSvc notifications.NotificationService

	// Shared services for cross-package injection
	authRepo       auth.Repository
	busService     buses.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, notificationSvc notifications.NotificationService) *Router {
	return &Router{
		config:          cfg,
		db:              db,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Buses before bookings and seats: both depend on the bus service
		r.setupBusRoutes(api)
		r.setupBookingRoutes(api)
		r.setupSeatRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "busly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	r.authRepo = auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(r.authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupBusRoutes configures fleet management routes
func (r *Router) setupBusRoutes(rg *gin.RouterGroup) {
	busRepo := buses.NewRepository(r.db.GetPostgreSQL())
	busService := buses.NewService(busRepo)
	if r.cacheService != nil {
		busService.SetCacheService(r.cacheService)
	}
	busController := buses.NewController(busService)

	r.busService = busService
	buses.SetupBusRoutes(rg, busController)
}

// setupBookingRoutes configures booking and cancellation routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.busService)
	if r.cacheService != nil {
		bookingService.SetCacheService(r.cacheService)
	}

	// Booking lifecycle emails ride on the Kafka pipeline when enabled
	if r.notificationSvc != nil {
		userDirectory := auth.NewUserDirectoryAdapter(r.authRepo)
		publisher := notifications.NewBookingPublisherAdapter(
			r.notificationSvc.Producer(), userDirectory, r.busService)
		bookingService.SetNotificationPublisher(publisher)
	}

	bookingController := bookings.NewController(bookingService)

	r.bookingService = bookingService
	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupSeatRoutes configures the live seat map route
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatService := seats.NewService(r.busService, r.bookingService)
	if r.cacheService != nil {
		seatService.SetCacheService(r.cacheService)
	}
	seatController := seats.NewController(seatService)

	seats.SetupSeatRoutes(rg, seatController)
}

// setupAnalyticsRoutes configures the admin dashboard routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
