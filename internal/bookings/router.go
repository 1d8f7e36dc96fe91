package bookings

import (
	"busly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	bookings := router.Group("/bookings")
	{
		// Public occupancy feed used by seat map clients
		bookings.GET("/bus/:busId/booked-seats", controller.GetBookedSeats) // GET /api/v1/bookings/bus/:busId/booked-seats?date=

		protected := bookings.Group("")
		protected.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
		{
			protected.POST("", controller.CreateBooking)       // POST /api/v1/bookings
			protected.GET("/me", controller.GetMyBookings)     // GET /api/v1/bookings/me
			protected.GET("/:id", controller.GetBooking)       // GET /api/v1/bookings/:id
			protected.DELETE("/:id", controller.CancelBooking) // DELETE /api/v1/bookings/:id - cancel with refund
		}
	}

	// Admin routes - full booking listing
	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.ListBookings) // GET /api/v1/admin/bookings?status=&bus_id=&date=
	}
}
