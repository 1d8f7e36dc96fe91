package buses

import (
	"busly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBusRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the fleet
	publicBuses := router.Group("/buses")
	{
		publicBuses.GET("", controller.ListBuses)         // GET /api/v1/buses - Browse fleet
		publicBuses.GET("/search", controller.SearchBuses) // GET /api/v1/buses/search?source=&destination=&date=
		publicBuses.GET("/:id", controller.GetBus)        // GET /api/v1/buses/:id - Bus details
	}

	// Admin routes - fleet management
	adminBuses := router.Group("/admin/buses")
	adminBuses.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBuses.POST("", controller.CreateBus)       // POST /api/v1/admin/buses
		adminBuses.PUT("/:id", controller.UpdateBus)    // PUT /api/v1/admin/buses/:id
		adminBuses.DELETE("/:id", controller.DeleteBus) // DELETE /api/v1/admin/buses/:id
	}
}
