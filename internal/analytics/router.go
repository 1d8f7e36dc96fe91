package analytics

import (
	"busly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller) {
	// Admin routes - operational dashboard
	adminAnalytics := router.Group("/admin/analytics")
	adminAnalytics.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminAnalytics.GET("/dashboard", controller.GetDashboard) // GET /api/v1/admin/analytics/dashboard
	}
}
