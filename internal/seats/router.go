package seats

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(router *gin.RouterGroup, controller Controller) {
	// Public route - seat maps are browsable before login
	router.GET("/buses/:id/seats", controller.GetSeatMap) // GET /api/v1/buses/:id/seats?date=
}
