package guests

import (
	"github.com/gin-gonic/gin"
)

// SetupGuestRoutes configures guest profile routes.
func SetupGuestRoutes(rg *gin.RouterGroup, controller *Controller) {
	users := rg.Group("/users")
	{
		users.POST("", controller.UpsertProfile)            // POST /api/v1/users
		users.GET("/:walletAddress", controller.GetProfile) // GET /api/v1/users/:walletAddress
	}
}
