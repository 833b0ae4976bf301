package rooms

import (
	"github.com/gin-gonic/gin"
)

// SetupRoomRoutes configures catalog routes.
func SetupRoomRoutes(rg *gin.RouterGroup, controller *Controller) {
	roomGroup := rg.Group("/rooms")
	{
		roomGroup.GET("", controller.ListRooms)   // GET /api/v1/rooms
		roomGroup.GET("/:id", controller.GetRoom) // GET /api/v1/rooms/:id
	}

	admin := rg.Group("/admin/rooms")
	{
		admin.GET("", controller.ListRoomsAdmin) // GET /api/v1/admin/rooms
		admin.POST("", controller.CreateRoom)    // POST /api/v1/admin/rooms
	}
}
