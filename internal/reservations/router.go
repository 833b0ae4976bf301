package reservations

import (
	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes configures the booking routes.
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("/check", controller.CheckAvailability) // POST /api/v1/bookings/check
		bookings.POST("", controller.CommitReservation)       // POST /api/v1/bookings

		bookings.GET("/room/:roomId", controller.ListByRoom) // GET /api/v1/bookings/room/:roomId
		bookings.GET("/my/:wallet", controller.ListByHolder) // GET /api/v1/bookings/my/:wallet
		bookings.GET("/:id", controller.GetReservation)      // GET /api/v1/bookings/:id

		bookings.PATCH("/:id/cancel", controller.Cancel)     // PATCH /api/v1/bookings/:id/cancel
		bookings.PATCH("/:id/checkin", controller.CheckIn)   // PATCH /api/v1/bookings/:id/checkin
		bookings.PATCH("/:id/checkout", controller.CheckOut) // PATCH /api/v1/bookings/:id/checkout
	}

	admin := rg.Group("/admin/bookings")
	{
		admin.GET("", controller.ListAll) // GET /api/v1/admin/bookings
	}
}
