package reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staychain/internal/chain"
	"staychain/internal/rooms"
	"staychain/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CheckAvailability handles POST /api/v1/bookings/check
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	var req CheckAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.CheckAvailability(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err, "Failed to check availability")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability checked successfully", result, nil)
}

// CommitReservation handles POST /api/v1/bookings
func (c *Controller) CommitReservation(ctx *gin.Context) {
	var req CommitReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := c.service.CommitReservation(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err, "Failed to record reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation recorded successfully", reservation.ToResponse(), nil)
}

// GetReservation handles GET /api/v1/bookings/:id
func (c *Controller) GetReservation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation id", nil, nil)
		return
	}

	reservation, err := c.service.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to get reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", reservation.ToResponse(), nil)
}

// ListByRoom handles GET /api/v1/bookings/room/:roomId
func (c *Controller) ListByRoom(ctx *gin.Context) {
	roomID, err := strconv.Atoi(ctx.Param("roomId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid room id", nil, nil)
		return
	}

	result, err := c.service.ListByRoom(ctx.Request.Context(), roomID)
	if err != nil {
		c.respondError(ctx, err, "Failed to list reservations")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", result, nil)
}

// ListByHolder handles GET /api/v1/bookings/my/:wallet
func (c *Controller) ListByHolder(ctx *gin.Context) {
	result, err := c.service.ListByHolder(ctx.Request.Context(), ctx.Param("wallet"))
	if err != nil {
		c.respondError(ctx, err, "Failed to list reservations")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", result, nil)
}

// ListAll handles GET /api/v1/admin/bookings
func (c *Controller) ListAll(ctx *gin.Context) {
	result, err := c.service.ListAll(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err, "Failed to list reservations")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", result, nil)
}

// Cancel handles PATCH /api/v1/bookings/:id/cancel
func (c *Controller) Cancel(ctx *gin.Context) {
	c.transition(ctx, StatusCancelled, "Reservation cancelled successfully")
}

// CheckIn handles PATCH /api/v1/bookings/:id/checkin
func (c *Controller) CheckIn(ctx *gin.Context) {
	c.transition(ctx, StatusCheckedIn, "Reservation checked in successfully")
}

// CheckOut handles PATCH /api/v1/bookings/:id/checkout
func (c *Controller) CheckOut(ctx *gin.Context) {
	c.transition(ctx, StatusCompleted, "Reservation completed successfully")
}

func (c *Controller) transition(ctx *gin.Context, target Status, successMsg string) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation id", nil, nil)
		return
	}

	reservation, err := c.service.TransitionStatus(ctx.Request.Context(), id, target)
	if err != nil {
		c.respondError(ctx, err, "Failed to update reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, successMsg, reservation.ToResponse(), nil)
}

// respondError maps domain errors onto HTTP statuses. Verification
// failures are client errors: the submitted transaction does not prove
// the claimed booking.
func (c *Controller) respondError(ctx *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrMinimumStay),
		errors.Is(err, ErrInvalidAddress),
		errors.Is(err, ErrInvalidTxHash):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case chain.IsVerificationError(err):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Transaction verification failed", nil, err.Error())
	case errors.Is(err, rooms.ErrRoomNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Room not found", nil, nil)
	case errors.Is(err, ErrReservationNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Reservation not found", nil, nil)
	case errors.Is(err, ErrRoomNotAvailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Room not available for the requested dates", nil, nil)
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallbackMsg, nil, err.Error())
	}
}
