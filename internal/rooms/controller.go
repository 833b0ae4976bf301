package rooms

import (
	"errors"
	"net/http"
	"strconv"

	"staychain/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListRooms handles GET /api/v1/rooms
func (c *Controller) ListRooms(ctx *gin.Context) {
	result, err := c.service.ListRooms(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list rooms", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rooms retrieved successfully", result, nil)
}

// GetRoom handles GET /api/v1/rooms/:id
func (c *Controller) GetRoom(ctx *gin.Context) {
	roomID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid room id", nil, nil)
		return
	}

	room, err := c.service.GetRoom(ctx.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Room not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get room", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Room retrieved successfully", room.ToResponse(), nil)
}

// CreateRoom handles POST /api/v1/admin/rooms
func (c *Controller) CreateRoom(ctx *gin.Context) {
	var req CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := c.service.CreateRoom(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRoomMetadata) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create room", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Room created successfully", room.ToResponse(), nil)
}

// ListRoomsAdmin handles GET /api/v1/admin/rooms
func (c *Controller) ListRoomsAdmin(ctx *gin.Context) {
	result, err := c.service.ListRoomsAdmin(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list rooms", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rooms retrieved successfully", result, nil)
}
