package guests

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"staychain/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// UpsertProfile handles POST /api/v1/users
func (c *Controller) UpsertProfile(ctx *gin.Context) {
	var req UpsertProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	profile, err := c.service.UpsertProfile(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidAddress) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to save profile", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile saved successfully", profile, nil)
}

// GetProfile handles GET /api/v1/users/:walletAddress
func (c *Controller) GetProfile(ctx *gin.Context) {
	profile, err := c.service.GetProfile(ctx.Request.Context(), ctx.Param("walletAddress"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAddress):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrProfileNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Profile not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get profile", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile retrieved successfully", profile, nil)
}
