package seats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busly/internal/buses"
	"busly/internal/seatmap"
	"busly/internal/shared/utils/response"
)

type Controller interface {
	GetSeatMap(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	journeyDate := c.Query("date")
	if journeyDate == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "date query parameter is required", nil, nil)
		return
	}

	view, err := ctrl.service.GetSeatMap(c.Request.Context(), busID, journeyDate)
	if err != nil {
		switch {
		case errors.Is(err, buses.ErrBusNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Bus not found", nil, nil)
		case errors.Is(err, seatmap.ErrInvalidSelection):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, seatmap.ErrInvalidBusMetadata):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build seat map", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", view, nil)
}
