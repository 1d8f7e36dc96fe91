package buses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"busly/internal/seatmap"
	"busly/internal/shared/utils/response"
)

type Controller interface {
	CreateBus(c *gin.Context)
	GetBus(c *gin.Context)
	UpdateBus(c *gin.Context)
	DeleteBus(c *gin.Context)
	ListBuses(c *gin.Context)
	SearchBuses(c *gin.Context)
}

type controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) Controller {
	return &controller{
		service:   service,
		validator: validator.New(),
	}
}

func (ctrl *controller) CreateBus(c *gin.Context) {
	var req CreateBusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	// Get admin user ID from context (set by auth middleware)
	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	bus, err := ctrl.service.CreateBus(c.Request.Context(), adminUUID, req)
	if err != nil {
		switch {
		case errors.Is(err, seatmap.ErrInvalidBusMetadata):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrDuplicateBusNumber):
			response.RespondJSON(c, "error", http.StatusConflict, "Bus number already registered", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create bus", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Bus created successfully", bus, nil)
}

func (ctrl *controller) GetBus(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	bus, err := ctrl.service.GetBusByID(c.Request.Context(), busID)
	if err != nil {
		if errors.Is(err, ErrBusNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Bus not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch bus", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus retrieved successfully", bus, nil)
}

func (ctrl *controller) UpdateBus(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	var req UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	bus, err := ctrl.service.UpdateBus(c.Request.Context(), busID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBusNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Bus not found", nil, nil)
		case errors.Is(err, seatmap.ErrInvalidBusMetadata):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update bus", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus updated successfully", bus, nil)
}

func (ctrl *controller) DeleteBus(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteBus(c.Request.Context(), busID); err != nil {
		if errors.Is(err, ErrBusNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Bus not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete bus", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus deleted successfully", nil, nil)
}

func (ctrl *controller) ListBuses(c *gin.Context) {
	var query BusListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	page, err := ctrl.service.ListBuses(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list buses", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Buses retrieved successfully", page, nil)
}

func (ctrl *controller) SearchBuses(c *gin.Context) {
	var query BusSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "source and destination are required", nil, err.Error())
		return
	}

	fleet, err := ctrl.service.SearchBuses(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to search buses", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Buses retrieved successfully", fleet, nil)
}
