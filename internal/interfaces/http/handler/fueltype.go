package handler

import (
	appfuelcard "github.com/fleet/backend/internal/application/fuelcard"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FuelTypeHandler handles fuel type endpoints
type FuelTypeHandler struct {
	BaseHandler
	fuelTypeService *appfuelcard.FuelTypeService
}

// NewFuelTypeHandler creates a new FuelTypeHandler
func NewFuelTypeHandler(fuelTypeService *appfuelcard.FuelTypeService) *FuelTypeHandler {
	return &FuelTypeHandler{fuelTypeService: fuelTypeService}
}

// List handles GET /fuel-types
func (h *FuelTypeHandler) List(c *gin.Context) {
	fuelTypes, err := h.fuelTypeService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fuelTypes)
}

// GetByID handles GET /fuel-types/:id
func (h *FuelTypeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fuel type ID")
		return
	}

	fuelType, err := h.fuelTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fuelType)
}
