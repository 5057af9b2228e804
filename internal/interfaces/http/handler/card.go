package handler

import (
	"time"

	appfuelcard "github.com/fleet/backend/internal/application/fuelcard"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateOnly is the wire format for calendar dates
const dateOnly = "2006-01-02"

// CardHandler handles fuel card endpoints
type CardHandler struct {
	BaseHandler
	cardService *appfuelcard.CardService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService *appfuelcard.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CreateCardRequest represents the request to create a fuel card
type CreateCardRequest struct {
	Number                  string   `json:"number" binding:"required,max=50"`
	ExpirationDate          string   `json:"expiration_date" binding:"required"`
	MonetaryBalance         float64  `json:"monetary_balance" binding:"omitempty,min=0"`
	FuelQuantity            float64  `json:"fuel_quantity" binding:"omitempty,min=0"`
	MaxBalance              *float64 `json:"max_balance" binding:"omitempty,gt=0"`
	MonthlyConsumptionLimit *float64 `json:"monthly_consumption_limit" binding:"omitempty,gt=0"`
	DailyConsumptionLimit   *float64 `json:"daily_consumption_limit" binding:"omitempty,gt=0"`
	DriverID                string   `json:"driver_id" binding:"required,uuid"`
	CompanyID               string   `json:"company_id" binding:"required,uuid"`
	FuelTypeID              string   `json:"fuel_type_id" binding:"required,uuid"`
}

// UpdateCardRequest represents the request to update a fuel card
type UpdateCardRequest struct {
	ExpirationDate          string   `json:"expiration_date" binding:"required"`
	Active                  bool     `json:"active"`
	MaxBalance              *float64 `json:"max_balance" binding:"omitempty,gt=0"`
	MonthlyConsumptionLimit *float64 `json:"monthly_consumption_limit" binding:"omitempty,gt=0"`
	DailyConsumptionLimit   *float64 `json:"daily_consumption_limit" binding:"omitempty,gt=0"`
	DriverID                string   `json:"driver_id" binding:"required,uuid"`
	FuelTypeID              string   `json:"fuel_type_id" binding:"required,uuid"`
}

func optionalDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}

// Create handles POST /cards
func (h *CardHandler) Create(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	expiration, err := time.Parse(dateOnly, req.ExpirationDate)
	if err != nil {
		h.BadRequest(c, "Invalid expiration_date, expected YYYY-MM-DD")
		return
	}

	input := appfuelcard.CreateCardInput{
		Number:                  req.Number,
		ExpirationDate:          expiration,
		MonetaryBalance:         decimal.NewFromFloat(req.MonetaryBalance),
		FuelQuantity:            decimal.NewFromFloat(req.FuelQuantity),
		MaxBalance:              optionalDecimal(req.MaxBalance),
		MonthlyConsumptionLimit: optionalDecimal(req.MonthlyConsumptionLimit),
		DailyConsumptionLimit:   optionalDecimal(req.DailyConsumptionLimit),
		DriverID:                uuid.MustParse(req.DriverID),
		CompanyID:               uuid.MustParse(req.CompanyID),
		FuelTypeID:              uuid.MustParse(req.FuelTypeID),
	}

	card, err := h.cardService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, card)
}

// Update handles PUT /cards/:id
func (h *CardHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	expiration, err := time.Parse(dateOnly, req.ExpirationDate)
	if err != nil {
		h.BadRequest(c, "Invalid expiration_date, expected YYYY-MM-DD")
		return
	}

	input := appfuelcard.UpdateCardInput{
		ExpirationDate:          expiration,
		Active:                  req.Active,
		MaxBalance:              optionalDecimal(req.MaxBalance),
		MonthlyConsumptionLimit: optionalDecimal(req.MonthlyConsumptionLimit),
		DailyConsumptionLimit:   optionalDecimal(req.DailyConsumptionLimit),
		DriverID:                uuid.MustParse(req.DriverID),
		FuelTypeID:              uuid.MustParse(req.FuelTypeID),
	}

	card, err := h.cardService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}

// Delete handles DELETE /cards/:id
func (h *CardHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	if err := h.cardService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetByID handles GET /cards/:id
func (h *CardHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	card, err := h.cardService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}

// List handles GET /cards
func (h *CardHandler) List(c *gin.Context) {
	var filter appfuelcard.CardListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.cardService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := 1
	if result.Limit > 0 {
		page = result.Offset/result.Limit + 1
	}
	h.SuccessWithMeta(c, result.Items, result.TotalCount, page, result.Limit)
}

// ListNames handles GET /cards/names
func (h *CardHandler) ListNames(c *gin.Context) {
	var companyID *uuid.UUID
	if raw := c.Query("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid company_id")
			return
		}
		companyID = &id
	}

	names, err := h.cardService.ListNames(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, names)
}

// GetFuelPrice handles GET /cards/:id/fuel-price
func (h *CardHandler) GetFuelPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	price, err := h.cardService.GetFuelPrice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, price)
}

// ResetMonthlyConsumption handles POST /cards/:id/reset-monthly-consumption
func (h *CardHandler) ResetMonthlyConsumption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	card, err := h.cardService.ResetMonthlyConsumption(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}
