package handler

import (
	"time"

	apptransaction "github.com/fleet/backend/internal/application/transaction"
	"github.com/fleet/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeHandler handles fuel charge endpoints
type ChargeHandler struct {
	BaseHandler
	chargeService *apptransaction.ChargeService
}

// NewChargeHandler creates a new ChargeHandler
func NewChargeHandler(chargeService *apptransaction.ChargeService) *ChargeHandler {
	return &ChargeHandler{chargeService: chargeService}
}

// CreateTransactionRequest represents the request to register a charge or
// withdrawal. Amount is never accepted from the caller: it is derived from
// quantity and the card's fuel price.
type CreateTransactionRequest struct {
	CardID     string  `json:"card_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Time       string  `json:"time" binding:"required,timeofday"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	Odometer   *int64  `json:"odometer" binding:"omitempty,min=0"`
	Place      string  `json:"place" binding:"omitempty,max=200"`
	Reason     string  `json:"reason" binding:"omitempty,max=500"`
	ChipNumber string  `json:"chip_number" binding:"omitempty,max=50"`
}

// UpdateTransactionRequest represents the request to edit a pending or
// processed transaction
type UpdateTransactionRequest struct {
	CardID     *string `json:"card_id" binding:"omitempty,uuid"`
	Date       string  `json:"date" binding:"required"`
	Time       string  `json:"time" binding:"required,timeofday"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	Odometer   *int64  `json:"odometer" binding:"omitempty,min=0"`
	Place      string  `json:"place" binding:"omitempty,max=200"`
	Reason     string  `json:"reason" binding:"omitempty,max=500"`
	ChipNumber string  `json:"chip_number" binding:"omitempty,max=50"`
}

// ValidateTransactionRequest represents the supervisor review decision
type ValidateTransactionRequest struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason" binding:"omitempty,max=500"`
}

// DeleteTransactionRequest carries the mandatory deletion reason
type DeleteTransactionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func (r CreateTransactionRequest) toInput(registeredBy uuid.UUID, autoReviewed bool) (apptransaction.CreateTransactionInput, error) {
	date, err := time.Parse(dateOnly, r.Date)
	if err != nil {
		return apptransaction.CreateTransactionInput{}, err
	}
	return apptransaction.CreateTransactionInput{
		CardID:         uuid.MustParse(r.CardID),
		Date:           date,
		Time:           r.Time,
		Quantity:       decimal.NewFromFloat(r.Quantity),
		Odometer:       r.Odometer,
		Place:          r.Place,
		Reason:         r.Reason,
		ChipNumber:     r.ChipNumber,
		RegisteredByID: registeredBy,
		AutoReviewed:   autoReviewed,
	}, nil
}

func (r UpdateTransactionRequest) toInput() (apptransaction.UpdateTransactionInput, error) {
	date, err := time.Parse(dateOnly, r.Date)
	if err != nil {
		return apptransaction.UpdateTransactionInput{}, err
	}
	input := apptransaction.UpdateTransactionInput{
		Date:       date,
		Time:       r.Time,
		Quantity:   decimal.NewFromFloat(r.Quantity),
		Odometer:   r.Odometer,
		Place:      r.Place,
		Reason:     r.Reason,
		ChipNumber: r.ChipNumber,
	}
	if r.CardID != nil {
		id := uuid.MustParse(*r.CardID)
		input.CardID = &id
	}
	return input, nil
}

// Create handles POST /charges
func (h *ChargeHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user identity")
		return
	}

	// Supervisors review their own registrations implicitly.
	input, err := req.toInput(userID, middleware.IsSupervisor(c))
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	charge, err := h.chargeService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, charge)
}

// Update handles PUT /charges/:id
func (h *ChargeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	charge, err := h.chargeService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, charge)
}

// Validate handles POST /charges/:id/validate
func (h *ChargeHandler) Validate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID")
		return
	}

	if !middleware.IsSupervisor(c) {
		h.Forbidden(c, "Only supervisors can validate transactions")
		return
	}

	var req ValidateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user identity")
		return
	}

	charge, err := h.chargeService.Validate(c.Request.Context(), id, req.Approve, actorID, req.RejectionReason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, charge)
}

// Delete handles DELETE /charges/:id
func (h *ChargeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID")
		return
	}

	var req DeleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A deletion reason is required")
		return
	}

	if err := h.chargeService.Delete(c.Request.Context(), id, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetByID handles GET /charges/:id
func (h *ChargeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid charge ID")
		return
	}

	charge, err := h.chargeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, charge)
}

// List handles GET /charges
func (h *ChargeHandler) List(c *gin.Context) {
	var filter apptransaction.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.chargeService.List(c.Request.Context(), filter)
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
