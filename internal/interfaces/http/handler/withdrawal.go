package handler

import (
	apptransaction "github.com/fleet/backend/internal/application/transaction"
	"github.com/fleet/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WithdrawalHandler handles fuel withdrawal endpoints. Withdrawals move fuel
// quantity only, so requests share the transaction shapes but are never
// auto-reviewed.
type WithdrawalHandler struct {
	BaseHandler
	withdrawalService *apptransaction.WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler
func NewWithdrawalHandler(withdrawalService *apptransaction.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// Create handles POST /withdrawals
func (h *WithdrawalHandler) Create(c *gin.Context) {
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

	input, err := req.toInput(userID, false)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	withdrawal, err := h.withdrawalService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, withdrawal)
}

// Update handles PUT /withdrawals/:id
func (h *WithdrawalHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid withdrawal ID")
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

	withdrawal, err := h.withdrawalService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, withdrawal)
}

// Validate handles POST /withdrawals/:id/validate
func (h *WithdrawalHandler) Validate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid withdrawal ID")
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

	withdrawal, err := h.withdrawalService.Validate(c.Request.Context(), id, req.Approve, actorID, req.RejectionReason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, withdrawal)
}

// Delete handles DELETE /withdrawals/:id
func (h *WithdrawalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid withdrawal ID")
		return
	}

	var req DeleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A deletion reason is required")
		return
	}

	if err := h.withdrawalService.Delete(c.Request.Context(), id, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetByID handles GET /withdrawals/:id
func (h *WithdrawalHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid withdrawal ID")
		return
	}

	withdrawal, err := h.withdrawalService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, withdrawal)
}

// List handles GET /withdrawals
func (h *WithdrawalHandler) List(c *gin.Context) {
	var filter apptransaction.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.withdrawalService.List(c.Request.Context(), filter)
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
