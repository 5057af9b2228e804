package handler

import (
	"strconv"
	"time"

	"github.com/fleet/backend/internal/application/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles consumption report endpoints
type ReportHandler struct {
	BaseHandler
	consumptionService *report.ConsumptionService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(consumptionService *report.ConsumptionService) *ReportHandler {
	return &ReportHandler{consumptionService: consumptionService}
}

// MonthlyConsumption handles GET /reports/cards/:id/consumption
func (h *ReportHandler) MonthlyConsumption(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		h.BadRequest(c, "Invalid or missing year")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		h.BadRequest(c, "Invalid or missing month, expected 1-12")
		return
	}

	statement, err := h.consumptionService.MonthlyStatement(c.Request.Context(), cardID, year, time.Month(month))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}
