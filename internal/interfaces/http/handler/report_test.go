package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fleet/backend/internal/application/report"
	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportHandlerFixture struct {
	handler        *ReportHandler
	cardRepo       *MockCardRepository
	driverRepo     *MockDriverRepository
	companyRepo    *MockCompanyRepository
	fuelTypeRepo   *MockFuelTypeRepository
	chargeRepo     *MockChargeRepository
	withdrawalRepo *MockWithdrawalRepository
}

func newReportHandlerFixture() *reportHandlerFixture {
	cardRepo := new(MockCardRepository)
	driverRepo := new(MockDriverRepository)
	companyRepo := new(MockCompanyRepository)
	fuelTypeRepo := new(MockFuelTypeRepository)
	chargeRepo := new(MockChargeRepository)
	withdrawalRepo := new(MockWithdrawalRepository)
	service := report.NewConsumptionService(
		cardRepo, driverRepo, companyRepo, fuelTypeRepo, chargeRepo, withdrawalRepo,
	)
	return &reportHandlerFixture{
		handler:        NewReportHandler(service),
		cardRepo:       cardRepo,
		driverRepo:     driverRepo,
		companyRepo:    companyRepo,
		fuelTypeRepo:   fuelTypeRepo,
		chargeRepo:     chargeRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

func TestReportHandler_MonthlyConsumption(t *testing.T) {
	f := newReportHandlerFixture()
	card := newTestCard(t, "500.00", "0")

	f.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
	f.driverRepo.On("FindByID", mock.Anything, card.DriverID).Return(&fuelcard.Driver{
		BaseEntity: shared.BaseEntity{ID: card.DriverID},
		Name:       "Ana",
		Surname:    "García",
		CompanyID:  card.CompanyID,
	}, nil)
	f.companyRepo.On("FindByID", mock.Anything, card.CompanyID).Return(&fuelcard.Company{
		BaseEntity: shared.BaseEntity{ID: card.CompanyID},
		Name:       "Transportes Sur",
	}, nil)
	f.fuelTypeRepo.On("FindByID", mock.Anything, card.FuelTypeID).
		Return(newTestFuelType(card.FuelTypeID, "10.00"), nil)

	charge := transaction.NewCharge(
		card.ID,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "08:15",
		decimal.NewFromInt(20), decimal.NewFromInt(200),
		fuelcard.Snapshot{MonetaryBalance: decimal.NewFromInt(500)},
		fuelcard.Snapshot{MonetaryBalance: decimal.NewFromInt(300), FuelQuantity: decimal.NewFromInt(20)},
		nil, "", "", "", uuid.New(), false,
	)

	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)
	nextStart := monthStart.AddDate(0, 1, 0)

	f.chargeRepo.On("FindLastInPeriod", mock.Anything, card.ID, prevStart, monthStart).
		Return(nil, shared.ErrNotFound)
	f.withdrawalRepo.On("FindLastInPeriod", mock.Anything, card.ID, prevStart, monthStart).
		Return(nil, shared.ErrNotFound)
	f.chargeRepo.On("FindLastInPeriod", mock.Anything, card.ID, monthStart, nextStart).
		Return(charge, nil)
	f.withdrawalRepo.On("FindLastInPeriod", mock.Anything, card.ID, monthStart, nextStart).
		Return(nil, shared.ErrNotFound)
	f.chargeRepo.On("FindByCardAndPeriod", mock.Anything, card.ID, monthStart, nextStart).
		Return([]*transaction.Charge{charge}, nil)
	f.withdrawalRepo.On("FindByCardAndPeriod", mock.Anything, card.ID, monthStart, nextStart).
		Return([]*transaction.Withdrawal{}, nil)

	c, w := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/cards/x/consumption?year=2026&month=3", nil)
	c.Params = gin.Params{{Key: "id", Value: card.ID.String()}}

	f.handler.MonthlyConsumption(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2026), data["year"])
	assert.Equal(t, float64(3), data["month"])

	cardInfo := data["card"].(map[string]interface{})
	assert.Equal(t, "Ana García", cardInfo["driver_name"])
	assert.Equal(t, "Transportes Sur", cardInfo["company_name"])

	movements := data["movements"].([]interface{})
	require.Len(t, movements, 1)

	closing := data["closing_balance"].(map[string]interface{})
	assert.NotNil(t, closing["monetary"])
}

func TestReportHandler_MonthlyConsumption_InvalidMonth(t *testing.T) {
	f := newReportHandlerFixture()

	c, w := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/cards/x/consumption?year=2026&month=13", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	f.handler.MonthlyConsumption(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_MonthlyConsumption_CardNotFound(t *testing.T) {
	f := newReportHandlerFixture()
	id := uuid.New()

	f.cardRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	c, w := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/cards/x/consumption?year=2026&month=3", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	f.handler.MonthlyConsumption(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
