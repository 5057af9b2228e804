package fuelcard

import (
	"time"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCardInput carries the data for a new fuel card.
type CreateCardInput struct {
	Number                  string
	ExpirationDate          time.Time
	MonetaryBalance         decimal.Decimal
	FuelQuantity            decimal.Decimal
	MaxBalance              *decimal.Decimal
	MonthlyConsumptionLimit *decimal.Decimal
	DailyConsumptionLimit   *decimal.Decimal
	DriverID                uuid.UUID
	CompanyID               uuid.UUID
	FuelTypeID              uuid.UUID
}

// UpdateCardInput carries the editable card fields. Balances are not editable
// here: they move only through charges and withdrawals.
type UpdateCardInput struct {
	ExpirationDate          time.Time
	Active                  bool
	MaxBalance              *decimal.Decimal
	MonthlyConsumptionLimit *decimal.Decimal
	DailyConsumptionLimit   *decimal.Decimal
	DriverID                uuid.UUID
	FuelTypeID              uuid.UUID
}

// CardListFilter represents list query options for fuel cards.
type CardListFilter struct {
	CompanyID *uuid.UUID `form:"company_id"`
	Active    *bool      `form:"active"`
	Limit     int        `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset    int        `form:"offset,default=0" binding:"omitempty,min=0"`
}

// CardResponse is the application-level view of a fuel card.
type CardResponse struct {
	ID                            uuid.UUID        `json:"id"`
	Number                        string           `json:"number"`
	ExpirationDate                time.Time        `json:"expiration_date"`
	Active                        bool             `json:"active"`
	MonetaryBalance               decimal.Decimal  `json:"monetary_balance"`
	FuelQuantity                  decimal.Decimal  `json:"fuel_quantity"`
	MaxBalance                    *decimal.Decimal `json:"max_balance,omitempty"`
	MonthlyConsumptionLimit       *decimal.Decimal `json:"monthly_consumption_limit,omitempty"`
	DailyConsumptionLimit         *decimal.Decimal `json:"daily_consumption_limit,omitempty"`
	MonthlyAccumulatedConsumption decimal.Decimal  `json:"monthly_accumulated_consumption"`
	DriverID                      uuid.UUID        `json:"driver_id"`
	CompanyID                     uuid.UUID        `json:"company_id"`
	FuelTypeID                    uuid.UUID        `json:"fuel_type_id"`
	CreatedAt                     time.Time        `json:"created_at"`
}

// CardName is the short listing used by selection dropdowns.
type CardName struct {
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
}

// FuelPriceResponse answers the price-by-card lookup.
type FuelPriceResponse struct {
	CardID        uuid.UUID       `json:"card_id"`
	FuelTypeID    uuid.UUID       `json:"fuel_type_id"`
	FuelTypeName  string          `json:"fuel_type_name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Price         decimal.Decimal `json:"price"`
}

// FuelTypeResponse is the application-level view of a fuel type.
type FuelTypeResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Price         decimal.Decimal `json:"price"`
}

func toCardResponse(c *fuelcard.FuelCard) *CardResponse {
	return &CardResponse{
		ID:                            c.ID,
		Number:                        c.Number,
		ExpirationDate:                c.ExpirationDate,
		Active:                        c.Active,
		MonetaryBalance:               c.MonetaryBalance,
		FuelQuantity:                  c.FuelQuantity,
		MaxBalance:                    c.MaxBalance,
		MonthlyConsumptionLimit:       c.MonthlyConsumptionLimit,
		DailyConsumptionLimit:         c.DailyConsumptionLimit,
		MonthlyAccumulatedConsumption: c.MonthlyAccumulatedConsumption,
		DriverID:                      c.DriverID,
		CompanyID:                     c.CompanyID,
		FuelTypeID:                    c.FuelTypeID,
		CreatedAt:                     c.CreatedAt,
	}
}

func toFuelTypeResponse(f *fuelcard.FuelType) *FuelTypeResponse {
	return &FuelTypeResponse{
		ID:            f.ID,
		Name:          f.Name,
		UnitOfMeasure: f.UnitOfMeasure,
		Price:         f.Price,
	}
}
