package fuelcard

import (
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FuelType is a read-only reference: the unit price is resolved at
// transaction create/update time and never retroactively applied to
// already-committed transactions.
type FuelType struct {
	shared.BaseEntity
	Name          string          `gorm:"size:128;not null"`
	UnitOfMeasure string          `gorm:"size:32;not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (FuelType) TableName() string {
	return "fuel_types"
}

// HasPrice reports whether the fuel type has a usable unit price.
func (f *FuelType) HasPrice() bool {
	return f.Price.IsPositive()
}
