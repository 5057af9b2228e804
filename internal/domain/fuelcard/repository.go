package fuelcard

import (
	"context"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CardFilter narrows card list queries.
type CardFilter struct {
	shared.Filter
	CompanyID *uuid.UUID
	Active    *bool
}

// CardRepository persists fuel cards. FindByIDForUpdate must acquire an
// exclusive row lock (SELECT ... FOR UPDATE) valid for the lifetime of the
// enclosing transaction; it is the mutual-exclusion primitive for all ledger
// mutations.
type CardRepository interface {
	Save(ctx context.Context, card *FuelCard) error
	FindByID(ctx context.Context, id uuid.UUID) (*FuelCard, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*FuelCard, error)
	FindByNumber(ctx context.Context, number string) (*FuelCard, error)
	FindAll(ctx context.Context, filter CardFilter) ([]*FuelCard, error)
	Count(ctx context.Context, filter CardFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FuelTypeRepository reads the fuel-type reference table.
type FuelTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FuelType, error)
	FindAll(ctx context.Context) ([]*FuelType, error)
}

// DriverRepository reads the driver reference table.
type DriverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Driver, error)
}

// CompanyRepository reads the company reference table.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
}
