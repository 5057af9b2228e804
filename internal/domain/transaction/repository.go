package transaction

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows charge/withdrawal list queries.
type Filter struct {
	shared.Filter
	CardID   *uuid.UUID
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}

// ChargeRepository persists charges. Soft-deleted rows are excluded unless an
// operation states otherwise.
type ChargeRepository interface {
	Save(ctx context.Context, charge *Charge) error
	FindByID(ctx context.Context, id uuid.UUID) (*Charge, error)
	FindAll(ctx context.Context, filter Filter) ([]*Charge, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error)
	// FindByCardAndPeriod returns the card's charges dated within [from, to)
	// ordered by date then time ascending.
	FindByCardAndPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) ([]*Charge, error)
	// FindLastInPeriod returns the card's latest charge (by date, then time)
	// dated within [from, to), or shared.ErrNotFound.
	FindLastInPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) (*Charge, error)
	SoftDelete(ctx context.Context, charge *Charge) error
}

// WithdrawalRepository persists withdrawals.
type WithdrawalRepository interface {
	Save(ctx context.Context, withdrawal *Withdrawal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	FindAll(ctx context.Context, filter Filter) ([]*Withdrawal, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error)
	FindByCardAndPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) ([]*Withdrawal, error)
	FindLastInPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) (*Withdrawal, error)
	// SumQuantityOnDay totals the card's withdrawal quantity for one calendar
	// day, feeding the daily consumption limit check. excludeID skips the row
	// being edited so an update does not count its own old quantity.
	SumQuantityOnDay(ctx context.Context, cardID uuid.UUID, day time.Time, excludeID *uuid.UUID) (decimal.Decimal, error)
	SoftDelete(ctx context.Context, withdrawal *Withdrawal) error
}
