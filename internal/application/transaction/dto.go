package transaction

import (
	"time"

	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionInput carries the caller's data for a new charge or
// withdrawal. AutoReviewed is resolved from the acting user's role at the
// HTTP boundary and only applies to charges.
type CreateTransactionInput struct {
	CardID         uuid.UUID
	Date           time.Time
	Time           string
	Quantity       decimal.Decimal
	Odometer       *int64
	Place          string
	Reason         string
	ChipNumber     string
	RegisteredByID uuid.UUID
	AutoReviewed   bool
}

// UpdateTransactionInput carries the editable fields. CardID, when set, must
// match the transaction's current card: reassignment is rejected.
type UpdateTransactionInput struct {
	CardID     *uuid.UUID
	Date       time.Time
	Time       string
	Quantity   decimal.Decimal
	Odometer   *int64
	Place      string
	Reason     string
	ChipNumber string
}

// ListFilter represents list query options for charges and withdrawals.
type ListFilter struct {
	CardID   *uuid.UUID `form:"card_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=pendiente validada rechazada"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
	Limit    int        `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset   int        `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ChargeResponse is the application-level view of a charge.
type ChargeResponse struct {
	ID                    uuid.UUID        `json:"id"`
	FuelCardID            uuid.UUID        `json:"fuel_card_id"`
	Date                  time.Time        `json:"date"`
	Time                  string           `json:"time"`
	Quantity              decimal.Decimal  `json:"quantity"`
	Amount                decimal.Decimal  `json:"amount"`
	Odometer              *int64           `json:"odometer,omitempty"`
	Place                 string           `json:"place"`
	Reason                string           `json:"reason"`
	ChipNumber            string           `json:"chip_number"`
	MonetaryBalanceBefore *decimal.Decimal `json:"monetary_balance_before,omitempty"`
	QuantityBefore        *decimal.Decimal `json:"quantity_before,omitempty"`
	MonetaryBalanceAfter  *decimal.Decimal `json:"monetary_balance_after,omitempty"`
	QuantityAfter         *decimal.Decimal `json:"quantity_after,omitempty"`
	Status                string           `json:"status"`
	RejectionReason       *string          `json:"rejection_reason,omitempty"`
	AutoReviewed          bool             `json:"auto_reviewed"`
	RegisteredByID        uuid.UUID        `json:"registered_by_id"`
	ValidatedByID         *uuid.UUID       `json:"validated_by_id,omitempty"`
	ValidatedAt           *time.Time       `json:"validated_at,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
}

// WithdrawalResponse is the application-level view of a withdrawal.
type WithdrawalResponse struct {
	ID              uuid.UUID        `json:"id"`
	FuelCardID      uuid.UUID        `json:"fuel_card_id"`
	Date            time.Time        `json:"date"`
	Time            string           `json:"time"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Amount          decimal.Decimal  `json:"amount"`
	Odometer        *int64           `json:"odometer,omitempty"`
	Place           string           `json:"place"`
	Reason          string           `json:"reason"`
	ChipNumber      string           `json:"chip_number"`
	QuantityBefore  *decimal.Decimal `json:"quantity_before,omitempty"`
	QuantityAfter   *decimal.Decimal `json:"quantity_after,omitempty"`
	Status          string           `json:"status"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	RegisteredByID  uuid.UUID        `json:"registered_by_id"`
	ValidatedByID   *uuid.UUID       `json:"validated_by_id,omitempty"`
	ValidatedAt     *time.Time       `json:"validated_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func toChargeResponse(c *transaction.Charge) *ChargeResponse {
	return &ChargeResponse{
		ID:                    c.ID,
		FuelCardID:            c.FuelCardID,
		Date:                  c.Date,
		Time:                  c.Time,
		Quantity:              c.Quantity,
		Amount:                c.Amount,
		Odometer:              c.Odometer,
		Place:                 c.Place,
		Reason:                c.Reason,
		ChipNumber:            c.ChipNumber,
		MonetaryBalanceBefore: c.MonetaryBalanceBefore,
		QuantityBefore:        c.QuantityBefore,
		MonetaryBalanceAfter:  c.MonetaryBalanceAfter,
		QuantityAfter:         c.QuantityAfter,
		Status:                c.Status.String(),
		RejectionReason:       c.RejectionReason,
		AutoReviewed:          c.AutoReviewed,
		RegisteredByID:        c.RegisteredByID,
		ValidatedByID:         c.ValidatedByID,
		ValidatedAt:           c.ValidatedAt,
		CreatedAt:             c.CreatedAt,
	}
}

func toWithdrawalResponse(w *transaction.Withdrawal) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:              w.ID,
		FuelCardID:      w.FuelCardID,
		Date:            w.Date,
		Time:            w.Time,
		Quantity:        w.Quantity,
		Amount:          w.Amount,
		Odometer:        w.Odometer,
		Place:           w.Place,
		Reason:          w.Reason,
		ChipNumber:      w.ChipNumber,
		QuantityBefore:  w.QuantityBefore,
		QuantityAfter:   w.QuantityAfter,
		Status:          w.Status.String(),
		RejectionReason: w.RejectionReason,
		RegisteredByID:  w.RegisteredByID,
		ValidatedByID:   w.ValidatedByID,
		ValidatedAt:     w.ValidatedAt,
		CreatedAt:       w.CreatedAt,
	}
}

func (f ListFilter) toDomain() transaction.Filter {
	df := transaction.Filter{}
	df.Limit = f.Limit
	if df.Limit == 0 {
		df.Limit = 50
	}
	df.Offset = f.Offset
	df.OrderBy = "date"
	df.Desc = true
	df.CardID = f.CardID
	if f.Status != "" {
		s := transaction.Status(f.Status)
		df.Status = &s
	}
	df.DateFrom = f.DateFrom
	df.DateTo = f.DateTo
	return df
}
