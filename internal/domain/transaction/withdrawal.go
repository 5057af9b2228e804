package transaction

import (
	"time"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Withdrawal is a consumption transaction. Its ledger effect (fuel quantity
// down by Quantity, monetary balance down by Amount) is applied at creation
// and reversed on rejection. Only quantity snapshots are persisted; the
// monetary history lives on charges.
type Withdrawal struct {
	shared.BaseAggregateRoot
	FuelCardID uuid.UUID `gorm:"type:uuid;not null;index"`

	Date     time.Time       `gorm:"type:date;not null;index"`
	Time     string          `gorm:"size:8;not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Odometer   *int64 `gorm:"column:odometer"`
	Place      string `gorm:"size:255"`
	Reason     string `gorm:"size:255"`
	ChipNumber string `gorm:"size:64"`

	QuantityBefore *decimal.Decimal `gorm:"type:decimal(12,2)"`
	QuantityAfter  *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Status          Status     `gorm:"size:16;not null;default:pendiente;index"`
	RejectionReason *string    `gorm:"size:255"`
	RegisteredByID  uuid.UUID  `gorm:"type:uuid;not null"`
	ValidatedByID   *uuid.UUID `gorm:"type:uuid"`
	ValidatedAt     *time.Time

	DeletionReason *string        `gorm:"size:255"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Withdrawal) TableName() string {
	return "withdrawals"
}

// NewWithdrawal creates a pending withdrawal carrying the computed amount and
// the quantity snapshots returned by the card's ApplyWithdrawal.
func NewWithdrawal(
	cardID uuid.UUID,
	date time.Time,
	timeOfDay string,
	quantity, amount decimal.Decimal,
	before, after fuelcard.Snapshot,
	odometer *int64,
	place, reason, chipNumber string,
	registeredBy uuid.UUID,
) *Withdrawal {
	return &Withdrawal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FuelCardID:        cardID,
		Date:              date,
		Time:              timeOfDay,
		Quantity:          quantity,
		Amount:            amount,
		Odometer:          odometer,
		Place:             place,
		Reason:            reason,
		ChipNumber:        chipNumber,
		QuantityBefore:    &before.FuelQuantity,
		QuantityAfter:     &after.FuelQuantity,
		Status:            StatusPending,
		RegisteredByID:    registeredBy,
	}
}

// ApplyEdit rewrites quantity, amount and metadata after a revert-then-reapply
// cycle, preserving the original quantity-before snapshot.
func (w *Withdrawal) ApplyEdit(
	date time.Time,
	timeOfDay string,
	quantity, amount decimal.Decimal,
	before, after fuelcard.Snapshot,
	odometer *int64,
	place, reason, chipNumber string,
) {
	w.Date = date
	w.Time = timeOfDay
	w.Quantity = quantity
	w.Amount = amount
	w.Odometer = odometer
	w.Place = place
	w.Reason = reason
	w.ChipNumber = chipNumber
	if w.QuantityBefore == nil {
		w.QuantityBefore = &before.FuelQuantity
	}
	w.QuantityAfter = &after.FuelQuantity
}

// CanUpdate reports whether the withdrawal may still be edited.
func (w *Withdrawal) CanUpdate() error {
	if w.Status != StatusPending {
		return ErrUpdateRequiresPending
	}
	return nil
}

// Approve transitions pendiente → validada.
func (w *Withdrawal) Approve(actorID uuid.UUID) error {
	if w.Status.IsTerminal() {
		return ErrAlreadyProcessed
	}
	now := time.Now()
	w.Status = StatusValidated
	w.ValidatedByID = &actorID
	w.ValidatedAt = &now
	w.RejectionReason = nil
	return nil
}

// Reject transitions pendiente → rechazada; the caller reverses the ledger
// effect in the same unit of work.
func (w *Withdrawal) Reject(actorID uuid.UUID, reason string) error {
	if w.Status.IsTerminal() {
		return ErrAlreadyProcessed
	}
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	now := time.Now()
	w.Status = StatusRejected
	w.RejectionReason = &reason
	w.ValidatedByID = &actorID
	w.ValidatedAt = &now
	return nil
}

// CanDelete reports whether the withdrawal may be soft-deleted.
func (w *Withdrawal) CanDelete() error {
	if w.DeletedAt.Valid {
		return ErrAlreadyDeleted
	}
	if w.Status != StatusRejected {
		return ErrInvalidStateForDeletion
	}
	return nil
}

// MarkDeleted records the deletion reason prior to the soft delete.
func (w *Withdrawal) MarkDeleted(reason string) error {
	if err := w.CanDelete(); err != nil {
		return err
	}
	if reason == "" {
		return ErrDeletionReasonRequired
	}
	w.DeletionReason = &reason
	return nil
}
