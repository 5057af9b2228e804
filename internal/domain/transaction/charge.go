package transaction

import (
	"time"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Charge is a refuel transaction. Its ledger effect (monetary balance down by
// Amount, fuel quantity up by Quantity) is applied at creation and reversed
// on rejection; the before/after snapshots record the card state around that
// effect.
type Charge struct {
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

	// card state immediately before and after this charge; "before" is set
	// once and preserved across edits, "after" is recomputed on each edit
	MonetaryBalanceBefore *decimal.Decimal `gorm:"type:decimal(12,2)"`
	QuantityBefore        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MonetaryBalanceAfter  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	QuantityAfter         *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Status          Status     `gorm:"size:16;not null;default:pendiente;index"`
	RejectionReason *string    `gorm:"size:255"`
	AutoReviewed    bool       `gorm:"not null;default:false"`
	RegisteredByID  uuid.UUID  `gorm:"type:uuid;not null"`
	ValidatedByID   *uuid.UUID `gorm:"type:uuid"`
	ValidatedAt     *time.Time

	DeletionReason *string        `gorm:"size:255"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Charge) TableName() string {
	return "charges"
}

// NewCharge creates a pending charge carrying the computed amount and the
// snapshots returned by the card's ApplyCharge.
func NewCharge(
	cardID uuid.UUID,
	date time.Time,
	timeOfDay string,
	quantity, amount decimal.Decimal,
	before, after fuelcard.Snapshot,
	odometer *int64,
	place, reason, chipNumber string,
	registeredBy uuid.UUID,
	autoReviewed bool,
) *Charge {
	return &Charge{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		FuelCardID:            cardID,
		Date:                  date,
		Time:                  timeOfDay,
		Quantity:              quantity,
		Amount:                amount,
		Odometer:              odometer,
		Place:                 place,
		Reason:                reason,
		ChipNumber:            chipNumber,
		MonetaryBalanceBefore: &before.MonetaryBalance,
		QuantityBefore:        &before.FuelQuantity,
		MonetaryBalanceAfter:  &after.MonetaryBalance,
		QuantityAfter:         &after.FuelQuantity,
		Status:                StatusPending,
		AutoReviewed:          autoReviewed,
		RegisteredByID:        registeredBy,
	}
}

// ApplyEdit rewrites quantity, amount and metadata after a revert-then-reapply
// cycle. Existing "before" snapshots are preserved; missing ones are
// backfilled from the reverted card state; "after" snapshots always reflect
// the reapplied effect.
func (c *Charge) ApplyEdit(
	date time.Time,
	timeOfDay string,
	quantity, amount decimal.Decimal,
	before, after fuelcard.Snapshot,
	odometer *int64,
	place, reason, chipNumber string,
) {
	c.Date = date
	c.Time = timeOfDay
	c.Quantity = quantity
	c.Amount = amount
	c.Odometer = odometer
	c.Place = place
	c.Reason = reason
	c.ChipNumber = chipNumber
	if c.MonetaryBalanceBefore == nil {
		c.MonetaryBalanceBefore = &before.MonetaryBalance
	}
	if c.QuantityBefore == nil {
		c.QuantityBefore = &before.FuelQuantity
	}
	c.MonetaryBalanceAfter = &after.MonetaryBalance
	c.QuantityAfter = &after.FuelQuantity
}

// CanUpdate reports whether the charge may still be edited.
func (c *Charge) CanUpdate() error {
	if c.Status != StatusPending {
		return ErrUpdateRequiresPending
	}
	return nil
}

// Approve transitions pendiente → validada. Terminal; the ledger effect
// applied at creation stands.
func (c *Charge) Approve(actorID uuid.UUID) error {
	if c.Status.IsTerminal() {
		return ErrAlreadyProcessed
	}
	now := time.Now()
	c.Status = StatusValidated
	c.ValidatedByID = &actorID
	c.ValidatedAt = &now
	c.RejectionReason = nil
	return nil
}

// Reject transitions pendiente → rechazada. The caller must reverse the
// ledger effect in the same unit of work.
func (c *Charge) Reject(actorID uuid.UUID, reason string) error {
	if c.Status.IsTerminal() {
		return ErrAlreadyProcessed
	}
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	now := time.Now()
	c.Status = StatusRejected
	c.RejectionReason = &reason
	c.ValidatedByID = &actorID
	c.ValidatedAt = &now
	return nil
}

// CanDelete reports whether the charge may be soft-deleted: only from
// rechazada, and only once.
func (c *Charge) CanDelete() error {
	if c.DeletedAt.Valid {
		return ErrAlreadyDeleted
	}
	if c.Status != StatusRejected {
		return ErrInvalidStateForDeletion
	}
	return nil
}

// MarkDeleted records the deletion reason prior to the soft delete.
func (c *Charge) MarkDeleted(reason string) error {
	if err := c.CanDelete(); err != nil {
		return err
	}
	if reason == "" {
		return ErrDeletionReasonRequired
	}
	c.DeletionReason = &reason
	return nil
}
