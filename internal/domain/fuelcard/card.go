package fuelcard

import (
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot captures a card's balances at a point in time. Transactions store
// one snapshot taken immediately before and one immediately after their effect.
type Snapshot struct {
	MonetaryBalance decimal.Decimal
	FuelQuantity    decimal.Decimal
}

// FuelCard is the balance-holding aggregate assigned to a driver. All balance
// mutations go through ApplyCharge/ReverseCharge/ApplyWithdrawal/ReverseWithdrawal;
// callers must hold an exclusive row lock on the card for the whole
// read-check-mutate sequence.
type FuelCard struct {
	shared.BaseAggregateRoot
	Number         string    `gorm:"size:64;not null;uniqueIndex"`
	ExpirationDate time.Time `gorm:"not null"`
	Active         bool      `gorm:"not null;default:true"`

	MonetaryBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FuelQuantity    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// nil means unlimited
	MaxBalance              *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MonthlyConsumptionLimit *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DailyConsumptionLimit   *decimal.Decimal `gorm:"type:decimal(12,2)"`

	MonthlyAccumulatedConsumption decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	DriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FuelTypeID uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (FuelCard) TableName() string {
	return "fuel_cards"
}

// NewFuelCard creates a fuel card and validates its initial state against the
// cross-field rules.
func NewFuelCard(
	number string,
	expirationDate time.Time,
	monetaryBalance, fuelQuantity decimal.Decimal,
	maxBalance, monthlyLimit, dailyLimit *decimal.Decimal,
	driverID, companyID, fuelTypeID uuid.UUID,
) (*FuelCard, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_INPUT", "card number is required")
	}
	card := &FuelCard{
		BaseAggregateRoot:             shared.NewBaseAggregateRoot(),
		Number:                        number,
		ExpirationDate:                expirationDate,
		Active:                        true,
		MonetaryBalance:               monetaryBalance,
		FuelQuantity:                  fuelQuantity,
		MaxBalance:                    maxBalance,
		MonthlyConsumptionLimit:       monthlyLimit,
		DailyConsumptionLimit:         dailyLimit,
		MonthlyAccumulatedConsumption: decimal.Zero,
		DriverID:                      driverID,
		CompanyID:                     companyID,
		FuelTypeID:                    fuelTypeID,
	}
	if err := card.checkCrossFieldRules(); err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateLimits changes the card's limits, rejecting values that would put the
// card's current state in violation.
func (c *FuelCard) UpdateLimits(maxBalance, monthlyLimit, dailyLimit *decimal.Decimal) error {
	prev := *c
	c.MaxBalance = maxBalance
	c.MonthlyConsumptionLimit = monthlyLimit
	c.DailyConsumptionLimit = dailyLimit
	if err := c.checkCrossFieldRules(); err != nil {
		*c = prev
		return err
	}
	return nil
}

func (c *FuelCard) checkCrossFieldRules() error {
	if c.MonetaryBalance.IsNegative() || c.FuelQuantity.IsNegative() {
		return ErrNegativeBalance
	}
	if c.MaxBalance != nil {
		if c.MonetaryBalance.GreaterThan(*c.MaxBalance) || c.FuelQuantity.GreaterThan(*c.MaxBalance) {
			return ErrMaxBalanceBelowState
		}
	}
	if c.MonthlyConsumptionLimit != nil &&
		c.MonthlyAccumulatedConsumption.GreaterThan(*c.MonthlyConsumptionLimit) {
		return ErrMonthlyLimitBelowUse
	}
	return nil
}

// ComputeAmount returns quantity × price rounded to 2 decimal places, the
// monetary value of every charge and withdrawal.
func ComputeAmount(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price).Round(2)
}

// snapshot returns the card's current balances.
func (c *FuelCard) snapshot() Snapshot {
	return Snapshot{
		MonetaryBalance: c.MonetaryBalance,
		FuelQuantity:    c.FuelQuantity,
	}
}

// ApplyCharge registers a refuel: it deducts the charge's monetary value and
// adds the fuel quantity. Checks run in order (funds, monthly limit, max
// balance), each failing with its own error and leaving the card untouched.
// Returns the computed amount and the before/after snapshots.
func (c *FuelCard) ApplyCharge(quantity, price decimal.Decimal) (decimal.Decimal, Snapshot, Snapshot, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrPriceUndefined
	}
	amount := ComputeAmount(quantity, price)

	if c.MonetaryBalance.LessThan(amount) {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrInsufficientFunds
	}
	if c.MonthlyConsumptionLimit != nil &&
		c.MonthlyAccumulatedConsumption.Add(quantity).GreaterThan(*c.MonthlyConsumptionLimit) {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrMonthlyLimitExceeded
	}
	if c.MaxBalance != nil &&
		c.FuelQuantity.Add(quantity).GreaterThan(*c.MaxBalance) {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrMaxBalanceExceeded
	}

	before := c.snapshot()
	c.MonetaryBalance = c.MonetaryBalance.Sub(amount)
	c.FuelQuantity = c.FuelQuantity.Add(quantity)
	c.MonthlyAccumulatedConsumption = c.MonthlyAccumulatedConsumption.Add(quantity)
	return amount, before, c.snapshot(), nil
}

// ReverseCharge undoes a previously applied charge. It never fails: the
// original apply already proved feasibility, so a negative result here is a
// data-integrity problem, not a business rule.
func (c *FuelCard) ReverseCharge(quantity, amount decimal.Decimal) {
	c.MonetaryBalance = c.MonetaryBalance.Add(amount)
	c.FuelQuantity = c.FuelQuantity.Sub(quantity)
	c.MonthlyAccumulatedConsumption = c.MonthlyAccumulatedConsumption.Sub(quantity)
}

// ApplyWithdrawal registers a consumption event: it removes fuel quantity and
// deducts the quantity's monetary value. dailyConsumedSoFar is the sum of the
// card's same-day withdrawals, used for the daily limit check.
func (c *FuelCard) ApplyWithdrawal(quantity, price, dailyConsumedSoFar decimal.Decimal) (decimal.Decimal, Snapshot, Snapshot, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrPriceUndefined
	}
	amount := ComputeAmount(quantity, price)

	if c.FuelQuantity.LessThan(quantity) {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrInsufficientFuel
	}
	if c.DailyConsumptionLimit != nil &&
		dailyConsumedSoFar.Add(quantity).GreaterThan(*c.DailyConsumptionLimit) {
		return decimal.Zero, Snapshot{}, Snapshot{}, ErrDailyLimitExceeded
	}

	before := c.snapshot()
	c.FuelQuantity = c.FuelQuantity.Sub(quantity)
	c.MonetaryBalance = c.MonetaryBalance.Sub(amount)
	c.MonthlyAccumulatedConsumption = c.MonthlyAccumulatedConsumption.Add(quantity)
	return amount, before, c.snapshot(), nil
}

// ReverseWithdrawal undoes a previously applied withdrawal. Unconditional,
// like ReverseCharge.
func (c *FuelCard) ReverseWithdrawal(quantity, amount decimal.Decimal) {
	c.FuelQuantity = c.FuelQuantity.Add(quantity)
	c.MonetaryBalance = c.MonetaryBalance.Add(amount)
	c.MonthlyAccumulatedConsumption = c.MonthlyAccumulatedConsumption.Sub(quantity)
}

// ResetMonthlyConsumption zeroes the month-to-date counter. The rollover is an
// explicit, callable operation rather than an implicit monthly job.
func (c *FuelCard) ResetMonthlyConsumption() {
	c.MonthlyAccumulatedConsumption = decimal.Zero
}

// Deactivate marks the card inactive.
func (c *FuelCard) Deactivate() {
	c.Active = false
}

// Activate marks the card active.
func (c *FuelCard) Activate() {
	c.Active = true
}
