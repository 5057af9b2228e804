package fuelcard

import "github.com/fleet/backend/internal/domain/shared"

// Domain errors for the fuel-card ledger
var (
	ErrCardNotFound         = shared.NewDomainError("CARD_NOT_FOUND", "fuel card not found")
	ErrFuelTypeNotFound     = shared.NewDomainError("FUEL_TYPE_NOT_FOUND", "fuel type not found")
	ErrPriceUndefined       = shared.NewDomainError("PRICE_UNDEFINED", "fuel type has no price set")
	ErrInsufficientFunds    = shared.NewDomainError("INSUFFICIENT_FUNDS", "monetary balance is insufficient for this charge")
	ErrInsufficientFuel     = shared.NewDomainError("INSUFFICIENT_FUEL", "fuel quantity is insufficient for this withdrawal")
	ErrMaxBalanceExceeded   = shared.NewDomainError("MAX_BALANCE_EXCEEDED", "operation would exceed the card's maximum balance")
	ErrMonthlyLimitExceeded = shared.NewDomainError("MONTHLY_LIMIT_EXCEEDED", "operation would exceed the card's monthly consumption limit")
	ErrDailyLimitExceeded   = shared.NewDomainError("DAILY_LIMIT_EXCEEDED", "operation would exceed the card's daily consumption limit")
	ErrCardHasTransactions  = shared.NewDomainError("CARD_HAS_TRANSACTIONS", "fuel card has registered transactions and cannot be deleted")
	ErrCardNumberExists     = shared.NewDomainError("CARD_NUMBER_EXISTS", "a fuel card with this number already exists")
	ErrInvalidQuantity      = shared.NewDomainError("VALIDATION_INPUT", "quantity must be greater than zero")
	ErrNegativeBalance      = shared.NewDomainError("VALIDATION_INPUT", "balances cannot be negative")
	ErrMaxBalanceBelowState = shared.NewDomainError("VALIDATION_INPUT", "max balance cannot be set below the card's current balances")
	ErrMonthlyLimitBelowUse = shared.NewDomainError("VALIDATION_INPUT", "monthly limit cannot be set below the month-to-date consumption")
)
