package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind tags a statement line as a charge or a withdrawal.
type MovementKind string

const (
	MovementKindCharge     MovementKind = "charge"
	MovementKindWithdrawal MovementKind = "withdrawal"
)

// CardInfo heads the statement.
type CardInfo struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	DriverName    string    `json:"driver_name,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	FuelTypeName  string    `json:"fuel_type_name,omitempty"`
	UnitOfMeasure string    `json:"unit_of_measure,omitempty"`
}

// Balance is a monetary/quantity pair derived from transaction snapshots.
// Nil means no snapshot was available for that axis.
type Balance struct {
	Monetary *decimal.Decimal `json:"monetary"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// Movement is one chronological statement line.
type Movement struct {
	Date     time.Time       `json:"date"`
	Time     string          `json:"time"`
	Kind     MovementKind    `json:"kind"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Place    string          `json:"place,omitempty"`
	Reason   string          `json:"reason,omitempty"`
	Status   string          `json:"status"`
}

// MonthTotals sums the month's movements per kind.
type MonthTotals struct {
	ChargeQuantity     decimal.Decimal `json:"charge_quantity"`
	ChargeAmount       decimal.Decimal `json:"charge_amount"`
	WithdrawalQuantity decimal.Decimal `json:"withdrawal_quantity"`
	WithdrawalAmount   decimal.Decimal `json:"withdrawal_amount"`
}

// ConsumptionReport is the data contract consumed by the external report
// renderer.
type ConsumptionReport struct {
	Card           CardInfo    `json:"card"`
	Year           int         `json:"year"`
	Month          int         `json:"month"`
	OpeningBalance Balance     `json:"opening_balance"`
	Movements      []Movement  `json:"movements"`
	Totals         MonthTotals `json:"totals"`
	ClosingBalance Balance     `json:"closing_balance"`
}
