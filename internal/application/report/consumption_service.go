package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionService builds the monthly consumption statement for a card. It
// is read-only: opening and closing balances are derived from the snapshots
// stored on the month's (and previous month's) transactions, never from the
// live card balances.
type ConsumptionService struct {
	cardRepo       fuelcard.CardRepository
	driverRepo     fuelcard.DriverRepository
	companyRepo    fuelcard.CompanyRepository
	fuelTypeRepo   fuelcard.FuelTypeRepository
	chargeRepo     transaction.ChargeRepository
	withdrawalRepo transaction.WithdrawalRepository
}

// NewConsumptionService creates a new ConsumptionService
func NewConsumptionService(
	cardRepo fuelcard.CardRepository,
	driverRepo fuelcard.DriverRepository,
	companyRepo fuelcard.CompanyRepository,
	fuelTypeRepo fuelcard.FuelTypeRepository,
	chargeRepo transaction.ChargeRepository,
	withdrawalRepo transaction.WithdrawalRepository,
) *ConsumptionService {
	return &ConsumptionService{
		cardRepo:       cardRepo,
		driverRepo:     driverRepo,
		companyRepo:    companyRepo,
		fuelTypeRepo:   fuelTypeRepo,
		chargeRepo:     chargeRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// MonthlyStatement builds the statement for (year, month). Opening balances
// come from the previous month's last snapshots; closing balances from the
// target month's, derived the same way one month later.
func (s *ConsumptionService) MonthlyStatement(ctx context.Context, cardID uuid.UUID, year int, month time.Month) (*ConsumptionReport, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fuelcard.ErrCardNotFound
		}
		return nil, err
	}

	info, err := s.cardInfo(ctx, card)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)
	nextStart := monthStart.AddDate(0, 1, 0)

	opening, err := s.balanceAt(ctx, cardID, prevStart, monthStart)
	if err != nil {
		return nil, err
	}
	closing, err := s.balanceAt(ctx, cardID, monthStart, nextStart)
	if err != nil {
		return nil, err
	}

	charges, err := s.chargeRepo.FindByCardAndPeriod(ctx, cardID, monthStart, nextStart)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawalRepo.FindByCardAndPeriod(ctx, cardID, monthStart, nextStart)
	if err != nil {
		return nil, err
	}

	movements := make([]Movement, 0, len(charges)+len(withdrawals))
	totals := MonthTotals{
		ChargeQuantity:     decimal.Zero,
		ChargeAmount:       decimal.Zero,
		WithdrawalQuantity: decimal.Zero,
		WithdrawalAmount:   decimal.Zero,
	}
	for _, c := range charges {
		movements = append(movements, Movement{
			Date:     c.Date,
			Time:     c.Time,
			Kind:     MovementKindCharge,
			Quantity: c.Quantity,
			Amount:   c.Amount,
			Place:    c.Place,
			Reason:   c.Reason,
			Status:   c.Status.String(),
		})
		totals.ChargeQuantity = totals.ChargeQuantity.Add(c.Quantity)
		totals.ChargeAmount = totals.ChargeAmount.Add(c.Amount)
	}
	for _, w := range withdrawals {
		movements = append(movements, Movement{
			Date:     w.Date,
			Time:     w.Time,
			Kind:     MovementKindWithdrawal,
			Quantity: w.Quantity,
			Amount:   w.Amount,
			Place:    w.Place,
			Reason:   w.Reason,
			Status:   w.Status.String(),
		})
		totals.WithdrawalQuantity = totals.WithdrawalQuantity.Add(w.Quantity)
		totals.WithdrawalAmount = totals.WithdrawalAmount.Add(w.Amount)
	}
	sort.SliceStable(movements, func(i, j int) bool {
		if !movements[i].Date.Equal(movements[j].Date) {
			return movements[i].Date.Before(movements[j].Date)
		}
		return movements[i].Time < movements[j].Time
	})

	return &ConsumptionReport{
		Card:           info,
		Year:           year,
		Month:          int(month),
		OpeningBalance: opening,
		Movements:      movements,
		Totals:         totals,
		ClosingBalance: closing,
	}, nil
}

// balanceAt derives the balance standing at the end of [from, to): the last
// charge's monetary-after, and the last withdrawal's quantity-after with the
// last charge's quantity-after as the no-withdrawal fallback. Nil fields mean
// no snapshot is available for that axis.
func (s *ConsumptionService) balanceAt(ctx context.Context, cardID uuid.UUID, from, to time.Time) (Balance, error) {
	var balance Balance

	lastCharge, err := s.chargeRepo.FindLastInPeriod(ctx, cardID, from, to)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return balance, err
	}
	lastWithdrawal, err := s.withdrawalRepo.FindLastInPeriod(ctx, cardID, from, to)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return balance, err
	}

	if lastCharge != nil {
		balance.Monetary = lastCharge.MonetaryBalanceAfter
	}
	switch {
	case lastWithdrawal != nil:
		balance.Quantity = lastWithdrawal.QuantityAfter
	case lastCharge != nil:
		balance.Quantity = lastCharge.QuantityAfter
	}
	return balance, nil
}

func (s *ConsumptionService) cardInfo(ctx context.Context, card *fuelcard.FuelCard) (CardInfo, error) {
	info := CardInfo{
		ID:     card.ID,
		Number: card.Number,
	}

	if driver, err := s.driverRepo.FindByID(ctx, card.DriverID); err == nil {
		info.DriverName = driver.FullName()
	} else if !errors.Is(err, shared.ErrNotFound) {
		return info, err
	}
	if company, err := s.companyRepo.FindByID(ctx, card.CompanyID); err == nil {
		info.CompanyName = company.Name
	} else if !errors.Is(err, shared.ErrNotFound) {
		return info, err
	}
	if fuelType, err := s.fuelTypeRepo.FindByID(ctx, card.FuelTypeID); err == nil {
		info.FuelTypeName = fuelType.Name
		info.UnitOfMeasure = fuelType.UnitOfMeasure
	} else if !errors.Is(err, shared.ErrNotFound) {
		return info, err
	}
	return info, nil
}
