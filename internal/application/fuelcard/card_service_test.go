package fuelcard

import (
	"context"
	"testing"
	"time"

	apptransaction "github.com/fleet/backend/internal/application/transaction"
	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Mocks for the repositories the card service touches.

type MockCardRepository struct{ mock.Mock }

func (m *MockCardRepository) Save(ctx context.Context, card *fuelcard.FuelCard) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*fuelcard.FuelCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelcard.FuelCard), args.Error(1)
}

func (m *MockCardRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*fuelcard.FuelCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelcard.FuelCard), args.Error(1)
}

func (m *MockCardRepository) FindByNumber(ctx context.Context, number string) (*fuelcard.FuelCard, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelcard.FuelCard), args.Error(1)
}

func (m *MockCardRepository) FindAll(ctx context.Context, filter fuelcard.CardFilter) ([]*fuelcard.FuelCard, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*fuelcard.FuelCard), args.Error(1)
}

func (m *MockCardRepository) Count(ctx context.Context, filter fuelcard.CardFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFuelTypeRepository struct{ mock.Mock }

func (m *MockFuelTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*fuelcard.FuelType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelcard.FuelType), args.Error(1)
}

func (m *MockFuelTypeRepository) FindAll(ctx context.Context) ([]*fuelcard.FuelType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*fuelcard.FuelType), args.Error(1)
}

type MockChargeRepository struct{ mock.Mock }

func (m *MockChargeRepository) Save(ctx context.Context, charge *transaction.Charge) error {
	return m.Called(ctx, charge).Error(0)
}

func (m *MockChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindAll(ctx context.Context, filter transaction.Filter) ([]*transaction.Charge, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*transaction.Charge), args.Error(1)
}

func (m *MockChargeRepository) Count(ctx context.Context, filter transaction.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChargeRepository) CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChargeRepository) FindByCardAndPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) ([]*transaction.Charge, error) {
	args := m.Called(ctx, cardID, from, to)
	return args.Get(0).([]*transaction.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindLastInPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) (*transaction.Charge, error) {
	args := m.Called(ctx, cardID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Charge), args.Error(1)
}

func (m *MockChargeRepository) SoftDelete(ctx context.Context, charge *transaction.Charge) error {
	return m.Called(ctx, charge).Error(0)
}

type MockWithdrawalRepository struct{ mock.Mock }

func (m *MockWithdrawalRepository) Save(ctx context.Context, withdrawal *transaction.Withdrawal) error {
	return m.Called(ctx, withdrawal).Error(0)
}

func (m *MockWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindAll(ctx context.Context, filter transaction.Filter) ([]*transaction.Withdrawal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*transaction.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) Count(ctx context.Context, filter transaction.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWithdrawalRepository) CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWithdrawalRepository) FindByCardAndPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) ([]*transaction.Withdrawal, error) {
	args := m.Called(ctx, cardID, from, to)
	return args.Get(0).([]*transaction.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindLastInPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) (*transaction.Withdrawal, error) {
	args := m.Called(ctx, cardID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) SumQuantityOnDay(ctx context.Context, cardID uuid.UUID, day time.Time, excludeID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, cardID, day, excludeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWithdrawalRepository) SoftDelete(ctx context.Context, withdrawal *transaction.Withdrawal) error {
	return m.Called(ctx, withdrawal).Error(0)
}

type cardFixture struct {
	cardRepo       *MockCardRepository
	fuelTypeRepo   *MockFuelTypeRepository
	chargeRepo     *MockChargeRepository
	withdrawalRepo *MockWithdrawalRepository
	service        *CardService
}

func newCardFixture() *cardFixture {
	cardRepo := &MockCardRepository{}
	fuelTypeRepo := &MockFuelTypeRepository{}
	chargeRepo := &MockChargeRepository{}
	withdrawalRepo := &MockWithdrawalRepository{}
	scope := apptransaction.NewNoOpTransactionScope(cardRepo, chargeRepo, withdrawalRepo)
	return &cardFixture{
		cardRepo:       cardRepo,
		fuelTypeRepo:   fuelTypeRepo,
		chargeRepo:     chargeRepo,
		withdrawalRepo: withdrawalRepo,
		service:        NewCardService(scope, cardRepo, fuelTypeRepo, chargeRepo, withdrawalRepo),
	}
}

func testFuelType() *fuelcard.FuelType {
	ft := &fuelcard.FuelType{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          "Diesel",
		UnitOfMeasure: "L",
		Price:         dec("10"),
	}
	return ft
}

func testCard(t *testing.T) *fuelcard.FuelCard {
	t.Helper()
	card, err := fuelcard.NewFuelCard(
		"CARD-001", time.Now().AddDate(1, 0, 0),
		dec("100"), dec("0"),
		nil, nil, nil,
		uuid.New(), uuid.New(), uuid.New(),
	)
	require.NoError(t, err)
	return card
}

func TestCardServiceCreate(t *testing.T) {
	t.Run("creates card with unique number", func(t *testing.T) {
		f := newCardFixture()
		ft := testFuelType()
		f.cardRepo.On("FindByNumber", mock.Anything, "CARD-002").Return(nil, shared.ErrNotFound)
		f.fuelTypeRepo.On("FindByID", mock.Anything, ft.ID).Return(ft, nil)
		f.cardRepo.On("Save", mock.Anything, mock.AnythingOfType("*fuelcard.FuelCard")).Return(nil)

		resp, err := f.service.Create(context.Background(), CreateCardInput{
			Number:          "CARD-002",
			ExpirationDate:  time.Now().AddDate(1, 0, 0),
			MonetaryBalance: dec("100"),
			FuelQuantity:    dec("0"),
			DriverID:        uuid.New(),
			CompanyID:       uuid.New(),
			FuelTypeID:      ft.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "CARD-002", resp.Number)
		assert.True(t, resp.Active)
	})

	t.Run("duplicate number is rejected", func(t *testing.T) {
		f := newCardFixture()
		existing := testCard(t)
		f.cardRepo.On("FindByNumber", mock.Anything, "CARD-001").Return(existing, nil)

		_, err := f.service.Create(context.Background(), CreateCardInput{
			Number:     "CARD-001",
			DriverID:   uuid.New(),
			CompanyID:  uuid.New(),
			FuelTypeID: uuid.New(),
		})
		assert.ErrorIs(t, err, fuelcard.ErrCardNumberExists)
	})

	t.Run("initial balance above max balance is rejected", func(t *testing.T) {
		f := newCardFixture()
		ft := testFuelType()
		f.cardRepo.On("FindByNumber", mock.Anything, "CARD-003").Return(nil, shared.ErrNotFound)
		f.fuelTypeRepo.On("FindByID", mock.Anything, ft.ID).Return(ft, nil)
		maxBalance := dec("50")

		_, err := f.service.Create(context.Background(), CreateCardInput{
			Number:          "CARD-003",
			MonetaryBalance: dec("100"),
			FuelQuantity:    dec("0"),
			MaxBalance:      &maxBalance,
			DriverID:        uuid.New(),
			CompanyID:       uuid.New(),
			FuelTypeID:      ft.ID,
		})
		assert.ErrorIs(t, err, fuelcard.ErrMaxBalanceBelowState)
	})
}

func TestCardServiceUpdate(t *testing.T) {
	t.Run("rejects monthly limit below month-to-date consumption", func(t *testing.T) {
		f := newCardFixture()
		card := testCard(t)
		card.MonthlyAccumulatedConsumption = dec("30")
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, card.ID).Return(card, nil)
		limit := dec("10")

		_, err := f.service.Update(context.Background(), card.ID, UpdateCardInput{
			ExpirationDate:          card.ExpirationDate,
			Active:                  true,
			MonthlyConsumptionLimit: &limit,
			DriverID:                card.DriverID,
			FuelTypeID:              card.FuelTypeID,
		})
		assert.ErrorIs(t, err, fuelcard.ErrMonthlyLimitBelowUse)
		f.cardRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCardServiceDelete(t *testing.T) {
	t.Run("blocked while transactions exist", func(t *testing.T) {
		f := newCardFixture()
		card := testCard(t)
		f.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		f.chargeRepo.On("CountByCard", mock.Anything, card.ID).Return(int64(3), nil)
		f.withdrawalRepo.On("CountByCard", mock.Anything, card.ID).Return(int64(0), nil)

		err := f.service.Delete(context.Background(), card.ID)
		assert.ErrorIs(t, err, fuelcard.ErrCardHasTransactions)
		f.cardRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes card without transactions", func(t *testing.T) {
		f := newCardFixture()
		card := testCard(t)
		f.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		f.chargeRepo.On("CountByCard", mock.Anything, card.ID).Return(int64(0), nil)
		f.withdrawalRepo.On("CountByCard", mock.Anything, card.ID).Return(int64(0), nil)
		f.cardRepo.On("Delete", mock.Anything, card.ID).Return(nil)

		require.NoError(t, f.service.Delete(context.Background(), card.ID))
		f.cardRepo.AssertExpectations(t)
	})
}

func TestCardServiceGetFuelPrice(t *testing.T) {
	f := newCardFixture()
	card := testCard(t)
	ft := testFuelType()
	ft.ID = card.FuelTypeID
	f.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
	f.fuelTypeRepo.On("FindByID", mock.Anything, ft.ID).Return(ft, nil)

	resp, err := f.service.GetFuelPrice(context.Background(), card.ID)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(resp.Price))
	assert.Equal(t, "Diesel", resp.FuelTypeName)
}

func TestCardServiceResetMonthlyConsumption(t *testing.T) {
	f := newCardFixture()
	card := testCard(t)
	card.MonthlyAccumulatedConsumption = dec("42")
	f.cardRepo.On("FindByIDForUpdate", mock.Anything, card.ID).Return(card, nil)
	f.cardRepo.On("Save", mock.Anything, card).Return(nil)

	resp, err := f.service.ResetMonthlyConsumption(context.Background(), card.ID)
	require.NoError(t, err)
	assert.True(t, resp.MonthlyAccumulatedConsumption.IsZero())
}
