package handler

import (
	"context"
	"time"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCardRepository is a mock implementation of fuelcard.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Save(ctx context.Context, card *fuelcard.FuelCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
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
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFuelTypeRepository is a mock implementation of fuelcard.FuelTypeRepository
type MockFuelTypeRepository struct {
	mock.Mock
}

func (m *MockFuelTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*fuelcard.FuelType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelcard.FuelType), args.Error(1)
}

func (m *MockFuelTypeRepository) FindAll(ctx context.Context) ([]*fuelcard.FuelType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fuelcard.FuelType), args.Error(1)
}

// MockChargeRepository is a mock implementation of transaction.ChargeRepository
type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) Save(ctx context.Context, charge *transaction.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
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
	args := m.Called(ctx, charge)
	return args.Error(0)
}

// MockWithdrawalRepository is a mock implementation of transaction.WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Save(ctx context.Context, withdrawal *transaction.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
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
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

// MockDriverRepository is a mock implementation of fuelcard.DriverRepository
type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*fuelcard.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelcard.Driver), args.Error(1)
}

// MockCompanyRepository is a mock implementation of fuelcard.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*fuelcard.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelcard.Company), args.Error(1)
}
