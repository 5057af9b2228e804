package transaction

import (
	"context"
	"testing"
	"time"

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

type chargeFixture struct {
	cardRepo     *MockCardRepository
	chargeRepo   *MockChargeRepository
	fuelTypeRepo *MockFuelTypeRepository
	service      *ChargeService
	card         *fuelcard.FuelCard
	fuelType     *fuelcard.FuelType
}

func newChargeFixture(t *testing.T, monetary, quantity, price string) *chargeFixture {
	t.Helper()

	card, err := fuelcard.NewFuelCard(
		"CARD-001",
		time.Now().AddDate(1, 0, 0),
		dec(monetary), dec(quantity),
		nil, nil, nil,
		uuid.New(), uuid.New(), uuid.New(),
	)
	require.NoError(t, err)

	fuelType := &fuelcard.FuelType{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          "Diesel",
		UnitOfMeasure: "L",
		Price:         dec(price),
	}
	fuelType.ID = card.FuelTypeID

	cardRepo := &MockCardRepository{}
	chargeRepo := &MockChargeRepository{}
	withdrawalRepo := &MockWithdrawalRepository{}
	fuelTypeRepo := &MockFuelTypeRepository{}
	scope := NewNoOpTransactionScope(cardRepo, chargeRepo, withdrawalRepo)

	return &chargeFixture{
		cardRepo:     cardRepo,
		chargeRepo:   chargeRepo,
		fuelTypeRepo: fuelTypeRepo,
		service:      NewChargeService(scope, chargeRepo, fuelTypeRepo),
		card:         card,
		fuelType:     fuelType,
	}
}

func createInput(cardID uuid.UUID, quantity string) CreateTransactionInput {
	return CreateTransactionInput{
		CardID:         cardID,
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:           "08:30:00",
		Quantity:       dec(quantity),
		Place:          "Central station",
		Reason:         "weekly refuel",
		RegisteredByID: uuid.New(),
	}
}

func TestChargeServiceCreate(t *testing.T) {
	t.Run("creates pending charge and updates card balances", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, f.card.ID).Return(f.card, nil)
		f.fuelTypeRepo.On("FindByID", mock.Anything, f.fuelType.ID).Return(f.fuelType, nil)
		f.chargeRepo.On("Save", mock.Anything, mock.AnythingOfType("*transaction.Charge")).Return(nil)
		f.cardRepo.On("Save", mock.Anything, f.card).Return(nil)

		resp, err := f.service.Create(context.Background(), createInput(f.card.ID, "5"))
		require.NoError(t, err)

		assert.True(t, dec("50").Equal(resp.Amount))
		assert.Equal(t, "pendiente", resp.Status)
		assert.True(t, dec("100").Equal(*resp.MonetaryBalanceBefore))
		assert.True(t, dec("0").Equal(*resp.QuantityBefore))
		assert.True(t, dec("50").Equal(*resp.MonetaryBalanceAfter))
		assert.True(t, dec("5").Equal(*resp.QuantityAfter))
		assert.True(t, dec("50").Equal(f.card.MonetaryBalance))
		assert.True(t, dec("5").Equal(f.card.FuelQuantity))
		f.cardRepo.AssertExpectations(t)
		f.chargeRepo.AssertExpectations(t)
	})

	t.Run("insufficient funds aborts without persisting", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, f.card.ID).Return(f.card, nil)
		f.fuelTypeRepo.On("FindByID", mock.Anything, f.fuelType.ID).Return(f.fuelType, nil)

		_, err := f.service.Create(context.Background(), createInput(f.card.ID, "20"))
		assert.ErrorIs(t, err, fuelcard.ErrInsufficientFunds)
		assert.True(t, dec("100").Equal(f.card.MonetaryBalance))
		f.chargeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.cardRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown card maps to CARD_NOT_FOUND", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		missing := uuid.New()
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(context.Background(), createInput(missing, "5"))
		assert.ErrorIs(t, err, fuelcard.ErrCardNotFound)
	})

	t.Run("zero fuel price fails PRICE_UNDEFINED", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "0")
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, f.card.ID).Return(f.card, nil)
		f.fuelTypeRepo.On("FindByID", mock.Anything, f.fuelType.ID).Return(f.fuelType, nil)

		_, err := f.service.Create(context.Background(), createInput(f.card.ID, "5"))
		assert.ErrorIs(t, err, fuelcard.ErrPriceUndefined)
	})

	t.Run("supervisor creation carries the auto-review marker", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, f.card.ID).Return(f.card, nil)
		f.fuelTypeRepo.On("FindByID", mock.Anything, f.fuelType.ID).Return(f.fuelType, nil)
		f.chargeRepo.On("Save", mock.Anything, mock.AnythingOfType("*transaction.Charge")).Return(nil)
		f.cardRepo.On("Save", mock.Anything, f.card).Return(nil)

		input := createInput(f.card.ID, "5")
		input.AutoReviewed = true

		resp, err := f.service.Create(context.Background(), input)
		require.NoError(t, err)
		assert.True(t, resp.AutoReviewed)
	})
}

func TestChargeServiceUpdate(t *testing.T) {
	existingCharge := func(f *chargeFixture) *transaction.Charge {
		amount, before, after, err := f.card.ApplyCharge(dec("5"), dec("10"))
		if err != nil {
			panic(err)
		}
		return transaction.NewCharge(
			f.card.ID,
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "08:30:00",
			dec("5"), amount, before, after,
			nil, "Central station", "weekly refuel", "",
			uuid.New(), false,
		)
	}

	t.Run("revert then reapply with recomputed amount", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		charge := existingCharge(f) // card now {50, 5}

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, f.card.ID).Return(f.card, nil)
		f.fuelTypeRepo.On("FindByID", mock.Anything, f.fuelType.ID).Return(f.fuelType, nil)
		f.chargeRepo.On("Save", mock.Anything, charge).Return(nil)
		f.cardRepo.On("Save", mock.Anything, f.card).Return(nil)

		resp, err := f.service.Update(context.Background(), charge.ID, UpdateTransactionInput{
			Date:     charge.Date,
			Time:     charge.Time,
			Quantity: dec("2"),
			Place:    charge.Place,
			Reason:   charge.Reason,
		})
		require.NoError(t, err)

		assert.True(t, dec("20").Equal(resp.Amount))
		assert.True(t, dec("80").Equal(f.card.MonetaryBalance))
		assert.True(t, dec("2").Equal(f.card.FuelQuantity))
		// original before snapshot survives the edit
		assert.True(t, dec("100").Equal(*resp.MonetaryBalanceBefore))
		assert.True(t, dec("80").Equal(*resp.MonetaryBalanceAfter))
	})

	t.Run("card reassignment is rejected", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		charge := existingCharge(f)
		otherCard := uuid.New()

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)

		_, err := f.service.Update(context.Background(), charge.ID, UpdateTransactionInput{
			CardID:   &otherCard,
			Date:     charge.Date,
			Time:     charge.Time,
			Quantity: dec("2"),
		})
		assert.ErrorIs(t, err, transaction.ErrCardImmutable)
	})

	t.Run("validated charge cannot be updated", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		charge := existingCharge(f)
		require.NoError(t, charge.Approve(uuid.New()))

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)

		_, err := f.service.Update(context.Background(), charge.ID, UpdateTransactionInput{
			Date:     charge.Date,
			Time:     charge.Time,
			Quantity: dec("2"),
		})
		assert.ErrorIs(t, err, transaction.ErrUpdateRequiresPending)
	})
}

func TestChargeServiceValidate(t *testing.T) {
	t.Run("approval records actor without touching the ledger", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		amount, before, after, err := f.card.ApplyCharge(dec("5"), dec("10"))
		require.NoError(t, err)
		charge := transaction.NewCharge(f.card.ID, time.Now(), "08:30:00", dec("5"), amount,
			before, after, nil, "", "", "", uuid.New(), false)
		actor := uuid.New()

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)
		f.chargeRepo.On("Save", mock.Anything, charge).Return(nil)

		resp, err := f.service.Validate(context.Background(), charge.ID, true, actor, "")
		require.NoError(t, err)

		assert.Equal(t, "validada", resp.Status)
		assert.Equal(t, actor, *resp.ValidatedByID)
		assert.True(t, dec("50").Equal(f.card.MonetaryBalance), "approval must not touch balances")
		f.cardRepo.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("rejection reverses the ledger effect", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		amount, before, after, err := f.card.ApplyCharge(dec("2"), dec("10"))
		require.NoError(t, err) // card at {80, 2}
		charge := transaction.NewCharge(f.card.ID, time.Now(), "08:30:00", dec("2"), amount,
			before, after, nil, "", "", "", uuid.New(), false)

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, f.card.ID).Return(f.card, nil)
		f.chargeRepo.On("Save", mock.Anything, charge).Return(nil)
		f.cardRepo.On("Save", mock.Anything, f.card).Return(nil)

		resp, err := f.service.Validate(context.Background(), charge.ID, false, uuid.New(), "bad odometer")
		require.NoError(t, err)

		assert.Equal(t, "rechazada", resp.Status)
		assert.Equal(t, "bad odometer", *resp.RejectionReason)
		assert.True(t, dec("100").Equal(f.card.MonetaryBalance))
		assert.True(t, f.card.FuelQuantity.IsZero())
	})

	t.Run("rejection without reason fails before any mutation", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		amount, before, after, err := f.card.ApplyCharge(dec("2"), dec("10"))
		require.NoError(t, err)
		charge := transaction.NewCharge(f.card.ID, time.Now(), "08:30:00", dec("2"), amount,
			before, after, nil, "", "", "", uuid.New(), false)

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)
		f.cardRepo.On("FindByIDForUpdate", mock.Anything, f.card.ID).Return(f.card, nil)

		_, err = f.service.Validate(context.Background(), charge.ID, false, uuid.New(), "")
		assert.ErrorIs(t, err, transaction.ErrRejectionReasonRequired)
		assert.True(t, dec("80").Equal(f.card.MonetaryBalance), "failed rejection must not reverse")
	})

	t.Run("second validate fails ALREADY_PROCESSED", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		amount, before, after, err := f.card.ApplyCharge(dec("5"), dec("10"))
		require.NoError(t, err)
		charge := transaction.NewCharge(f.card.ID, time.Now(), "08:30:00", dec("5"), amount,
			before, after, nil, "", "", "", uuid.New(), false)

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)
		f.chargeRepo.On("Save", mock.Anything, charge).Return(nil)

		_, err = f.service.Validate(context.Background(), charge.ID, true, uuid.New(), "")
		require.NoError(t, err)

		_, err = f.service.Validate(context.Background(), charge.ID, true, uuid.New(), "")
		assert.ErrorIs(t, err, transaction.ErrAlreadyProcessed)
		assert.True(t, dec("50").Equal(f.card.MonetaryBalance))
	})
}

func TestChargeServiceDelete(t *testing.T) {
	newRejected := func(f *chargeFixture) *transaction.Charge {
		charge := transaction.NewCharge(f.card.ID, time.Now(), "08:30:00", dec("5"), dec("50"),
			fuelcard.Snapshot{MonetaryBalance: dec("100"), FuelQuantity: dec("0")},
			fuelcard.Snapshot{MonetaryBalance: dec("50"), FuelQuantity: dec("5")},
			nil, "", "", "", uuid.New(), false)
		if err := charge.Reject(uuid.New(), "bad odometer"); err != nil {
			panic(err)
		}
		return charge
	}

	t.Run("soft-deletes a rejected charge with reason", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		charge := newRejected(f)

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)
		f.chargeRepo.On("SoftDelete", mock.Anything, charge).Return(nil)

		err := f.service.Delete(context.Background(), charge.ID, "duplicate entry")
		require.NoError(t, err)
		assert.Equal(t, "duplicate entry", *charge.DeletionReason)
	})

	t.Run("pending charge cannot be deleted", func(t *testing.T) {
		f := newChargeFixture(t, "100", "0", "10")
		charge := transaction.NewCharge(f.card.ID, time.Now(), "08:30:00", dec("5"), dec("50"),
			fuelcard.Snapshot{}, fuelcard.Snapshot{}, nil, "", "", "", uuid.New(), false)

		f.chargeRepo.On("FindByID", mock.Anything, charge.ID).Return(charge, nil)

		err := f.service.Delete(context.Background(), charge.ID, "oops")
		assert.ErrorIs(t, err, transaction.ErrInvalidStateForDeletion)
		f.chargeRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})
}
