package transaction

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
)

// ChargeService orchestrates the charge lifecycle. Every mutating operation
// runs inside the transaction scope and starts by locking the card row, so
// constraint checks and balance mutations form one critical section per card.
type ChargeService struct {
	scope        TransactionScope
	chargeRepo   transaction.ChargeRepository
	fuelTypeRepo fuelcard.FuelTypeRepository
}

// NewChargeService creates a new ChargeService
func NewChargeService(
	scope TransactionScope,
	chargeRepo transaction.ChargeRepository,
	fuelTypeRepo fuelcard.FuelTypeRepository,
) *ChargeService {
	return &ChargeService{
		scope:        scope,
		chargeRepo:   chargeRepo,
		fuelTypeRepo: fuelTypeRepo,
	}
}

func cardNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return fuelcard.ErrCardNotFound
	}
	return err
}

func chargeNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return transaction.ErrTransactionNotFound
	}
	return err
}

// resolvePrice loads the card's fuel type and returns its unit price.
func (s *ChargeService) resolvePrice(ctx context.Context, fuelTypeID uuid.UUID) (*fuelcard.FuelType, error) {
	fuelType, err := s.fuelTypeRepo.FindByID(ctx, fuelTypeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fuelcard.ErrFuelTypeNotFound
		}
		return nil, err
	}
	if !fuelType.HasPrice() {
		return nil, fuelcard.ErrPriceUndefined
	}
	return fuelType, nil
}

// Create registers a new charge: locks the card, applies the ledger effect
// and persists the pending record atomically.
func (s *ChargeService) Create(ctx context.Context, input CreateTransactionInput) (*ChargeResponse, error) {
	var created *transaction.Charge

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		card, err := repos.CardRepo().FindByIDForUpdate(ctx, input.CardID)
		if err != nil {
			return cardNotFound(err)
		}

		fuelType, err := s.resolvePrice(ctx, card.FuelTypeID)
		if err != nil {
			return err
		}

		amount, before, after, err := card.ApplyCharge(input.Quantity, fuelType.Price)
		if err != nil {
			return err
		}

		charge := transaction.NewCharge(
			card.ID,
			input.Date, input.Time,
			input.Quantity, amount,
			before, after,
			input.Odometer,
			input.Place, input.Reason, input.ChipNumber,
			input.RegisteredByID,
			input.AutoReviewed,
		)

		if err := repos.ChargeRepo().Save(ctx, charge); err != nil {
			return err
		}
		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		created = charge
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toChargeResponse(created), nil
}

// Update edits a pending charge: reverses the old ledger effect, recomputes
// the amount at the current price, re-runs the creation checks against the
// reverted card and applies the new effect, all under one card lock.
func (s *ChargeService) Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*ChargeResponse, error) {
	var updated *transaction.Charge

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		charge, err := repos.ChargeRepo().FindByID(ctx, id)
		if err != nil {
			return chargeNotFound(err)
		}
		if err := charge.CanUpdate(); err != nil {
			return err
		}
		if input.CardID != nil && *input.CardID != charge.FuelCardID {
			return transaction.ErrCardImmutable
		}

		card, err := repos.CardRepo().FindByIDForUpdate(ctx, charge.FuelCardID)
		if err != nil {
			return cardNotFound(err)
		}

		fuelType, err := s.resolvePrice(ctx, card.FuelTypeID)
		if err != nil {
			return err
		}

		card.ReverseCharge(charge.Quantity, charge.Amount)
		amount, before, after, err := card.ApplyCharge(input.Quantity, fuelType.Price)
		if err != nil {
			return err
		}

		charge.ApplyEdit(
			input.Date, input.Time,
			input.Quantity, amount,
			before, after,
			input.Odometer,
			input.Place, input.Reason, input.ChipNumber,
		)

		if err := repos.ChargeRepo().Save(ctx, charge); err != nil {
			return err
		}
		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		updated = charge
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toChargeResponse(updated), nil
}

// Validate approves or rejects a pending charge. Rejection reverses the
// ledger effect; approval leaves the ledger untouched.
func (s *ChargeService) Validate(ctx context.Context, id uuid.UUID, approve bool, actorID uuid.UUID, rejectionReason string) (*ChargeResponse, error) {
	var validated *transaction.Charge

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		charge, err := repos.ChargeRepo().FindByID(ctx, id)
		if err != nil {
			return chargeNotFound(err)
		}

		if approve {
			if err := charge.Approve(actorID); err != nil {
				return err
			}
			if err := repos.ChargeRepo().Save(ctx, charge); err != nil {
				return err
			}
			validated = charge
			return nil
		}

		card, err := repos.CardRepo().FindByIDForUpdate(ctx, charge.FuelCardID)
		if err != nil {
			return cardNotFound(err)
		}
		if err := charge.Reject(actorID, rejectionReason); err != nil {
			return err
		}
		card.ReverseCharge(charge.Quantity, charge.Amount)

		if err := repos.ChargeRepo().Save(ctx, charge); err != nil {
			return err
		}
		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		validated = charge
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toChargeResponse(validated), nil
}

// Delete soft-deletes a rejected charge, recording the reason. The ledger
// effect was already reversed at rejection time and is not touched again.
func (s *ChargeService) Delete(ctx context.Context, id uuid.UUID, reason string) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		charge, err := repos.ChargeRepo().FindByID(ctx, id)
		if err != nil {
			return chargeNotFound(err)
		}
		if err := charge.MarkDeleted(reason); err != nil {
			return err
		}
		return repos.ChargeRepo().SoftDelete(ctx, charge)
	})
}

// GetByID returns a single charge.
func (s *ChargeService) GetByID(ctx context.Context, id uuid.UUID) (*ChargeResponse, error) {
	charge, err := s.chargeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, chargeNotFound(err)
	}
	return toChargeResponse(charge), nil
}

// List returns charges matching the filter with a total count.
func (s *ChargeService) List(ctx context.Context, filter ListFilter) (shared.Paginated[*ChargeResponse], error) {
	domainFilter := filter.toDomain()

	charges, err := s.chargeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[*ChargeResponse]{}, err
	}
	total, err := s.chargeRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[*ChargeResponse]{}, err
	}

	responses := make([]*ChargeResponse, 0, len(charges))
	for _, c := range charges {
		responses = append(responses, toChargeResponse(c))
	}
	return shared.NewPaginated(responses, total, domainFilter.Filter), nil
}
