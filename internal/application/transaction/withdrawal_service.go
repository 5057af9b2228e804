package transaction

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
)

// WithdrawalService orchestrates the withdrawal lifecycle. Mirrors
// ChargeService, with the fuel-sufficiency and daily-limit checks in place of
// the funds/monthly/max-balance ones.
type WithdrawalService struct {
	scope          TransactionScope
	withdrawalRepo transaction.WithdrawalRepository
	fuelTypeRepo   fuelcard.FuelTypeRepository
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(
	scope TransactionScope,
	withdrawalRepo transaction.WithdrawalRepository,
	fuelTypeRepo fuelcard.FuelTypeRepository,
) *WithdrawalService {
	return &WithdrawalService{
		scope:          scope,
		withdrawalRepo: withdrawalRepo,
		fuelTypeRepo:   fuelTypeRepo,
	}
}

func withdrawalNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return transaction.ErrTransactionNotFound
	}
	return err
}

func (s *WithdrawalService) resolvePrice(ctx context.Context, fuelTypeID uuid.UUID) (*fuelcard.FuelType, error) {
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

// Create registers a new withdrawal. The same-day consumed sum is read inside
// the card's critical section so the daily-limit check cannot race a
// concurrent withdrawal on the same card.
func (s *WithdrawalService) Create(ctx context.Context, input CreateTransactionInput) (*WithdrawalResponse, error) {
	var created *transaction.Withdrawal

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		card, err := repos.CardRepo().FindByIDForUpdate(ctx, input.CardID)
		if err != nil {
			return cardNotFound(err)
		}

		fuelType, err := s.resolvePrice(ctx, card.FuelTypeID)
		if err != nil {
			return err
		}

		dailyConsumed, err := repos.WithdrawalRepo().SumQuantityOnDay(ctx, card.ID, input.Date, nil)
		if err != nil {
			return err
		}

		amount, before, after, err := card.ApplyWithdrawal(input.Quantity, fuelType.Price, dailyConsumed)
		if err != nil {
			return err
		}

		withdrawal := transaction.NewWithdrawal(
			card.ID,
			input.Date, input.Time,
			input.Quantity, amount,
			before, after,
			input.Odometer,
			input.Place, input.Reason, input.ChipNumber,
			input.RegisteredByID,
		)

		if err := repos.WithdrawalRepo().Save(ctx, withdrawal); err != nil {
			return err
		}
		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		created = withdrawal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWithdrawalResponse(created), nil
}

// Update edits a pending withdrawal via revert-then-reapply under one card
// lock. The daily-limit sum excludes the row being edited so its old quantity
// does not count against the new one.
func (s *WithdrawalService) Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*WithdrawalResponse, error) {
	var updated *transaction.Withdrawal

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		withdrawal, err := repos.WithdrawalRepo().FindByID(ctx, id)
		if err != nil {
			return withdrawalNotFound(err)
		}
		if err := withdrawal.CanUpdate(); err != nil {
			return err
		}
		if input.CardID != nil && *input.CardID != withdrawal.FuelCardID {
			return transaction.ErrCardImmutable
		}

		card, err := repos.CardRepo().FindByIDForUpdate(ctx, withdrawal.FuelCardID)
		if err != nil {
			return cardNotFound(err)
		}

		fuelType, err := s.resolvePrice(ctx, card.FuelTypeID)
		if err != nil {
			return err
		}

		dailyConsumed, err := repos.WithdrawalRepo().SumQuantityOnDay(ctx, card.ID, input.Date, &withdrawal.ID)
		if err != nil {
			return err
		}

		card.ReverseWithdrawal(withdrawal.Quantity, withdrawal.Amount)
		amount, before, after, err := card.ApplyWithdrawal(input.Quantity, fuelType.Price, dailyConsumed)
		if err != nil {
			return err
		}

		withdrawal.ApplyEdit(
			input.Date, input.Time,
			input.Quantity, amount,
			before, after,
			input.Odometer,
			input.Place, input.Reason, input.ChipNumber,
		)

		if err := repos.WithdrawalRepo().Save(ctx, withdrawal); err != nil {
			return err
		}
		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		updated = withdrawal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWithdrawalResponse(updated), nil
}

// Validate approves or rejects a pending withdrawal.
func (s *WithdrawalService) Validate(ctx context.Context, id uuid.UUID, approve bool, actorID uuid.UUID, rejectionReason string) (*WithdrawalResponse, error) {
	var validated *transaction.Withdrawal

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		withdrawal, err := repos.WithdrawalRepo().FindByID(ctx, id)
		if err != nil {
			return withdrawalNotFound(err)
		}

		if approve {
			if err := withdrawal.Approve(actorID); err != nil {
				return err
			}
			if err := repos.WithdrawalRepo().Save(ctx, withdrawal); err != nil {
				return err
			}
			validated = withdrawal
			return nil
		}

		card, err := repos.CardRepo().FindByIDForUpdate(ctx, withdrawal.FuelCardID)
		if err != nil {
			return cardNotFound(err)
		}
		if err := withdrawal.Reject(actorID, rejectionReason); err != nil {
			return err
		}
		card.ReverseWithdrawal(withdrawal.Quantity, withdrawal.Amount)

		if err := repos.WithdrawalRepo().Save(ctx, withdrawal); err != nil {
			return err
		}
		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		validated = withdrawal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWithdrawalResponse(validated), nil
}

// Delete soft-deletes a rejected withdrawal with its reason.
func (s *WithdrawalService) Delete(ctx context.Context, id uuid.UUID, reason string) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		withdrawal, err := repos.WithdrawalRepo().FindByID(ctx, id)
		if err != nil {
			return withdrawalNotFound(err)
		}
		if err := withdrawal.MarkDeleted(reason); err != nil {
			return err
		}
		return repos.WithdrawalRepo().SoftDelete(ctx, withdrawal)
	})
}

// GetByID returns a single withdrawal.
func (s *WithdrawalService) GetByID(ctx context.Context, id uuid.UUID) (*WithdrawalResponse, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, withdrawalNotFound(err)
	}
	return toWithdrawalResponse(withdrawal), nil
}

// List returns withdrawals matching the filter with a total count.
func (s *WithdrawalService) List(ctx context.Context, filter ListFilter) (shared.Paginated[*WithdrawalResponse], error) {
	domainFilter := filter.toDomain()

	withdrawals, err := s.withdrawalRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[*WithdrawalResponse]{}, err
	}
	total, err := s.withdrawalRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[*WithdrawalResponse]{}, err
	}

	responses := make([]*WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		responses = append(responses, toWithdrawalResponse(w))
	}
	return shared.NewPaginated(responses, total, domainFilter.Filter), nil
}
