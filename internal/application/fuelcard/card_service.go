package fuelcard

import (
	"context"
	"errors"

	apptransaction "github.com/fleet/backend/internal/application/transaction"
	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
)

// CardService handles fuel-card CRUD with the cross-field invariant checks.
// Balance mutations never go through here; they belong to the charge and
// withdrawal services.
type CardService struct {
	scope          apptransaction.TransactionScope
	cardRepo       fuelcard.CardRepository
	fuelTypeRepo   fuelcard.FuelTypeRepository
	chargeRepo     transaction.ChargeRepository
	withdrawalRepo transaction.WithdrawalRepository
}

// NewCardService creates a new CardService
func NewCardService(
	scope apptransaction.TransactionScope,
	cardRepo fuelcard.CardRepository,
	fuelTypeRepo fuelcard.FuelTypeRepository,
	chargeRepo transaction.ChargeRepository,
	withdrawalRepo transaction.WithdrawalRepository,
) *CardService {
	return &CardService{
		scope:          scope,
		cardRepo:       cardRepo,
		fuelTypeRepo:   fuelTypeRepo,
		chargeRepo:     chargeRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// Create registers a new fuel card after checking number uniqueness and the
// cross-field rules.
func (s *CardService) Create(ctx context.Context, input CreateCardInput) (*CardResponse, error) {
	existing, err := s.cardRepo.FindByNumber(ctx, input.Number)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fuelcard.ErrCardNumberExists
	}

	if _, err := s.fuelTypeRepo.FindByID(ctx, input.FuelTypeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fuelcard.ErrFuelTypeNotFound
		}
		return nil, err
	}

	card, err := fuelcard.NewFuelCard(
		input.Number,
		input.ExpirationDate,
		input.MonetaryBalance, input.FuelQuantity,
		input.MaxBalance, input.MonthlyConsumptionLimit, input.DailyConsumptionLimit,
		input.DriverID, input.CompanyID, input.FuelTypeID,
	)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.Save(ctx, card); err != nil {
		return nil, err
	}
	return toCardResponse(card), nil
}

// Update edits card metadata and limits under the card row lock so the
// cross-field checks see a stable month-to-date consumption.
func (s *CardService) Update(ctx context.Context, id uuid.UUID, input UpdateCardInput) (*CardResponse, error) {
	var updated *fuelcard.FuelCard

	err := s.scope.Execute(ctx, func(repos apptransaction.TransactionalRepositories) error {
		card, err := repos.CardRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fuelcard.ErrCardNotFound
			}
			return err
		}

		if input.FuelTypeID != card.FuelTypeID {
			if _, err := s.fuelTypeRepo.FindByID(ctx, input.FuelTypeID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return fuelcard.ErrFuelTypeNotFound
				}
				return err
			}
		}

		if err := card.UpdateLimits(input.MaxBalance, input.MonthlyConsumptionLimit, input.DailyConsumptionLimit); err != nil {
			return err
		}
		card.ExpirationDate = input.ExpirationDate
		card.Active = input.Active
		card.DriverID = input.DriverID
		card.FuelTypeID = input.FuelTypeID

		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCardResponse(updated), nil
}

// Delete removes a card that has no registered transactions.
func (s *CardService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cardRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fuelcard.ErrCardNotFound
		}
		return err
	}

	charges, err := s.chargeRepo.CountByCard(ctx, id)
	if err != nil {
		return err
	}
	withdrawals, err := s.withdrawalRepo.CountByCard(ctx, id)
	if err != nil {
		return err
	}
	if charges > 0 || withdrawals > 0 {
		return fuelcard.ErrCardHasTransactions
	}
	return s.cardRepo.Delete(ctx, id)
}

// GetByID returns a single card.
func (s *CardService) GetByID(ctx context.Context, id uuid.UUID) (*CardResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fuelcard.ErrCardNotFound
		}
		return nil, err
	}
	return toCardResponse(card), nil
}

// List returns cards matching the filter with a total count.
func (s *CardService) List(ctx context.Context, filter CardListFilter) (shared.Paginated[*CardResponse], error) {
	domainFilter := fuelcard.CardFilter{
		Filter:    shared.DefaultFilter(),
		CompanyID: filter.CompanyID,
		Active:    filter.Active,
	}
	if filter.Limit > 0 {
		domainFilter.Limit = filter.Limit
	}
	domainFilter.Offset = filter.Offset

	cards, err := s.cardRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[*CardResponse]{}, err
	}
	total, err := s.cardRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[*CardResponse]{}, err
	}

	responses := make([]*CardResponse, 0, len(cards))
	for _, c := range cards {
		responses = append(responses, toCardResponse(c))
	}
	return shared.NewPaginated(responses, total, domainFilter.Filter), nil
}

// ListNames returns the id/number pairs used by selection dropdowns.
func (s *CardService) ListNames(ctx context.Context, companyID *uuid.UUID) ([]CardName, error) {
	filter := fuelcard.CardFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
	filter.Limit = 0 // unpaginated

	cards, err := s.cardRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	names := make([]CardName, 0, len(cards))
	for _, c := range cards {
		names = append(names, CardName{ID: c.ID, Number: c.Number})
	}
	return names, nil
}

// GetFuelPrice resolves the card's fuel type and returns its unit price.
func (s *CardService) GetFuelPrice(ctx context.Context, cardID uuid.UUID) (*FuelPriceResponse, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fuelcard.ErrCardNotFound
		}
		return nil, err
	}
	fuelType, err := s.fuelTypeRepo.FindByID(ctx, card.FuelTypeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fuelcard.ErrFuelTypeNotFound
		}
		return nil, err
	}
	return &FuelPriceResponse{
		CardID:        card.ID,
		FuelTypeID:    fuelType.ID,
		FuelTypeName:  fuelType.Name,
		UnitOfMeasure: fuelType.UnitOfMeasure,
		Price:         fuelType.Price,
	}, nil
}

// ResetMonthlyConsumption zeroes the card's month-to-date counter under the
// row lock. Called at month boundaries by an external scheduler or operator.
func (s *CardService) ResetMonthlyConsumption(ctx context.Context, cardID uuid.UUID) (*CardResponse, error) {
	var updated *fuelcard.FuelCard

	err := s.scope.Execute(ctx, func(repos apptransaction.TransactionalRepositories) error {
		card, err := repos.CardRepo().FindByIDForUpdate(ctx, cardID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fuelcard.ErrCardNotFound
			}
			return err
		}
		card.ResetMonthlyConsumption()
		if err := repos.CardRepo().Save(ctx, card); err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCardResponse(updated), nil
}

// FuelTypeService exposes the read-only fuel type reference.
type FuelTypeService struct {
	fuelTypeRepo fuelcard.FuelTypeRepository
}

// NewFuelTypeService creates a new FuelTypeService
func NewFuelTypeService(fuelTypeRepo fuelcard.FuelTypeRepository) *FuelTypeService {
	return &FuelTypeService{fuelTypeRepo: fuelTypeRepo}
}

// List returns all fuel types.
func (s *FuelTypeService) List(ctx context.Context) ([]*FuelTypeResponse, error) {
	fuelTypes, err := s.fuelTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*FuelTypeResponse, 0, len(fuelTypes))
	for _, f := range fuelTypes {
		responses = append(responses, toFuelTypeResponse(f))
	}
	return responses, nil
}

// GetByID returns a single fuel type.
func (s *FuelTypeService) GetByID(ctx context.Context, id uuid.UUID) (*FuelTypeResponse, error) {
	fuelType, err := s.fuelTypeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fuelcard.ErrFuelTypeNotFound
		}
		return nil, err
	}
	return toFuelTypeResponse(fuelType), nil
}
