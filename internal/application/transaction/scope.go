package transaction

import (
	"context"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/transaction"
)

// TransactionScope provides transactional access to the ledger repositories.
// Every ledger-mutating lifecycle operation runs inside Execute: the card row
// lock taken by CardRepo().FindByIDForUpdate is held until the enclosing
// database transaction commits or rolls back, making read-check-mutate one
// critical section per card.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one database
// transaction.
type TransactionalRepositories interface {
	// CardRepo returns the fuel card repository scoped to the current transaction
	CardRepo() fuelcard.CardRepository
	// ChargeRepo returns the charge repository scoped to the current transaction
	ChargeRepo() transaction.ChargeRepository
	// WithdrawalRepo returns the withdrawal repository scoped to the current transaction
	WithdrawalRepo() transaction.WithdrawalRepository
}

// NoOpTransactionScope runs the function without a real transaction. Used in
// service tests where the repositories are mocks.
type NoOpTransactionScope struct {
	cardRepo       fuelcard.CardRepository
	chargeRepo     transaction.ChargeRepository
	withdrawalRepo transaction.WithdrawalRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	cardRepo fuelcard.CardRepository,
	chargeRepo transaction.ChargeRepository,
	withdrawalRepo transaction.WithdrawalRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		cardRepo:       cardRepo,
		chargeRepo:     chargeRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CardRepo returns the fuel card repository.
func (s *NoOpTransactionScope) CardRepo() fuelcard.CardRepository {
	return s.cardRepo
}

// ChargeRepo returns the charge repository.
func (s *NoOpTransactionScope) ChargeRepo() transaction.ChargeRepository {
	return s.chargeRepo
}

// WithdrawalRepo returns the withdrawal repository.
func (s *NoOpTransactionScope) WithdrawalRepo() transaction.WithdrawalRepository {
	return s.withdrawalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
