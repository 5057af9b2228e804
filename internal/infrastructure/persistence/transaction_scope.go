package persistence

import (
	"context"

	apptransaction "github.com/fleet/backend/internal/application/transaction"
	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/transaction"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application TransactionScope using GORM
// transactions. Repositories handed to the callback share one database
// transaction, so a FindByIDForUpdate row lock stays held until commit or
// rollback.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptransaction.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// CardRepo returns the fuel card repository scoped to the current transaction
func (r *gormTransactionalRepositories) CardRepo() fuelcard.CardRepository {
	return NewGormCardRepository(r.tx)
}

// ChargeRepo returns the charge repository scoped to the current transaction
func (r *gormTransactionalRepositories) ChargeRepo() transaction.ChargeRepository {
	return NewGormChargeRepository(r.tx)
}

// WithdrawalRepo returns the withdrawal repository scoped to the current transaction
func (r *gormTransactionalRepositories) WithdrawalRepo() transaction.WithdrawalRepository {
	return NewGormWithdrawalRepository(r.tx)
}

var _ apptransaction.TransactionScope = (*GormTransactionScope)(nil)
var _ apptransaction.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
