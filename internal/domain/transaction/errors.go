package transaction

import "github.com/fleet/backend/internal/domain/shared"

// Domain errors for the transaction lifecycle
var (
	ErrTransactionNotFound      = shared.NewDomainError("TRANSACTION_NOT_FOUND", "transaction not found")
	ErrCardImmutable            = shared.NewDomainError("CARD_IMMUTABLE", "a transaction cannot be moved to a different card")
	ErrAlreadyProcessed         = shared.NewDomainError("ALREADY_PROCESSED", "transaction has already been validated or rejected")
	ErrInvalidStateForDeletion  = shared.NewDomainError("INVALID_STATE_FOR_DELETION", "only rejected transactions can be deleted")
	ErrAlreadyDeleted           = shared.NewDomainError("ALREADY_DELETED", "transaction has already been deleted")
	ErrRejectionReasonRequired  = shared.NewDomainError("VALIDATION_INPUT", "a rejection reason is required when rejecting")
	ErrDeletionReasonRequired   = shared.NewDomainError("VALIDATION_INPUT", "a deletion reason is required")
	ErrUpdateRequiresPending    = shared.NewDomainError("ALREADY_PROCESSED", "only pending transactions can be updated")
)
