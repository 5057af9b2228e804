package shared

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) DomainError {
	return DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...interface{}) DomainError {
	return DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "entity not found")
	ErrInvalidInput     = NewDomainError("VALIDATION_INPUT", "invalid input")
	ErrConcurrencyError = NewDomainError("CONCURRENCY_ERROR", "concurrent modification detected")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "unauthorized access")
	ErrForbidden        = NewDomainError("FORBIDDEN", "operation not allowed")
)
