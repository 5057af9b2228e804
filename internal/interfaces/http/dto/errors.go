package dto

import "net/http"

// Transport-level error codes. Domain error codes pass through verbatim;
// these cover failures that never reach the application layer.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request binding/validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a route or resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes (domain and transport) to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Transport errors
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	// Missing resources -> 404
	"NOT_FOUND":             http.StatusNotFound,
	"CARD_NOT_FOUND":        http.StatusNotFound,
	"FUEL_TYPE_NOT_FOUND":   http.StatusNotFound,
	"TRANSACTION_NOT_FOUND": http.StatusNotFound,

	// Invalid input -> 400
	"VALIDATION_INPUT": http.StatusBadRequest,

	// Business rule violations -> 422
	"PRICE_UNDEFINED":            http.StatusUnprocessableEntity,
	"INSUFFICIENT_FUNDS":         http.StatusUnprocessableEntity,
	"INSUFFICIENT_FUEL":          http.StatusUnprocessableEntity,
	"MAX_BALANCE_EXCEEDED":       http.StatusUnprocessableEntity,
	"MONTHLY_LIMIT_EXCEEDED":     http.StatusUnprocessableEntity,
	"DAILY_LIMIT_EXCEEDED":       http.StatusUnprocessableEntity,
	"INVALID_STATE_FOR_DELETION": http.StatusUnprocessableEntity,

	// State conflicts -> 409
	"CARD_IMMUTABLE":        http.StatusConflict,
	"ALREADY_PROCESSED":     http.StatusConflict,
	"ALREADY_DELETED":       http.StatusConflict,
	"CARD_HAS_TRANSACTIONS": http.StatusConflict,
	"CARD_NUMBER_EXISTS":    http.StatusConflict,
	"CONCURRENCY_ERROR":     http.StatusConflict,

	// Auth
	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
