package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors used across the application. Handlers never switch on
// error strings; they mark errors with one of these and the HTTP layer
// maps them to status codes.
var (
	ErrNotFound            = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists       = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation          = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation    = new(ErrCodeInvalidOperation, "invalid operation")
	ErrInsufficientBalance = new(ErrCodeInsufficientBalance, "insufficient point balance")
	ErrPermissionDenied    = new(ErrCodePermissionDenied, "permission denied")
	ErrDatabase            = new(ErrCodeDatabase, "database error")
	ErrInternal            = new(ErrCodeInternal, "internal error")

	statusCodeMap = map[error]int{
		ErrNotFound:            http.StatusNotFound,
		ErrAlreadyExists:       http.StatusConflict,
		ErrValidation:          http.StatusBadRequest,
		ErrInvalidOperation:    http.StatusBadRequest,
		ErrInsufficientBalance: http.StatusBadRequest,
		ErrPermissionDenied:    http.StatusForbidden,
		ErrDatabase:            http.StatusInternalServerError,
		ErrInternal:            http.StatusInternalServerError,
	}
)

const (
	ErrCodeNotFound            = "not_found"
	ErrCodeAlreadyExists       = "already_exists"
	ErrCodeValidation          = "validation_error"
	ErrCodeInvalidOperation    = "invalid_operation"
	ErrCodeInsufficientBalance = "insufficient_balance"
	ErrCodePermissionDenied    = "permission_denied"
	ErrCodeDatabase            = "database_error"
	ErrCodeInternal            = "internal_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches wrapped errors by code so sentinel comparison works through
// arbitrary wrapping.
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsInsufficientBalance checks if an error is an insufficient balance error
func IsInsufficientBalance(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
