package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same business code, so errors built with
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors never reach the store.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrInvalidRating = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RATING",
		"stars must be between 1 and 5",
		"",
	)

	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"quantity must be at least 1",
		"",
	)

	ErrMissingIdentity = NewBaseError(
		http.StatusBadRequest,
		"MISSING_IDENTITY",
		"client identity is required",
		"",
	)

	// Lookup errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"product not found",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	ErrSyncNotReady = NewBaseError(
		http.StatusServiceUnavailable,
		"SYNC_NOT_READY",
		"data is still loading",
		"",
	)

	// Collaborator failures
	ErrImageUploadFailed = NewBaseError(
		http.StatusBadGateway,
		"IMAGE_UPLOAD_FAILED",
		"image upload failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"operator token required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)
)

// StoreWriteError reports a failed write to the realtime store, implementing the AppError interface
type StoreWriteError struct {
	err     error
	details string
}

// NewStoreWriteError creates a store write error
func NewStoreWriteError(err error, details string) AppError {
	return &StoreWriteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreWriteError) Error() string {
	return errors.Wrap(e.err, "store write failed: "+e.details).Error()
}

// Unwrap exposes the store error so callers can match on it
func (e *StoreWriteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreWriteError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *StoreWriteError) ErrorCode() string {
	return "STORE_WRITE_FAILED"
}

// Message returns the user-friendly error message
func (e *StoreWriteError) Message() string {
	return "could not save changes, please retry"
}

// Details returns detailed error information
func (e *StoreWriteError) Details() string {
	return e.details
}

// IsValidation reports whether err is a validation error raised before any write.
func IsValidation(err error) bool {
	return errors.IsAny(err, ErrValidationFailed, ErrInvalidRating, ErrInvalidQuantity, ErrMissingIdentity)
}

// IsStoreWrite reports whether err is a failed store write.
func IsStoreWrite(err error) bool {
	var writeErr *StoreWriteError

	return errors.As(err, &writeErr)
}
