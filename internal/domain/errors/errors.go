package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBadRequest    = errors.New("bad request")
	ErrValidation    = errors.New("validation failed")
)

// Error codes returned to API clients
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError rejects a field value before it is persisted.
// Message is shown to clients verbatim.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets callers match any validation error with errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromValidation converts a validation error into a 400 response error
func FromValidation(v *ValidationError) *AppError {
	appErr := NewAppError(http.StatusBadRequest, CodeValidation, v.Message, v)
	appErr.Field = v.Field
	return appErr
}

// ToAppError maps any error onto an AppError so handlers can respond uniformly
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return FromValidation(validationErr)
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound(ErrNotFound.Error())
	case errors.Is(err, ErrAlreadyExists):
		return Conflict(ErrAlreadyExists.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return BadRequest(err.Error())
	}
	return InternalError(err)
}
