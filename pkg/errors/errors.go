package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrUnauthorized
	ErrConflict
	ErrIntegrity
	ErrInternal
)

// Reserved keys in a field error map for errors that are not tied to one field.
const (
	MessageKey       = "message"
	NonFieldErrorKey = "non_field_errors"
	DetailKey        = "detail"
)

// FieldErrors maps a field name to every message reported for it.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Merge copies every message of other into f.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		f[field] = append(f[field], msgs...)
	}
}

// Fill copies the messages of other for fields f does not report yet.
func (f FieldErrors) Fill(other FieldErrors) {
	for field, msgs := range other {
		if _, ok := f[field]; !ok {
			f[field] = append([]string(nil), msgs...)
		}
	}
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// AppError represents an application error
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Fields  FieldErrors `json:"fields,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Body is the JSON payload written for the error.
func (e *AppError) Body() interface{} {
	switch e.Code {
	case ErrValidation, ErrConflict:
		if !e.Fields.Empty() {
			return e.Fields
		}
		return FieldErrors{MessageKey: {e.Message}}
	case ErrNotFound, ErrUnauthorized:
		return map[string]string{DetailKey: e.Message}
	default:
		return map[string]string{DetailKey: "internal server error"}
	}
}

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: "Not found.",
		Err:     wrapResource(resource, err),
	}
}

func NewValidation(fields FieldErrors) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: "invalid input",
		Fields:  fields,
	}
}

func NewConflict(fields FieldErrors, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: "conflict",
		Fields:  fields,
		Err:     err,
	}
}

// NewIntegrity reports a broken relational reference at the storage layer.
// It never carries user-facing detail.
func NewIntegrity(err error) *AppError {
	return &AppError{
		Code:    ErrIntegrity,
		Message: "integrity fault",
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func Validation(fields FieldErrors) *AppError {
	return NewValidation(fields)
}

// ValidationMessage builds a validation error with a single message under field.
func ValidationMessage(field, message string) *AppError {
	return NewValidation(FieldErrors{field: {message}})
}

func Conflict(fields FieldErrors, err error) *AppError {
	return NewConflict(fields, err)
}

func Integrity(err error) *AppError {
	return NewIntegrity(err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "Authentication credentials were not provided.",
		Err:     err,
	}
}

// As extracts an *AppError from anywhere in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an *AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func wrapResource(resource string, err error) error {
	if err == nil {
		return fmt.Errorf("%s not found", resource)
	}
	return fmt.Errorf("%s not found: %w", resource, err)
}
