package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes storage failures.
	RedisErrorMessage = "storage operation failed"
	// RedisNotFoundMessage is returned when a stored record does not exist.
	RedisNotFoundMessage = "record not found"
	// ValidationErrorMessage is the summary message for rejected input.
	ValidationErrorMessage = "validation failed"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// NotFound marks err as a 404 with the given safe message.
func NotFound(err error, message string) *AppError {
	return New(err, http.StatusNotFound, message)
}

// BadRequest marks err as a 400 with the given safe message.
func BadRequest(err error, message string) *AppError {
	return New(err, http.StatusBadRequest, message)
}

// ValidationError collects per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records msg for field, keeping the first message per field.
func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = map[string]string{}
	}
	if _, ok := v.Fields[field]; ok {
		return
	}
	v.Fields[field] = msg
}

// Empty reports whether no field failed.
func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

// OrNil returns v as an error, or nil when no field failed.
func (v *ValidationError) OrNil() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return ValidationErrorMessage + ": " + strings.Join(parts, ", ")
}

// StatusOf resolves the HTTP status and the user-facing message for err.
// Unknown errors map to 500 with SystemErrorMessage so internals never leak.
func StatusOf(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ValidationErrorMessage
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status, ae.Message
	}
	return http.StatusInternalServerError, SystemErrorMessage
}
