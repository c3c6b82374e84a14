// Package errors provides the application-level error type returned across
// the use case boundary. Each ErrorType maps to exactly one HTTP status so
// transports can render distinct feedback per failure kind.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the kind of failure
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation_error"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeForbidden         ErrorType = "forbidden"
	ErrorTypeIllegalTransition ErrorType = "illegal_transition"
	ErrorTypeNotRenewable      ErrorType = "not_renewable"
	ErrorTypeInvalidMenuData   ErrorType = "invalid_menu_data"
	ErrorTypeConflict          ErrorType = "conflict"
	ErrorTypeUnauthorized      ErrorType = "unauthorized"
	ErrorTypeInternal          ErrorType = "internal_error"
)

var statusCodes = map[ErrorType]int{
	ErrorTypeValidation:        http.StatusBadRequest,
	ErrorTypeNotFound:          http.StatusNotFound,
	ErrorTypeForbidden:         http.StatusForbidden,
	ErrorTypeIllegalTransition: http.StatusConflict,
	ErrorTypeNotRenewable:      http.StatusConflict,
	ErrorTypeInvalidMenuData:   http.StatusUnprocessableEntity,
	ErrorTypeConflict:          http.StatusConflict,
	ErrorTypeUnauthorized:      http.StatusUnauthorized,
	ErrorTypeInternal:          http.StatusInternalServerError,
}

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the domain error the AppError was built from, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

func newAppError(t ErrorType, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    statusCodes[t],
		Details: detail,
	}
}

// Wrap builds an AppError of the given type that keeps err as its cause.
func Wrap(t ErrorType, message string, err error) *AppError {
	appErr := newAppError(t, message, nil)
	if err != nil {
		appErr.Details = err.Error()
		appErr.cause = err
	}
	return appErr
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, message, details)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, message, details)
}

func NewIllegalTransitionError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeIllegalTransition, message, details)
}

func NewNotRenewableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotRenewable, message, details)
}

func NewInvalidMenuDataError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidMenuData, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, message, details)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, message, details)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsNotFoundError(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

func IsConflictError(err error) bool {
	return IsType(err, ErrorTypeConflict)
}
