// Package apperror defines the application error type used across all
// services and handlers. Services return *AppError values; handlers map them
// to HTTP status codes and a uniform JSON body without inspecting the cause.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError for status-code mapping.
type ErrorType int

const (
	UnknownError ErrorType = iota
	DatabaseError
	ConfigError
	AuthError
	ForbiddenError
	NotFoundError
	ValidationError
	BadRequestError
	InternalError
	ConflictError
)

// AppError carries a classified, user-presentable message plus the wrapped cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
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

// StatusCode maps the error type to the HTTP status a handler should write.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, ConfigError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError of the given type wrapping an optional cause.
func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewDatabaseError(message string, err error) *AppError   { return New(DatabaseError, message, err) }
func NewConfigError(message string, err error) *AppError     { return New(ConfigError, message, err) }
func NewAuthError(message string, err error) *AppError       { return New(AuthError, message, err) }
func NewForbiddenError(message string, err error) *AppError  { return New(ForbiddenError, message, err) }
func NewNotFoundError(message string, err error) *AppError   { return New(NotFoundError, message, err) }
func NewValidationError(message string, err error) *AppError { return New(ValidationError, message, err) }
func NewBadRequestError(message string, err error) *AppError { return New(BadRequestError, message, err) }
func NewInternalError(message string, err error) *AppError   { return New(InternalError, message, err) }
func NewConflictError(message string, err error) *AppError   { return New(ConflictError, message, err) }

// ErrorResponse is the JSON body written for any failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"a description of the error"`
}

// ToResponse renders the error for clients. Only the message is exposed;
// the wrapped cause stays in logs.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError converts any error to an *AppError, wrapping unclassified errors
// as internal so handlers never leak raw error text.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("internal server error", err)
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}
