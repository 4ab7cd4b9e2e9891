// Package errors provides unified error handling for the taskhive service.
// It implements a structured error type with a closed set of error codes and
// HTTP status mapping, propagated as explicit values through every call boundary.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// --- Token errors ---

// MissingToken indicates no bearer token was found in the request.
func MissingToken() *AppError {
	return &AppError{
		Code: ErrCodeMissingToken, Message: "Authentication token is missing.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken indicates a malformed, badly signed, or expired token.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid or expired token.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// WrongTokenType indicates a token of the wrong type was presented.
// The message names both the actual and the expected type.
func WrongTokenType(actual, expected string) *AppError {
	return &AppError{
		Code:       ErrCodeWrongTokenType,
		Message:    fmt.Sprintf("Wrong token type: %q when %q was expected.", actual, expected),
		HTTPStatus: http.StatusUnauthorized,
		Details:    map[string]any{"actual": actual, "expected": expected},
	}
}

// UnknownSubject indicates the token subject does not resolve to an identity.
func UnknownSubject() *AppError {
	return &AppError{
		Code: ErrCodeUnknownSubject, Message: "User not found.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// --- Credential errors ---

// InvalidCredentials covers both unknown email and bad password so the
// response does not disclose which check failed.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: "Invalid email or password.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// DuplicateEmail indicates the email is already registered.
func DuplicateEmail() *AppError {
	return &AppError{
		Code: ErrCodeDuplicateEmail, Message: "Email is already registered.",
		HTTPStatus: http.StatusConflict,
	}
}

// --- Throttling ---

// RateLimited indicates the caller exceeded the request budget for the window.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please wait a moment and try again.",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// --- Collaborator and generic errors ---

// StoreUnavailable indicates a backing store call failed. It is distinct from
// authentication failures and must never be masked as one.
func StoreUnavailable(cause error) *AppError {
	return &AppError{
		Code: ErrCodeStoreUnavailable, Message: "Storage is temporarily unavailable. Please try again.",
		HTTPStatus: http.StatusServiceUnavailable, Cause: cause,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// Forbidden creates a new AppError for forbidden access.
func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return &AppError{
		Code: ErrCodeForbidden, Message: reason,
		HTTPStatus: http.StatusForbidden,
	}
}

// InvalidInput creates a new AppError for a request that fails shape validation.
func InvalidInput(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: reason,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// Internal creates a new AppError for an unexpected server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
