// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for FishEye.

It provides a rich error type that bridges the gap between low-level catalog
and storage errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable Code and user-friendly messages.
  - Taxonomy: NOT_FOUND, UNRECOGNIZED_MEDIA_KIND, ALREADY_INITIALIZED,
    AMBIGUOUS_MATCH and FETCH_FAILED cover the catalog's failure modes.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeNotFound              = "NOT_FOUND"
	CodeUnrecognizedMediaKind = "UNRECOGNIZED_MEDIA_KIND"
	CodeAlreadyInitialized    = "ALREADY_INITIALIZED"
	CodeAmbiguousMatch        = "AMBIGUOUS_MATCH"
	CodeFetchFailed           = "FETCH_FAILED"
	CodeValidation            = "VALIDATION_ERROR"
	CodeRateLimited           = "RATE_LIMITED"
	CodeInternal              = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the FishEye API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., source URLs).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "FETCH_FAILED").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Photographer") // Returns "Photographer not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// AlreadyInitialized creates a 409 [AppError] for a store that was populated twice.
func AlreadyInitialized(resource string) *AppError {
	return &AppError{
		Code:       CodeAlreadyInitialized,
		Message:    resource + " is already initialized",
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Data Integrity Errors (5xx)

// UnrecognizedMediaKind creates a 500 [AppError] for a media record whose
// filename extension maps to neither an image nor a video.
func UnrecognizedMediaKind(mediaID int, filename string) *AppError {
	return &AppError{
		Code:       CodeUnrecognizedMediaKind,
		Message:    fmt.Sprintf("Media %d: cannot infer image or video from filename %q", mediaID, filename),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// AmbiguousMatch creates a 500 [AppError] for a supposedly unique key that
// matched more than one record.
func AmbiguousMatch(resource string, matches int, key string) *AppError {
	return &AppError{
		Code:       CodeAmbiguousMatch,
		Message:    fmt.Sprintf("%s %s matched %d records", resource, key, matches),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// # Upstream Errors

// FetchFailed creates a 502 [AppError] for a transport or parse failure of
// the source document. The cause is kept for logging.
func FetchFailed(source string, cause error) *AppError {
	return &AppError{
		Code:       CodeFetchFailed,
		Message:    "Unable to load catalog from " + source,
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
