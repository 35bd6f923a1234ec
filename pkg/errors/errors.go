// Package errors provides structured error types for the name tag engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - ASSET_UNAVAILABLE: A QR image, font or signature image could not be loaded
//   - NETWORK_*: Network-related errors
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFontSize, "font size %v out of range", size)
//	if errors.Is(err, errors.ErrCodeInvalidFontSize) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAssetUnavailable, origErr, "load font %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidCardID      Code = "INVALID_CARD_ID"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidMode        Code = "INVALID_MODE"
	ErrCodeInvalidFontFamily  Code = "INVALID_FONT_FAMILY"
	ErrCodeInvalidFontSize    Code = "INVALID_FONT_SIZE"
	ErrCodeInvalidLineSpacing Code = "INVALID_LINE_SPACING"
	ErrCodeInvalidMessage     Code = "INVALID_MESSAGE"
	ErrCodeInvalidGeometry    Code = "INVALID_GEOMETRY"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidVariant     Code = "INVALID_VARIANT"
	ErrCodeInvalidBanner      Code = "INVALID_BANNER"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeCardNotFound Code = "CARD_NOT_FOUND"

	// Degradable asset errors
	ErrCodeAssetUnavailable Code = "ASSET_UNAVAILABLE"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is any of the not-found codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeCardNotFound:
		return true
	}
	return false
}

// IsValidation reports whether err was produced by input validation.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidCardID, ErrCodeInvalidFormat, ErrCodeInvalidMode,
		ErrCodeInvalidFontFamily, ErrCodeInvalidFontSize, ErrCodeInvalidLineSpacing,
		ErrCodeInvalidMessage, ErrCodeInvalidGeometry, ErrCodeInvalidConfig,
		ErrCodeInvalidVariant, ErrCodeInvalidBanner:
		return true
	}
	return false
}
