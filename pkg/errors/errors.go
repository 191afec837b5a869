// Package errors provides structured error types for bmpedit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the codec, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Decode failures carry one of the format codes (INVALID_MAGIC,
// UNSUPPORTED_COLOR_DEPTH, UNSUPPORTED_COMPRESSION, TRUNCATED_FILE,
// INVALID_DIMENSIONS). File mapping failures carry IO_ERROR with the
// operating system error as the cause.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMagic, "missing BM signature")
//	if errors.Is(err, errors.ErrCodeInvalidMagic) {
//	    // Not a bitmap
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "map %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Bitmap format errors
	ErrCodeInvalidMagic           Code = "INVALID_MAGIC"
	ErrCodeUnsupportedColorDepth  Code = "UNSUPPORTED_COLOR_DEPTH"
	ErrCodeUnsupportedCompression Code = "UNSUPPORTED_COMPRESSION"
	ErrCodeTruncatedFile          Code = "TRUNCATED_FILE"
	ErrCodeInvalidDimensions      Code = "INVALID_DIMENSIONS"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeUnknownTransform Code = "UNKNOWN_TRANSFORM"

	// File system errors
	ErrCodeIO Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsFormat reports whether err is one of the bitmap format codes, i.e. the
// input bytes were rejected by the decoder rather than by the environment.
func IsFormat(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidMagic, ErrCodeUnsupportedColorDepth,
		ErrCodeUnsupportedCompression, ErrCodeTruncatedFile,
		ErrCodeInvalidDimensions:
		return true
	}
	return false
}
