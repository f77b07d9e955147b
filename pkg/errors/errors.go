// Package errors provides structured error types for pydocs.
//
// This package defines error codes and types that enable:
//   - Consistent classification of fetch, lookup and configuration failures
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// Error kinds that live in other packages (fetch failures, missing tags) report
// their code through the [Coder] interface, so [CodeOf] works on any error chain.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown mode: %s", mode)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidFilename Code = "INVALID_FILENAME"

	// Retrieval and extraction errors
	ErrCodeFetchFailed         Code = "FETCH_FAILED"
	ErrCodeTagNotFound         Code = "TAG_NOT_FOUND"
	ErrCodeVersionListNotFound Code = "VERSION_LIST_NOT_FOUND"

	// Cache errors
	ErrCodeCache Code = "CACHE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Coder is implemented by error types that carry an error code without being
// an *Error themselves.
type Coder interface {
	Code() Code
}

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
// It unwraps the error chain looking for an *Error or a [Coder] with a matching code.
func Is(err error, code Code) bool {
	for err != nil {
		if c := codeOf(err); c == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// CodeOf extracts the outermost error code from an error chain, if available.
// Returns empty string if no error in the chain carries a code.
func CodeOf(err error) Code {
	for err != nil {
		if c := codeOf(err); c != "" {
			return c
		}
		err = errors.Unwrap(err)
	}
	return ""
}

func codeOf(err error) Code {
	switch e := err.(type) {
	case *Error:
		return e.Code
	case Coder:
		return e.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// When err itself is an *Error, returns its message (and cause) without the
// code prefix. Wrapped errors keep their full text so that added context
// is not lost.
func UserMessage(err error) string {
	if e, ok := err.(*Error); ok {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
