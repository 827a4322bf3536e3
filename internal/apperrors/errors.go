// Package apperrors provides a structured error type shared across vitals'
// components, distinguishing configuration, environment, transient, and
// internal failures per the error handling policy.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors.
const (
	ErrConfiguration = "CONFIGURATION" // unknown option, malformed theme entry
	ErrEnvironment   = "ENVIRONMENT"   // no TTY, missing procfs, permission denied
	ErrTransient     = "TRANSIENT"     // a per-process file vanished mid-scan
	ErrInternal      = "INTERNAL"      // state table inconsistency, overflow
)

// Error is a structured error with a code, a user-facing message, an
// optional remediation suggestion, and an optional wrapped cause.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// Wrap wraps an existing error with a message, defaulting to ErrInternal.
func Wrap(err error, message string) *Error {
	return &Error{Code: ErrInternal, Message: message, Cause: err}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s", e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, "\n  %s", e.Cause.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s", e.Suggestion)
	}
	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
