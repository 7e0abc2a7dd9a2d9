// Package errors provides structured error types for modelgraph.
//
// Every failure the model surfaces is unrecoverable at the point where it is
// raised: configuration runs once, in a single pass, and a failure means a
// rule author made a mistake. The codes let callers (and tests) tell those
// mistakes apart without matching on message text.
//
// # Error Codes
//
//   - UNREGISTRABLE_TYPE: no registry can create the requested type
//   - UNVIEWABLE_PROJECTION: no projection on a node matches a requested type
//   - TYPE_MISMATCH: a declared projection type does not accept the backing value
//   - CONFIGURATION_FAILED: a deferred configuration action returned an error
//   - MUTATION_NOT_ALLOWED: a container was mutated from its own configuration
//   - DUPLICATE_CHILD / NOT_FOUND / INVALID_INPUT: structural misuse
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnviewableProjection, "no projection of '%s' found", t)
//	if errors.Is(err, errors.ErrCodeUnviewableProjection) {
//	    // programmer error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfigurationFailed, cause, "configuring %s", name)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidModelFile Code = "INVALID_MODEL_FILE"

	// Structural errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeDuplicateChild Code = "DUPLICATE_CHILD"

	// Typing errors
	ErrCodeUnregistrableType    Code = "UNREGISTRABLE_TYPE"
	ErrCodeUnviewableProjection Code = "UNVIEWABLE_PROJECTION"
	ErrCodeTypeMismatch         Code = "TYPE_MISMATCH"

	// Configuration errors
	ErrCodeConfigurationFailed Code = "CONFIGURATION_FAILED"
	ErrCodeMutationNotAllowed  Code = "MUTATION_NOT_ALLOWED"

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
// Only the outermost *Error in the chain is considered, so a configuration
// failure caused by a type mismatch reports CONFIGURATION_FAILED. Use [Has]
// to search the whole chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in err's chain carries the given code.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
