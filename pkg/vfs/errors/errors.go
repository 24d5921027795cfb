// Package errors provides error types and error codes for the vfs package.
// This is a leaf package with no internal dependencies, designed to be
// imported by both the kv boundary and the store backends without causing
// circular imports.
//
// Import graph: errors <- kv <- backends <- vfs
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents the type of error that occurred.
type ErrorCode int

const (
	// ErrConfig indicates a required construction parameter is missing or
	// invalid. Fatal, surfaced immediately, never retried.
	ErrConfig ErrorCode = iota + 1

	// ErrConnection indicates the backend engine could not be opened or the
	// open completed without yielding a usable session.
	ErrConnection

	// ErrNotFound indicates no record exists at the exact key. Expected
	// control-flow signal, recoverable by the caller.
	ErrNotFound

	// ErrTransaction indicates a transaction-level store failure.
	ErrTransaction

	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument

	// ErrIsDirectory indicates the operation is not valid on a directory.
	ErrIsDirectory
)

// String returns a human-readable name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrConfig:
		return "Config"
	case ErrConnection:
		return "Connection"
	case ErrNotFound:
		return "NotFound"
	case ErrTransaction:
		return "Transaction"
	case ErrInvalidArgument:
		return "InvalidArgument"
	case ErrIsDirectory:
		return "IsDirectory"
	default:
		return fmt.Sprintf("Unknown(%d)", e)
	}
}

// StoreError represents a vfs error with an error code.
type StoreError struct {
	Code    ErrorCode
	Message string
	Path    string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path: %s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped low-level error, if any.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// ============================================================================
// Factory Functions
// ============================================================================

// NewConfigError creates a Config error for a missing or invalid parameter.
func NewConfigError(message string) *StoreError {
	return &StoreError{
		Code:    ErrConfig,
		Message: message,
	}
}

// NewConnectionError creates a Connection error wrapping the engine failure.
func NewConnectionError(message string, err error) *StoreError {
	return &StoreError{
		Code:    ErrConnection,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a NotFound error for the given path.
func NewNotFoundError(path string) *StoreError {
	return &StoreError{
		Code:    ErrNotFound,
		Message: "no such file",
		Path:    path,
	}
}

// NewTransactionError creates a Transaction error wrapping the store failure.
func NewTransactionError(message string, err error) *StoreError {
	return &StoreError{
		Code:    ErrTransaction,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgumentError creates an InvalidArgument error.
func NewInvalidArgumentError(message string) *StoreError {
	return &StoreError{
		Code:    ErrInvalidArgument,
		Message: message,
	}
}

// NewIsDirectoryError creates an IsDirectory error for the given path.
func NewIsDirectoryError(path string) *StoreError {
	return &StoreError{
		Code:    ErrIsDirectory,
		Message: "is a directory",
		Path:    path,
	}
}

// ============================================================================
// Error Type Checking Helpers
// ============================================================================

// IsNotFound returns true if the error is a NotFound error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrNotFound)
}

// IsConfig returns true if the error is a Config error.
func IsConfig(err error) bool {
	return hasCode(err, ErrConfig)
}

// IsConnection returns true if the error is a Connection error.
func IsConnection(err error) bool {
	return hasCode(err, ErrConnection)
}

// IsTransaction returns true if the error is a Transaction error.
func IsTransaction(err error) bool {
	return hasCode(err, ErrTransaction)
}

func hasCode(err error, code ErrorCode) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code == code
	}
	return false
}
