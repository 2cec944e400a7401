// Package errors provides domain-specific error types for podnet.
//
// This package defines structured errors with error codes, making it easier to handle
// and test different error conditions consistently across the application.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeValidation indicates a pre-flight validation error. The
	// operation never started and no state was mutated.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeStore indicates a configuration store failure (load, save or
	// apply). The operation must be treated as failed in an unknown state.
	ErrCodeStore ErrorCode = "STORE_ERROR"

	// ErrCodeService indicates a service control failure (e.g. restarting
	// the DNS resolver). These are downgraded to warnings by callers.
	ErrCodeService ErrorCode = "SERVICE_ERROR"

	// ErrCodeDevice indicates a network device layer error.
	ErrCodeDevice ErrorCode = "DEVICE_ERROR"

	// ErrCodeConfig indicates a podnet configuration file error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// NewStoreError creates a new configuration store error.
func NewStoreError(message string, cause error) *Error {
	return Wrap(ErrCodeStore, message, cause)
}

// NewServiceError creates a new service control error.
func NewServiceError(message string, cause error) *Error {
	return Wrap(ErrCodeService, message, cause)
}

// NewDeviceError creates a new network device layer error.
func NewDeviceError(message string, cause error) *Error {
	return Wrap(ErrCodeDevice, message, cause)
}

// NewConfigError creates a new configuration file error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
