// Package protocol defines the wire types and error taxonomy shared by the pmsrp packages.
package protocol

import (
	"errors"
	"fmt"
)

// ErrorCode represents a standardized error code reported to callers.
type ErrorCode string

// Error codes.
const (
	// ErrCodeModulusAuthentication indicates the signed modulus failed verification.
	ErrCodeModulusAuthentication ErrorCode = "MODULUS_AUTHENTICATION_FAILED"
	// ErrCodeProtocolViolation indicates the server sent values that violate SRP constraints.
	ErrCodeProtocolViolation ErrorCode = "PROTOCOL_VIOLATION"
	// ErrCodeMalformedInput indicates an input could not be decoded or has the wrong shape.
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"
	// ErrCodeInternal indicates an unexpected local failure (entropy, encoding).
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors. Packages wrap these with fmt.Errorf("...: %w", ...) and
// callers classify them with errors.Is.
var (
	// ErrModulusAuthentication is returned when the modulus signature is missing,
	// invalid, or not made by the pinned key.
	ErrModulusAuthentication = errors.New("modulus authentication failed")

	// ErrProtocolViolation is returned when server values are out of range.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrMalformedInput is returned for undecodable or wrongly sized input.
	ErrMalformedInput = errors.New("malformed input")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewErrorWithDetails creates a new ErrorResponse with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewModulusAuthenticationError creates a modulus authentication error.
func NewModulusAuthenticationError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeModulusAuthentication, "Modulus signature verification failed", details)
}

// NewProtocolViolationError creates a protocol violation error.
func NewProtocolViolationError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeProtocolViolation, "Invalid challenge", details)
}

// NewMalformedInputError creates a malformed input error.
func NewMalformedInputError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeMalformedInput, "Malformed input", details)
}

// NewInternalError creates an internal error.
func NewInternalError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInternal, "Internal error", details)
}

// FromError classifies err into an ErrorResponse. A nil error yields nil and an
// error that already is an ErrorResponse is returned unchanged.
func FromError(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	var resp *ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}

	switch {
	case errors.Is(err, ErrModulusAuthentication):
		return NewModulusAuthenticationError(err.Error())
	case errors.Is(err, ErrProtocolViolation):
		return NewProtocolViolationError(err.Error())
	case errors.Is(err, ErrMalformedInput):
		return NewMalformedInputError(err.Error())
	default:
		return NewInternalError(err.Error())
	}
}
