/**
 * @description
 * Error taxonomy shared across the store, ledger, token and service layers.
 * Handlers map these to HTTP status codes; anything not in this set is
 * reported to the caller as a generic internal error.
 */
package domain

import "errors"

var (
	// ErrDuplicate is returned on a uniqueness violation (phone or email).
	ErrDuplicate = errors.New("user already exists")

	// ErrNotFound is returned when a referenced account does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidCredentials is the uniform login failure. It deliberately
	// does not distinguish an unknown phone from a wrong password.
	ErrInvalidCredentials = errors.New("invalid phone or password")

	// ErrInvalidToken covers every session token rejection: bad signature,
	// malformed token, or expiry. Callers never learn which.
	ErrInvalidToken = errors.New("invalid token")

	// OTP ledger errors.
	ErrOTPNotRequested = errors.New("no OTP requested")
	ErrOTPExpired      = errors.New("OTP expired")
	ErrOTPMismatch     = errors.New("invalid OTP")
)

// ValidationError reports malformed caller input with a user-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
