package usecase

import "errors"

var (
	// ErrIdentityNotFound indicates no identity matches the lookup key
	// (natural id, email, or reset token).
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrInvalidCredentials indicates the password does not match the
	// stored credential.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateIdentity indicates the store rejected a registration
	// because the natural id or email is already taken.
	ErrDuplicateIdentity = errors.New("identity already exists")
)

// ValidationError reports a user-correctable input failure. The message
// is surfaced verbatim to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
