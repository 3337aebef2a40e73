package domain

import "errors"

var (
	// ErrInvalidCredentials covers every login lookup failure. The message is
	// deliberately generic so callers cannot learn which leg of the
	// (email-or-phone, password, role) match failed.
	ErrInvalidCredentials = errors.New("invalid credentials or user not found for this role")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with this email or phone number already exists")

	// ErrSubmitInFlight rejects a signup or login submitted while a previous
	// one on the same controller is still in progress.
	ErrSubmitInFlight = errors.New("a submission is already in progress")

	// ErrSessionNotFound means no usable session exists for a token: the slot
	// is absent, expired, or held a corrupt record that has been discarded.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError is a first-failed-rule message from the credential
// validator. It is always safe to show verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RegistrationError carries the failure message reported by the remote
// registration service, shown to the user verbatim.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string {
	return e.Message
}
