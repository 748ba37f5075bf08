package shared

import "errors"

var (
	// ErrMissingField indicates a required request field was empty or absent.
	ErrMissingField = errors.New("missing required field")
	// ErrDuplicateUser indicates the email or CPF is already registered.
	ErrDuplicateUser = errors.New("email or cpf already registered")
	// ErrUserNotFound indicates no account matched the login identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredential indicates a password mismatch.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
)
