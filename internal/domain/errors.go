package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginInFlight      = errors.New("a login attempt is already in flight")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrValidation         = errors.New("validation failed")
)
