package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique key (shop email, attendant name) is taken
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller's role may not perform this action
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials indicates a credential mismatch.
	// Callers must not reveal which part of the credential was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenRevoked indicates the token id is present in the revocation ledger
	ErrTokenRevoked = errors.New("token revoked")

	// ErrStore indicates a persistence failure
	ErrStore = errors.New("store error")
)
