package domain

import "errors"

// Error kinds shared by the service, repository, and transport layers.
// Repositories and services wrap these with fmt.Errorf("...: %w", ...)
// so callers classify with errors.Is while keeping context in the message.
var (
	// ErrNotFound covers a missing resource and, deliberately, a
	// resource owned by another user.
	ErrNotFound = errors.New("resource not found")
	// ErrStore collapses all store-layer faults, including constraint
	// violations, into one kind.
	ErrStore = errors.New("store operation failed")
	// ErrTokenIssuance indicates signing a new token failed.
	ErrTokenIssuance = errors.New("token issuance failed")
	// ErrTokenInvalid indicates a token that failed format or signature
	// checks.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidCredentials unifies unknown-username and wrong-password
	// so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates a missing or malformed credential
	// header, distinct from an invalid token value.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidInput indicates a request value the service rejected
	// before touching the store.
	ErrInvalidInput = errors.New("invalid input")
)
