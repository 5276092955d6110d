package domain

// User represents a registered account. PasswordHash is never exposed
// outside the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Identity is the authenticated caller derived from a validated token.
type Identity struct {
	ID       int64
	Username string
}
