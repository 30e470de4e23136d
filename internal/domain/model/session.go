package model

import "time"

// TokenKey is the fixed storage key of the credential token.
const TokenKey = "token"

// SessionState is the view state derived from the credential token.
type SessionState struct {
	// Loading is true until the one-shot loading gate has elapsed.
	Loading bool
	// Authenticated is recomputed on every validity check and never persisted.
	Authenticated bool
}

// ShouldRedirect reports whether the state requires navigation to the
// sign-in page: the flag is false and the loading gate has cleared.
func (s SessionState) ShouldRedirect() bool {
	return !s.Loading && !s.Authenticated
}

// TokenVerdict classifies the outcome of a validity check. It is logged but
// never shown to the user.
type TokenVerdict string

const (
	TokenValid     TokenVerdict = "valid"
	TokenMissing   TokenVerdict = "missing"
	TokenMalformed TokenVerdict = "malformed"
	TokenExpired   TokenVerdict = "expired"
)

// Authenticated reports whether the verdict grants access.
func (v TokenVerdict) Authenticated() bool {
	return v == TokenValid
}

// Purge reports whether the stored token must be deleted after the check.
func (v TokenVerdict) Purge() bool {
	return v == TokenMalformed || v == TokenExpired
}

// TokenClaims is the part of the token payload the dashboard reads.
type TokenClaims struct {
	Subject   string
	Name      string
	ExpiresAt time.Time
}
