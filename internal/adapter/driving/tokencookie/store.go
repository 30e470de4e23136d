// Package tokencookie keeps the credential token in an HTTP cookie named
// after model.TokenKey. It is the only code that touches that cookie.
package tokencookie

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*Store)(nil)

// Store is a TokenStore bound to one request/response pair. Writes are
// reflected in later reads on the same Store, so a guard check that purges
// the token sees the empty slot afterwards.
type Store struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	written bool
	value   string
}

// New returns a Store for the given request. secure marks the cookie Secure.
func New(w http.ResponseWriter, r *http.Request, secure bool) *Store {
	return &Store{w: w, r: r, secure: secure}
}

// Get returns the stored token, or "" when the slot is empty.
func (s *Store) Get(_ context.Context) (string, error) {
	if s.written {
		return s.value, nil
	}
	c, err := s.r.Cookie(model.TokenKey)
	if err != nil {
		return "", nil
	}
	return c.Value, nil
}

// Set stores token. The cookie lives for the browser session; the token's
// own exp claim decides validity.
func (s *Store) Set(_ context.Context, token string) error {
	http.SetCookie(s.w, s.cookie(token, 0))
	s.written, s.value = true, token
	return nil
}

// Clear empties the slot. It is safe to call when nothing is stored.
func (s *Store) Clear(_ context.Context) error {
	http.SetCookie(s.w, s.cookie("", -1))
	s.written, s.value = true, ""
	return nil
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     model.TokenKey,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	}
}
