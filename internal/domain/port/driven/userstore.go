// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"
	"time"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

// Sentinel errors returned by UserStore implementations.
var (
	// ErrUserNotFound indicates no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another account already uses the email address.
	ErrEmailTaken = errors.New("email already registered")
)

// UserStore defines the driven port for account persistence.
// Emails are stored normalized (see model.NormalizeEmail).
type UserStore interface {
	// Create inserts a new user. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user model.User) error
	// GetByID returns ErrUserNotFound when no user has the ID.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail returns ErrUserNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Update replaces the profile fields of an existing user.
	Update(ctx context.Context, user model.User) error
	// Count returns the number of users created at or after since.
	// A zero since counts every user.
	Count(ctx context.Context, since time.Time) (int, error)
	// CountLinked returns the number of users with a GitHub login.
	CountLinked(ctx context.Context) (int, error)
	// ListRecent returns the newest users, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.User, error)
}
