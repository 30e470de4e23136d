package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
)

// ErrProfileNotFound indicates the external service has no such account.
var ErrProfileNotFound = errors.New("external profile not found")

// ProfileSource fetches public profiles from an external service.
type ProfileSource interface {
	FetchProfile(ctx context.Context, login string) (*model.ExternalProfile, error)
}
