package driven

import "context"

// TokenStore is the sole owner of the persisted credential token slot
// (model.TokenKey). The session guard and the logout action both go through
// it so encoding and deletion stay in one place.
type TokenStore interface {
	// Get returns the stored token, or "" when the slot is empty.
	Get(ctx context.Context) (string, error)
	// Set replaces the stored token.
	Set(ctx context.Context, token string) error
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}
