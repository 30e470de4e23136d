package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

func TestCredentialRepo_SetAndGet(t *testing.T) {
	repo := newTestCredentialRepo(t, setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "github", "ghp_abc123"))

	val, err := repo.Get(ctx, "github")
	require.NoError(t, err)
	assert.Equal(t, "ghp_abc123", val)
}

func TestCredentialRepo_GetMissing(t *testing.T) {
	repo := newTestCredentialRepo(t, setupTestDB(t))

	val, err := repo.Get(context.Background(), "github")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestCredentialRepo_SetOverwrites(t *testing.T) {
	repo := newTestCredentialRepo(t, setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "github", "old-value"))
	require.NoError(t, repo.Set(ctx, "github", "new-value"))

	val, err := repo.Get(ctx, "github")
	require.NoError(t, err)
	assert.Equal(t, "new-value", val)

	creds, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, creds, 1)
}

func TestCredentialRepo_List(t *testing.T) {
	repo := newTestCredentialRepo(t, setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "slack", "xoxb"))
	require.NoError(t, repo.Set(ctx, "github", "ghp_abc"))

	creds, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 2)

	assert.Equal(t, "github", creds[0].Service)
	assert.Equal(t, "ghp_abc", creds[0].Value)
	assert.Equal(t, "slack", creds[1].Service)
	assert.False(t, creds[1].UpdatedAt.IsZero())
}

func TestCredentialRepo_Delete(t *testing.T) {
	repo := newTestCredentialRepo(t, setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "github", "ghp_abc"))
	require.NoError(t, repo.Delete(ctx, "github"))
	require.NoError(t, repo.Delete(ctx, "github"), "deleting twice is not an error")

	val, err := repo.Get(ctx, "github")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestCredentialRepo_StoredValueIsEncrypted(t *testing.T) {
	db := setupTestDB(t)
	repo := newTestCredentialRepo(t, db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "github", "ghp_plaintext"))

	var raw string
	require.NoError(t, db.Reader.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE service = ?`, "github").Scan(&raw))
	assert.NotContains(t, raw, "ghp_plaintext")
}

func TestCredentialRepo_WrongKeyCannotOpen(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, newTestCredentialRepo(t, db).Set(ctx, "github", "ghp_abc"))

	other, err := NewCredentialRepo(db, DeriveCredentialKey("rotated"))
	require.NoError(t, err)

	_, err = other.Get(ctx, "github")
	assert.Error(t, err)
}

func TestCredentialRepo_NoKey(t *testing.T) {
	db := setupTestDB(t)
	repo, err := NewCredentialRepo(db, DeriveCredentialKey(""))
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Set(ctx, "github", "x"), driven.ErrEncryptionKeyNotSet)

	_, err = repo.Get(ctx, "github")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	assert.NoError(t, repo.Delete(ctx, "github"))
}

func TestNewCredentialRepo_BadKeyLength(t *testing.T) {
	_, err := NewCredentialRepo(setupTestDB(t), []byte("short"))
	assert.Error(t, err)
}
