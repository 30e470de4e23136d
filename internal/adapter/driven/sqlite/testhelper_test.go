package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a migrated in-memory database unique to the running test.
// cache=shared lets the reader and writer pools see the same data.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	// Writer first so the shared database stays alive while the reader opens.
	writer, err := open(context.Background(), dsn, 1)
	require.NoError(t, err)
	reader, err := open(context.Background(), dsn, maxReaders)
	require.NoError(t, err)

	db := &DB{Writer: writer, Reader: reader, path: dsn}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db.Writer))
	return db
}

// newTestCredentialRepo returns a repo with a fixed encryption key.
func newTestCredentialRepo(t *testing.T, db *DB) *CredentialRepo {
	t.Helper()
	repo, err := NewCredentialRepo(db, DeriveCredentialKey("test-secret"))
	require.NoError(t, err)
	return repo
}
