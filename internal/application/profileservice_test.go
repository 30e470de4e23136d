package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/adminpanel/internal/application"
	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

type profileFixture struct {
	svc         *application.ProfileService
	users       *mockUserStore
	credentials *mockCredentialStore
	provider    *application.ProfileSourceProvider
	source      *mockProfileSource
	built       []string
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()

	f := &profileFixture{
		users: newMockUserStore(model.User{
			ID:    "u-1",
			Name:  "Thomas Anree",
			Email: "thomas@example.com",
			Title: "UX Designer",
		}),
		credentials: newMockCredentialStore(),
		source: &mockProfileSource{profile: &model.ExternalProfile{
			Login:     "tanree",
			Name:      "Thomas A.",
			Bio:       "Designs things.",
			AvatarURL: "https://avatars.example/u/1",
			Company:   "Acme",
		}},
	}
	f.provider = application.NewProfileSourceProvider(f.source, false)

	factory := func(token string) driven.ProfileSource {
		f.built = append(f.built, token)
		return &mockProfileSource{token: token, profile: f.source.profile}
	}
	f.svc = application.NewProfileService(f.users, f.credentials, f.provider, factory, discardLogger())
	return f
}

func TestProfileService_Update(t *testing.T) {
	f := newProfileFixture(t)

	user, err := f.svc.Update(context.Background(), "u-1", model.ProfileUpdate{
		Name:  " Tom ",
		Title: "Lead Designer",
		Bio:   "**hello**",
	})
	require.NoError(t, err)

	assert.Equal(t, "Tom", user.Name)
	assert.Equal(t, "Lead Designer", f.users.get("u-1").Title)
	assert.Equal(t, "**hello**", f.users.get("u-1").Bio)
	assert.False(t, f.users.get("u-1").UpdatedAt.IsZero())
}

func TestProfileService_Update_Validation(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, "u-1", model.ProfileUpdate{Name: " "})
	assert.ErrorIs(t, err, application.ErrNameRequired)

	_, err = f.svc.Update(ctx, "u-1", model.ProfileUpdate{Name: "x", Bio: strings.Repeat("b", 4001)})
	assert.ErrorIs(t, err, application.ErrFieldTooLong)

	_, err = f.svc.Update(ctx, "missing", model.ProfileUpdate{Name: "x"})
	assert.ErrorIs(t, err, driven.ErrUserNotFound)
}

func TestProfileService_ImportGitHub(t *testing.T) {
	f := newProfileFixture(t)

	user, err := f.svc.ImportGitHub(context.Background(), "u-1", "@tanree")
	require.NoError(t, err)

	assert.Equal(t, []string{"tanree"}, f.source.logins)
	assert.Equal(t, "Thomas A.", user.Name)
	assert.Equal(t, "Designs things.", user.Bio)
	assert.Equal(t, "https://avatars.example/u/1", user.AvatarURL)
	assert.Equal(t, "tanree", f.users.get("u-1").GitHubLogin)
	assert.Equal(t, "UX Designer", user.Title, "existing title is kept")
}

func TestProfileService_ImportGitHub_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("blank login", func(t *testing.T) {
		f := newProfileFixture(t)
		_, err := f.svc.ImportGitHub(ctx, "u-1", "  ")
		assert.ErrorIs(t, err, application.ErrLoginRequired)
	})

	t.Run("no source", func(t *testing.T) {
		f := newProfileFixture(t)
		f.provider.Replace(nil, false)
		_, err := f.svc.ImportGitHub(ctx, "u-1", "tanree")
		assert.ErrorIs(t, err, application.ErrProfileImportDisabled)
	})

	t.Run("remote not found", func(t *testing.T) {
		f := newProfileFixture(t)
		f.source.err = driven.ErrProfileNotFound
		_, err := f.svc.ImportGitHub(ctx, "u-1", "ghost")
		assert.ErrorIs(t, err, driven.ErrProfileNotFound)
		assert.Empty(t, f.users.get("u-1").GitHubLogin)
	})
}

func TestProfileService_SetGitHubToken(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SetGitHubToken(ctx, " ghp_secret "))
	assert.Equal(t, "ghp_secret", f.credentials.values[model.CredentialServiceGitHub])
	assert.True(t, f.svc.GitHubAuthenticated())
	assert.Equal(t, "ghp_secret", f.provider.Get().(*mockProfileSource).token)

	require.NoError(t, f.svc.SetGitHubToken(ctx, ""))
	assert.NotContains(t, f.credentials.values, model.CredentialServiceGitHub)
	assert.False(t, f.svc.GitHubAuthenticated())
	assert.Equal(t, []string{"ghp_secret", ""}, f.built)
}

func TestProfileService_SetGitHubToken_StoreError(t *testing.T) {
	f := newProfileFixture(t)
	f.credentials.setErr = driven.ErrEncryptionKeyNotSet

	err := f.svc.SetGitHubToken(context.Background(), "ghp_secret")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
	assert.Same(t, f.source, f.provider.Get(), "source is not swapped when storing fails")
}

func TestProfileService_RestoreGitHubToken(t *testing.T) {
	f := newProfileFixture(t)
	f.credentials.values[model.CredentialServiceGitHub] = "ghp_stored"

	require.NoError(t, f.svc.RestoreGitHubToken(context.Background()))
	assert.True(t, f.svc.GitHubAuthenticated())
	assert.Equal(t, []string{"ghp_stored"}, f.built)
}

func TestProfileService_RestoreGitHubToken_Empty(t *testing.T) {
	f := newProfileFixture(t)

	require.NoError(t, f.svc.RestoreGitHubToken(context.Background()))
	assert.False(t, f.svc.GitHubAuthenticated())
	assert.Empty(t, f.built)
}

func TestProfileService_ImportAvailable(t *testing.T) {
	f := newProfileFixture(t)
	assert.True(t, f.svc.ImportAvailable())

	f.provider.Replace(nil, false)
	assert.False(t, f.svc.ImportAvailable())
}

func TestProfileService_StoredCredentials(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	creds, err := f.svc.StoredCredentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds)

	require.NoError(t, f.svc.SetGitHubToken(ctx, "ghp_secret"))

	creds, err = f.svc.StoredCredentials(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, model.CredentialServiceGitHub, creds[0].Service)
	assert.Empty(t, creds[0].Value, "values never leave the service")
}

func TestProfileService_StoredCredentials_Errors(t *testing.T) {
	f := newProfileFixture(t)

	f.credentials.listErr = driven.ErrEncryptionKeyNotSet
	creds, err := f.svc.StoredCredentials(context.Background())
	require.NoError(t, err)
	assert.Empty(t, creds)

	f.credentials.listErr = errors.New("disk gone")
	_, err = f.svc.StoredCredentials(context.Background())
	assert.Error(t, err)
}
