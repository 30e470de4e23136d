package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

// Profile errors.
var (
	ErrProfileImportDisabled = errors.New("profile import is not available")
	ErrLoginRequired         = errors.New("a GitHub username is required")
	ErrFieldTooLong          = errors.New("field is too long")
)

const (
	maxNameLength  = 80
	maxTitleLength = 80
	maxBioLength   = 4000
)

// SourceFactory builds a profile source for a token. An empty token means
// anonymous access.
type SourceFactory func(token string) driven.ProfileSource

// ProfileService reads and edits the signed-in user's profile, imports
// public profiles from GitHub and manages the GitHub token used to do so.
type ProfileService struct {
	users       driven.UserStore
	credentials driven.CredentialStore
	provider    *ProfileSourceProvider
	newSource   SourceFactory
	now         func() time.Time
	logger      *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(
	users driven.UserStore,
	credentials driven.CredentialStore,
	provider *ProfileSourceProvider,
	newSource SourceFactory,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		users:       users,
		credentials: credentials,
		provider:    provider,
		newSource:   newSource,
		now:         time.Now,
		logger:      logger,
	}
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return user, nil
}

// Update replaces the editable profile fields.
func (s *ProfileService) Update(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.User, error) {
	name := strings.TrimSpace(upd.Name)
	title := strings.TrimSpace(upd.Title)
	bio := strings.TrimSpace(upd.Bio)

	switch {
	case name == "":
		return nil, ErrNameRequired
	case utf8.RuneCountInString(name) > maxNameLength,
		utf8.RuneCountInString(title) > maxTitleLength,
		utf8.RuneCountInString(bio) > maxBioLength:
		return nil, ErrFieldTooLong
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Title = title
	user.Bio = bio
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("update profile %s: %w", userID, err)
	}
	return user, nil
}

// ImportGitHub copies name, bio and avatar from the public GitHub profile of
// login. Empty remote fields keep the local value.
func (s *ProfileService) ImportGitHub(ctx context.Context, userID, login string) (*model.User, error) {
	login = strings.TrimPrefix(strings.TrimSpace(login), "@")
	if login == "" {
		return nil, ErrLoginRequired
	}

	source := s.provider.Get()
	if source == nil {
		return nil, ErrProfileImportDisabled
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	remote, err := source.FetchProfile(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("fetch github profile %s: %w", login, err)
	}

	if remote.Name != "" {
		user.Name = remote.Name
	}
	if remote.Bio != "" {
		user.Bio = remote.Bio
	}
	if remote.AvatarURL != "" {
		user.AvatarURL = remote.AvatarURL
	}
	if remote.Company != "" && user.Title == "" {
		user.Title = remote.Company
	}
	user.GitHubLogin = remote.Login
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("save imported profile %s: %w", userID, err)
	}

	s.logger.Info("github profile imported", "user_id", userID, "login", remote.Login)
	return user, nil
}

// SetGitHubToken stores token encrypted and swaps the live profile source.
// An empty token deletes the stored one and falls back to anonymous access.
func (s *ProfileService) SetGitHubToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)

	if token == "" {
		if err := s.credentials.Delete(ctx, model.CredentialServiceGitHub); err != nil {
			return fmt.Errorf("delete github token: %w", err)
		}
		s.provider.Replace(s.newSource(""), false)
		s.logger.Info("github token removed")
		return nil
	}

	if err := s.credentials.Set(ctx, model.CredentialServiceGitHub, token); err != nil {
		return fmt.Errorf("store github token: %w", err)
	}
	s.provider.Replace(s.newSource(token), true)
	s.logger.Info("github token updated")
	return nil
}

// RestoreGitHubToken loads a previously stored token into the provider. It
// is called once at startup; a missing key or token leaves anonymous access.
func (s *ProfileService) RestoreGitHubToken(ctx context.Context) error {
	token, err := s.credentials.Get(ctx, model.CredentialServiceGitHub)
	if errors.Is(err, driven.ErrEncryptionKeyNotSet) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load github token: %w", err)
	}
	if token != "" {
		s.provider.Replace(s.newSource(token), true)
	}
	return nil
}

// StoredCredentials lists the stored credentials with their values blanked.
// Without an encryption key nothing can be stored, so the list is empty.
func (s *ProfileService) StoredCredentials(ctx context.Context) ([]model.Credential, error) {
	creds, err := s.credentials.List(ctx)
	if errors.Is(err, driven.ErrEncryptionKeyNotSet) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	for i := range creds {
		creds[i].Value = ""
	}
	return creds, nil
}

// ImportAvailable reports whether a profile source is configured.
func (s *ProfileService) ImportAvailable() bool {
	return s.provider.HasSource()
}

// GitHubAuthenticated reports whether profile import uses a stored token.
func (s *ProfileService) GitHubAuthenticated() bool {
	return s.provider.Authenticated()
}
