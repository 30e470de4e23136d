package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

// Sign-in and sign-up errors. Handlers show their messages verbatim.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailInvalid       = errors.New("a valid email address is required")
)

const (
	// DefaultTokenTTL is the lifetime of tokens minted on sign-in.
	DefaultTokenTTL = 24 * time.Hour

	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes; reject it instead of truncating silently.
	maxPasswordLength = 72
)

// tokenClaims is the payload of tokens minted by AuthService.
type tokenClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// SignUpInput carries the sign-up form.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// AuthService creates accounts, signs users in by writing a credential token
// to a TokenStore, and signs them out by clearing it.
type AuthService struct {
	users      driven.UserStore
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
	logger     *slog.Logger
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithAuthClock replaces time.Now for token timestamps.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithBcryptCost overrides bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.bcryptCost = cost }
}

// NewAuthService creates an AuthService signing tokens with secret (HS256).
// A non-positive ttl falls back to DefaultTokenTTL.
func NewAuthService(users driven.UserStore, secret []byte, ttl time.Duration, logger *slog.Logger, opts ...AuthOption) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &AuthService{
		users:      users,
		secret:     secret,
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp validates the form, creates the account and signs the new user in.
func (s *AuthService) SignUp(ctx context.Context, store driven.TokenStore, in SignUpInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := model.NormalizeEmail(in.Email)

	switch {
	case name == "":
		return nil, ErrNameRequired
	case !looksLikeEmail(email):
		return nil, ErrEmailInvalid
	case len(in.Password) < minPasswordLength || len(in.Password) > maxPasswordLength:
		return nil, ErrWeakPassword
	case in.Password != in.Confirm:
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user signed up", "user_id", user.ID)

	if err := s.issue(ctx, store, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn checks the password and stores a fresh token. Unknown emails and
// wrong passwords both return ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, store driven.TokenStore, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, model.NormalizeEmail(email))
	if errors.Is(err, driven.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.issue(ctx, store, *user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed in", "user_id", user.ID)
	return user, nil
}

// Logout clears the stored token whatever its state.
func (s *AuthService) Logout(ctx context.Context, store driven.TokenStore) error {
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// CurrentUser resolves the user a token was minted for. It returns (nil, nil)
// for tokens that were not signed by this service or whose user no longer
// exists, so opaque-but-unexpired tokens still render as a guest.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if errors.Is(err, driven.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up user %s: %w", claims.Subject, err)
	}
	return user, nil
}

// MintToken returns a signed token for user.
func (s *AuthService) MintToken(user model.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name: user.DisplayName(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) issue(ctx context.Context, store driven.TokenStore, user model.User) error {
	token, err := s.MintToken(user)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func looksLikeEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
