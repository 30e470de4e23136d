// Package application contains the use-case services: the session guard,
// authentication, profile import and dashboard metrics.
package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

// Timing defaults for the session guard.
const (
	DefaultLoadingDelay       = time.Second
	DefaultRevalidateInterval = 5 * time.Minute
)

// SessionGuard derives the authentication flag from the credential token and
// keeps it fresh. It never verifies signatures: a token is valid when its
// payload decodes and its numeric exp claim is not in the past.
type SessionGuard struct {
	logger       *slog.Logger
	loadingDelay time.Duration
	interval     time.Duration
	now          func() time.Time
	parser       *jwt.Parser
}

// GuardOption customizes a SessionGuard.
type GuardOption func(*SessionGuard)

// WithGuardClock replaces time.Now for expiry comparisons.
func WithGuardClock(now func() time.Time) GuardOption {
	return func(g *SessionGuard) { g.now = now }
}

// NewSessionGuard creates a guard. Non-positive durations fall back to
// DefaultLoadingDelay and DefaultRevalidateInterval.
func NewSessionGuard(logger *slog.Logger, loadingDelay, interval time.Duration, opts ...GuardOption) *SessionGuard {
	if loadingDelay <= 0 {
		loadingDelay = DefaultLoadingDelay
	}
	if interval <= 0 {
		interval = DefaultRevalidateInterval
	}

	g := &SessionGuard{
		logger:       logger,
		loadingDelay: loadingDelay,
		interval:     interval,
		now:          time.Now,
		parser:       jwt.NewParser(jwt.WithPaddingAllowed()),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoadingDelay returns the one-shot loading gate duration.
func (g *SessionGuard) LoadingDelay() time.Duration { return g.loadingDelay }

// RevalidateInterval returns the recurring check interval.
func (g *SessionGuard) RevalidateInterval() time.Duration { return g.interval }

// Inspect classifies token without touching storage. Claims are only
// populated for TokenValid and TokenExpired.
func (g *SessionGuard) Inspect(token string) (model.TokenVerdict, model.TokenClaims) {
	if token == "" {
		return model.TokenMissing, model.TokenClaims{}
	}

	claims, err := g.decodePayload(token)
	if err != nil {
		return model.TokenMalformed, model.TokenClaims{}
	}

	// exp is compared in milliseconds as a float so that zero, negative and
	// out-of-range values keep their numeric order.
	exp, ok := claims["exp"].(float64)
	if !ok {
		return model.TokenMalformed, model.TokenClaims{}
	}
	expMillis := exp * 1000

	tc := model.TokenClaims{ExpiresAt: expiryTime(expMillis)}
	tc.Subject, _ = claims.GetSubject()
	if name, ok := claims["name"].(string); ok {
		tc.Name = name
	}

	if expMillis < float64(g.now().UnixMilli()) {
		return model.TokenExpired, tc
	}
	return model.TokenValid, tc
}

var (
	minExpiry = time.Unix(0, 0).UTC()
	maxExpiry = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// expiryTime converts exp milliseconds to a time clamped to
// [minExpiry, maxExpiry]. Only the reported claim is clamped; the verdict
// uses the raw value.
func expiryTime(millis float64) time.Time {
	switch {
	case millis <= float64(minExpiry.UnixMilli()):
		return minExpiry
	case millis >= float64(maxExpiry.UnixMilli()):
		return maxExpiry
	default:
		return time.UnixMilli(int64(millis)).UTC()
	}
}

// CheckTokenValidity reads the token from store and reports whether it grants
// access. Malformed and expired tokens are cleared from the store. A read
// failure counts as unauthenticated but leaves the slot untouched.
func (g *SessionGuard) CheckTokenValidity(ctx context.Context, store driven.TokenStore) bool {
	token, err := store.Get(ctx)
	if err != nil {
		g.logger.Warn("read credential token", "error", err)
		return false
	}

	verdict, _ := g.Inspect(token)
	if verdict.Purge() {
		if err := store.Clear(ctx); err != nil {
			g.logger.Warn("clear credential token", "verdict", verdict, "error", err)
		}
	}

	g.logger.Debug("credential token checked", "verdict", verdict)
	return verdict.Authenticated()
}

// Watch runs the guard for the lifetime of one mounted view. It checks the
// token once, then emits the state on every change: when the loading gate
// elapses and whenever a revalidation flips the flag. Both timers are released
// when ctx is cancelled. emit is only called from the calling goroutine.
func (g *SessionGuard) Watch(ctx context.Context, store driven.TokenStore, emit func(model.SessionState)) {
	state := model.SessionState{
		Loading:       true,
		Authenticated: g.CheckTokenValidity(ctx, store),
	}
	emit(state)

	gate := time.NewTimer(g.loadingDelay)
	defer gate.Stop()

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		next := state

		select {
		case <-ctx.Done():
			return
		case <-gate.C:
			next.Loading = false
		case <-ticker.C:
			next.Authenticated = g.CheckTokenValidity(ctx, store)
		}

		if next != state {
			state = next
			emit(state)
		}
	}
}

// decodePayload decodes the middle segment of a three-part token into a
// claims map. Any structural, encoding or JSON error is reported as-is.
func (g *SessionGuard) decodePayload(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, jwt.ErrTokenMalformed
	}

	// Accept the standard alphabet as well; browsers decode tokens with atob.
	segment := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])

	raw, err := g.parser.DecodeSegment(segment)
	if err != nil {
		return nil, err
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}
