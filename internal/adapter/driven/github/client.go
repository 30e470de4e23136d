// Package github implements the ProfileSource port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/adminpanel/internal/domain/model"
	"github.com/ericfisherdev/adminpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProfileSource = (*Client)(nil)

// Client fetches public GitHub user profiles.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github, authenticated with token when it is non-empty
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Used by tests to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchProfile retrieves the public profile of login. A missing user maps to
// driven.ErrProfileNotFound.
func (c *Client) FetchProfile(ctx context.Context, login string) (*model.ExternalProfile, error) {
	user, resp, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("user %s: %w", login, driven.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("getting user %s: %w", login, err)
	}

	logRateLimit(resp, login)

	return mapUser(user), nil
}

func logRateLimit(resp *gh.Response, login string) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", "users/"+login,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// mapUser uses the GetXxx() helpers so missing fields come back empty.
func mapUser(u *gh.User) *model.ExternalProfile {
	return &model.ExternalProfile{
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		Bio:       u.GetBio(),
		AvatarURL: u.GetAvatarURL(),
		Company:   u.GetCompany(),
		Location:  u.GetLocation(),
	}
}
