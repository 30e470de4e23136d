// Package config loads application configuration from environment variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from ADMINPANEL_ variables.
type Config struct {
	ListenAddr         string        `env:"ADMINPANEL_LISTEN_ADDR"         envDefault:"127.0.0.1:8080"`
	DBPath             string        `env:"ADMINPANEL_DB_PATH"             envDefault:"adminpanel.db"`
	SecretKey          string        `env:"ADMINPANEL_SECRET_KEY"`
	TokenTTL           time.Duration `env:"ADMINPANEL_TOKEN_TTL"           envDefault:"24h"`
	LoadingDelay       time.Duration `env:"ADMINPANEL_LOADING_DELAY"       envDefault:"1s"`
	RevalidateInterval time.Duration `env:"ADMINPANEL_REVALIDATE_INTERVAL" envDefault:"5m"`
	SecureCookies      bool          `env:"ADMINPANEL_SECURE_COOKIES"      envDefault:"false"`
	GitHubToken        string        `env:"ADMINPANEL_GITHUB_TOKEN"`

	// EphemeralSecret is set when SecretKey was generated for this process.
	// Tokens and stored credentials then do not survive a restart.
	EphemeralSecret bool `env:"-"`
}

// HasGitHubToken reports whether a GitHub token was supplied through the
// environment. A token saved from the settings page takes precedence at runtime.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Without ADMINPANEL_SECRET_KEY a random key is
// generated and EphemeralSecret is set so the caller can warn about it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for name, d := range map[string]time.Duration{
		"ADMINPANEL_TOKEN_TTL":           cfg.TokenTTL,
		"ADMINPANEL_LOADING_DELAY":       cfg.LoadingDelay,
		"ADMINPANEL_REVALIDATE_INTERVAL": cfg.RevalidateInterval,
	} {
		if d <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if cfg.ListenAddr == "" {
		return nil, errors.New("ADMINPANEL_LISTEN_ADDR must not be empty")
	}

	if cfg.SecretKey == "" {
		key, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SecretKey = key
		cfg.EphemeralSecret = true
	}

	return &cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
